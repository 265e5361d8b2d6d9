package tests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("GIT_AUTHOR_NAME", "Integration Tester")
	_ = os.Setenv("GIT_AUTHOR_EMAIL", "integration@example.com")
	_ = os.Setenv("GIT_COMMITTER_NAME", "Integration Tester")
	_ = os.Setenv("GIT_COMMITTER_EMAIL", "integration@example.com")
	os.Exit(m.Run())
}
