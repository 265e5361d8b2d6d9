package gitrepo

import "fmt"

const repositoryNotFoundTemplateConstant = "no git repository at %s"

// RepositoryNotFoundError indicates a path does not contain a usable git repository.
type RepositoryNotFoundError struct {
	Path string
}

// Error describes the invalid repository path.
func (notFoundError RepositoryNotFoundError) Error() string {
	return fmt.Sprintf(repositoryNotFoundTemplateConstant, notFoundError.Path)
}
