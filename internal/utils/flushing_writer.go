package utils

import (
	"io"
	"sync"
)

// flushable matches writers that expose an explicit Flush.
type flushable interface{ Flush() error }

// FlushingWriter pushes report output through buffered writers immediately by
// flushing after every write.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps the provided writer; an already-wrapped writer
// passes through unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write forwards data to the wrapped writer and flushes it when supported.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError == nil {
		if flushableWriter, canFlush := flushingWriter.writer.(flushable); canFlush {
			writeError = flushableWriter.Flush()
		}
	}
	return bytesWritten, writeError
}
