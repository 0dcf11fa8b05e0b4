package ingestion

import "fmt"

// UnsupportedFormatError is returned for file extensions no reader handles
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported file format: file has no extension"
	}
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}

// FileTooLargeError is returned when an upload exceeds the size cap
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, exceeds limit of %d bytes", e.Size, e.Limit)
}

// ReadError represents a failure of a single document reader
type ReadError struct {
	Reader  string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s reader: %s: %v", e.Reader, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s reader: %s", e.Reader, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
