package pipeline

import "fmt"

// Kind classifies a file-level failure.
type Kind int

const (
	// KindRead: the source file could not be opened or read.
	KindRead Kind = iota
	// KindParse: the segmenter's grammar could not parse the file.
	KindParse
	// KindMkdir: a parent directory for the mirrored file could not be created.
	KindMkdir
	// KindWrite: the mirrored file could not be written.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindParse:
		return "parse"
	case KindMkdir:
		return "mkdir"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// FileError is a failure scoped to one file. It never aborts a run.
type FileError struct {
	Kind Kind
	Path string // absolute source path
	Rel  string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
