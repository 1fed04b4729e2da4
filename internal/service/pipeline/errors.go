package pipeline

import "fmt"

// WriteError reports a chunk insert that failed. Chunks before Chunk stay committed.
type WriteError struct {
	Collection string
	Chunk      int
	Committed  int
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error while inserting data: %s", e.Err.Error())
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed count (Page is -1) or page query during a load.
type ReadError struct {
	Collection string
	Page       int
	Err        error
}

func (e *ReadError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("error while counting records: %s", e.Err.Error())
	}
	return fmt.Sprintf("error while fetching page %d: %s", e.Page, e.Err.Error())
}

func (e *ReadError) Unwrap() error { return e.Err }

// DeleteError reports a failed clear-all. The remote side may be partially cleared.
type DeleteError struct {
	Collection string
	Err        error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("error while deleting data: %s", e.Err.Error())
}

func (e *DeleteError) Unwrap() error { return e.Err }
