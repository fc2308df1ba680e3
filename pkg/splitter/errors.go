package splitter

import "errors"

var (
	ErrNotFound     = errors.New("source document not found")
	ErrParse        = errors.New("malformed source document")
	ErrMissingField = errors.New("missing required field")
	ErrIO           = errors.New("i/o error")
)
