package burrow

import "errors"

var (
	ErrBadConfig    = errors.New("bad config")
	ErrExists       = errors.New("already exists")
	ErrHalt         = errors.New("halt")
	ErrNotExist     = errors.New("not exist")
	ErrNotFound     = errors.New("not found")
	ErrNotValid     = errors.New("invalid")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrUnexpected   = errors.New("unexpected")
)
