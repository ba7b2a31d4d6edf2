package repository

import "errors"

var (
	ErrDuplicate      = errors.New("record already exists")
	ErrNotFound       = errors.New("record not found")
	ErrStatusConflict = errors.New("record status changed concurrently")
)
