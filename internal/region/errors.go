package region

import "errors"

var (
	ErrNotFound      = errors.New("region not defined")
	ErrAlreadyExists = errors.New("region already defined")
	ErrUnknownRegion = errors.New("region does not exist")
	ErrInvalidInput  = errors.New("invalid input")
	ErrPersistence   = errors.New("region update not persisted")
)
