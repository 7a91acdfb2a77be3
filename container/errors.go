package container

import "errors"

var (
	ErrDefinitionNotFound   = errors.New("service definition not found")
	ErrArgumentOutOfRange   = errors.New("argument index out of range")
	ErrInvalidPriority      = errors.New("invalid tag priority")
	ErrInvalidServicesFile  = errors.New("invalid services file")
	ErrCompilerPassRequired = errors.New("compiler pass must not be nil")
)

const (
	errEmptyServiceID = "service id must not be empty"
	errEmptyTagName   = "service %q: tag name must not be empty"
	errNegativeIndex  = "service %q: argument index %d must not be negative"
)
