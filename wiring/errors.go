package wiring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingNormalizers      = errors.New("missing serializer normalizers")
	ErrMissingEncoders         = errors.New("missing serializer encoders")
	ErrAmbiguousDefaultContext = errors.New("ambiguous default serializer context")
)

// MissingTaggedServiceError reports a consumer registered without any service
// carrying a required tag.
type MissingTaggedServiceError struct {
	Tag      string
	Consumer string
	kind     error
}

func (e *MissingTaggedServiceError) Error() string {
	return fmt.Sprintf("you must tag at least one service as %q to use the %q service", e.Tag, e.Consumer)
}

func (e *MissingTaggedServiceError) Unwrap() error { return e.kind }

// AmbiguousContextError reports more than one default context provider.
type AmbiguousContextError struct {
	Tag       string
	Providers []string
}

func (e *AmbiguousContextError) Error() string {
	return fmt.Sprintf("only one service may be tagged %q, found %d: %s", e.Tag, len(e.Providers), strings.Join(e.Providers, ", "))
}

func (e *AmbiguousContextError) Unwrap() error { return ErrAmbiguousDefaultContext }
