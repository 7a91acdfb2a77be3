package serializer

import "reflect"

const (
	// ConsumerID is the service id of the serializer whose arguments are wired.
	ConsumerID = "serializer"
	// NormalizerTag marks normalizer contributions; they end up in argument 0.
	NormalizerTag = "serializer.normalizer"
	// EncoderTag marks encoder contributions; they end up in argument 1.
	EncoderTag = "serializer.encoder"

	NormalizersArgument = 0
	EncodersArgument    = 1
)

// ContextTag marks the service providing the default Context. The tag key is the
// name of the Context interface.
var ContextTag = reflect.TypeOf((*Context)(nil)).Elem().String()
