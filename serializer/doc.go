// Package serializer describes the serializer services the wiring pass assembles:
// the tag vocabulary, the Context capability and a catalog of implementation classes
// with the constructor slots that accept a default context.
package serializer
