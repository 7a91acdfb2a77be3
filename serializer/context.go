package serializer

import "maps"

// Context is the capability of exporting serialization options as a mapping.
type Context interface {
	ToMap() map[string]any
}

// DefaultContext is a Context over a fixed set of options.
type DefaultContext struct {
	options map[string]any
}

var _ Context = (*DefaultContext)(nil)

func NewDefaultContext(options map[string]any) *DefaultContext {
	return &DefaultContext{options: maps.Clone(options)}
}

// ToMap returns a copy of the options.
func (c *DefaultContext) ToMap() map[string]any {
	out := maps.Clone(c.options)
	if out == nil {
		out = map[string]any{}
	}
	return out
}
