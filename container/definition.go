package container

import (
	"fmt"
	"reflect"
)

// TagAttributes holds the attributes of one tag occurrence on a definition.
type TagAttributes map[string]any

// Definition describes one service: its id, implementation class, positional
// constructor arguments and tags. An argument is either a concrete value, nil (unset),
// a Reference or a list of References.
type Definition struct {
	id        string
	class     string
	arguments []any
	tags      map[string][]TagAttributes
	tagOrder  []string
	autowired bool

	seq      int
	registry *Registry
	err      error
}

func newDefinition(id, class string) *Definition {
	return &Definition{
		id:    id,
		class: class,
		tags:  map[string][]TagAttributes{},
	}
}

func (d *Definition) ID() string { return d.id }

func (d *Definition) Class() string { return d.class }

func (d *Definition) SetClass(class string) *Definition {
	d.class = class
	return d
}

func (d *Definition) IsAutowired() bool { return d.autowired }

// SetAutowired marks the definition's arguments as inferable by the container.
func (d *Definition) SetAutowired(autowired bool) *Definition {
	d.autowired = autowired
	return d
}

// Arguments returns a copy of the positional arguments.
func (d *Definition) Arguments() []any {
	out := make([]any, len(d.arguments))
	copy(out, d.arguments)
	return out
}

func (d *Definition) SetArguments(args ...any) *Definition {
	d.arguments = append([]any(nil), args...)
	return d
}

func (d *Definition) AddArgument(arg any) *Definition {
	d.arguments = append(d.arguments, arg)
	return d
}

// Argument returns the argument at index.
func (d *Definition) Argument(index int) (any, error) {
	if index < 0 || index >= len(d.arguments) {
		return nil, fmt.Errorf("service %q: %w: %d (have %d)", d.id, ErrArgumentOutOfRange, index, len(d.arguments))
	}
	return d.arguments[index], nil
}

// ReplaceArgument overwrites an existing argument.
func (d *Definition) ReplaceArgument(index int, value any) error {
	if index < 0 || index >= len(d.arguments) {
		return fmt.Errorf("service %q: %w: %d (have %d)", d.id, ErrArgumentOutOfRange, index, len(d.arguments))
	}
	d.arguments[index] = value
	return nil
}

// SetArgument writes value at index, padding the argument list with unset
// placeholders when it is shorter than index+1.
func (d *Definition) SetArgument(index int, value any) *Definition {
	if index < 0 {
		d.setErr(fmt.Errorf(errNegativeIndex, d.id, index))
		return d
	}
	for len(d.arguments) <= index {
		d.arguments = append(d.arguments, nil)
	}
	d.arguments[index] = value
	return d
}

// AddTag attaches a tag occurrence. Calling it without attributes records an empty
// attribute set, so a service tagged twice under the same name keeps both occurrences.
func (d *Definition) AddTag(name string, attrs ...TagAttributes) *Definition {
	if name == "" {
		d.setErr(fmt.Errorf(errEmptyTagName, d.id))
		return d
	}
	merged := TagAttributes{}
	for _, a := range attrs {
		for k, v := range a {
			merged[k] = v
		}
	}
	if _, ok := d.tags[name]; !ok {
		d.tagOrder = append(d.tagOrder, name)
		if d.registry != nil {
			d.registry.indexTag(name, d)
		}
	}
	d.tags[name] = append(d.tags[name], merged)
	return d
}

func (d *Definition) HasTag(name string) bool {
	_, ok := d.tags[name]
	return ok
}

// Tag returns the attribute sets recorded for name, in the order they were added.
func (d *Definition) Tag(name string) []TagAttributes {
	return append([]TagAttributes(nil), d.tags[name]...)
}

// TagNames returns tag names in the order they were first added.
func (d *Definition) TagNames() []string {
	return append([]string(nil), d.tagOrder...)
}

// Err returns the first error recorded while building the definition.
func (d *Definition) Err() error { return d.err }

func (d *Definition) setErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

// IsEmptyArgument reports whether an argument slot counts as unset: nil, a nil
// pointer or interface, or an empty slice or map.
func IsEmptyArgument(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
