package serializer

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Built-in implementation classes.
const (
	ClassSerializer                 = "Serializer"
	ClassDefaultContext             = "DefaultContext"
	ClassObjectNormalizer           = "ObjectNormalizer"
	ClassGetSetMethodNormalizer     = "GetSetMethodNormalizer"
	ClassPropertyNormalizer         = "PropertyNormalizer"
	ClassJSONSerializableNormalizer = "JSONSerializableNormalizer"
	ClassDateTimeNormalizer         = "DateTimeNormalizer"
	ClassJSONEncoder                = "JSONEncoder"
	ClassXMLEncoder                 = "XMLEncoder"
	ClassCSVEncoder                 = "CSVEncoder"
)

var (
	ErrInvalidDeclaration = errors.New("invalid catalog declaration")
	ErrUnknownClass       = errors.New("unknown implementation class")
)

// SlotPolicy says what the wiring pass may do with a constructor slot.
type SlotPolicy int

const (
	// NoInjection leaves the slot alone.
	NoInjection SlotPolicy = iota
	// InjectContext fills an empty slot with a reference to the default Context.
	InjectContext
	// PassThroughMapping marks a slot that takes a raw options mapping instead of a
	// Context; whatever it holds is kept, and an empty slot is never given a reference.
	PassThroughMapping
)

func (p SlotPolicy) String() string {
	switch p {
	case NoInjection:
		return "none"
	case InjectContext:
		return "inject-context"
	case PassThroughMapping:
		return "pass-through-mapping"
	default:
		return fmt.Sprintf("SlotPolicy(%d)", int(p))
	}
}

// ConstructorSlot is a positional constructor argument with its policy.
type ConstructorSlot struct {
	Index  int
	Policy SlotPolicy
}

// Capabilities lists the declared constructor slots of one class.
type Capabilities struct {
	Class string
	Slots []ConstructorSlot
}

// ContextSlot returns the slot that accepts a context, if any.
func (c Capabilities) ContextSlot() (ConstructorSlot, bool) {
	for _, s := range c.Slots {
		if s.Policy == InjectContext || s.Policy == PassThroughMapping {
			return s, true
		}
	}
	return ConstructorSlot{}, false
}

// Catalog is a static table of implementation classes and their context slots.
type Catalog struct {
	entries map[string]Capabilities
}

func NewCatalog() *Catalog {
	return &Catalog{entries: map[string]Capabilities{}}
}

// Declare registers class with the given slots, replacing an earlier declaration.
// Context slots may not use the normalizer and encoder arguments.
func (c *Catalog) Declare(class string, slots ...ConstructorSlot) error {
	if class == "" {
		return fmt.Errorf("%w: class must not be empty", ErrInvalidDeclaration)
	}
	seen := map[int]bool{}
	for _, s := range slots {
		if s.Index < 0 {
			return fmt.Errorf("%w: %s: negative slot index %d", ErrInvalidDeclaration, class, s.Index)
		}
		if s.Policy != NoInjection && s.Index <= EncodersArgument {
			return fmt.Errorf("%w: %s: slot %d is reserved for the normalizer and encoder lists", ErrInvalidDeclaration, class, s.Index)
		}
		if seen[s.Index] {
			return fmt.Errorf("%w: %s: slot %d declared twice", ErrInvalidDeclaration, class, s.Index)
		}
		seen[s.Index] = true
	}
	out := append([]ConstructorSlot(nil), slots...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	c.entries[class] = Capabilities{Class: class, Slots: out}
	return nil
}

var contextType = reflect.TypeOf((*Context)(nil)).Elem()

// DeclareConstructor derives the slots of class from a Go constructor: every
// parameter whose type implements Context becomes an InjectContext slot.
func (c *Catalog) DeclareConstructor(class string, constructor any) error {
	fn := reflect.TypeOf(constructor)
	if fn == nil || fn.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s: constructor must be a function", ErrInvalidDeclaration, class)
	}
	var slots []ConstructorSlot
	for i := 0; i < fn.NumIn(); i++ {
		if fn.IsVariadic() && i == fn.NumIn()-1 {
			break
		}
		if fn.In(i).Implements(contextType) {
			slots = append(slots, ConstructorSlot{Index: i, Policy: InjectContext})
		}
	}
	return c.Declare(class, slots...)
}

// Exempt switches slot index of an already declared class to PassThroughMapping.
func (c *Catalog) Exempt(class string, index int) error {
	caps, ok := c.entries[class]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	slots := make([]ConstructorSlot, 0, len(caps.Slots)+1)
	for _, s := range caps.Slots {
		if s.Index != index {
			slots = append(slots, s)
		}
	}
	slots = append(slots, ConstructorSlot{Index: index, Policy: PassThroughMapping})
	return c.Declare(class, slots...)
}

func (c *Catalog) Lookup(class string) (Capabilities, bool) {
	caps, ok := c.entries[class]
	if !ok {
		return Capabilities{}, false
	}
	caps.Slots = append([]ConstructorSlot(nil), caps.Slots...)
	return caps, true
}

// Classes returns the declared classes sorted by name.
func (c *Catalog) Classes() []string {
	out := make([]string, 0, len(c.entries))
	for class := range c.entries {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// DefaultCatalog declares the built-in implementations.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	mustDeclare(c.Declare(ClassSerializer))
	mustDeclare(c.Declare(ClassDefaultContext))
	mustDeclare(c.Declare(ClassObjectNormalizer, ConstructorSlot{Index: 6, Policy: InjectContext}))
	mustDeclare(c.Declare(ClassGetSetMethodNormalizer, ConstructorSlot{Index: 6, Policy: InjectContext}))
	mustDeclare(c.Declare(ClassPropertyNormalizer, ConstructorSlot{Index: 6, Policy: InjectContext}))
	mustDeclare(c.Declare(ClassJSONSerializableNormalizer, ConstructorSlot{Index: 2, Policy: PassThroughMapping}))
	mustDeclare(c.Declare(ClassDateTimeNormalizer))
	mustDeclare(c.Declare(ClassJSONEncoder))
	mustDeclare(c.Declare(ClassXMLEncoder))
	mustDeclare(c.Declare(ClassCSVEncoder))
	return c
}

func mustDeclare(err error) {
	if err != nil {
		panic(err)
	}
}
