package container

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// TaggedService is one entry of the tag index: a service id and the attribute sets
// it was tagged with.
type TaggedService struct {
	ID         string
	Attributes []TagAttributes
}

// Registry owns service definitions in registration order.
type Registry struct {
	definitions map[string]*Definition
	order       []*Definition
	tagIndex    map[string][]*Definition
	nextSeq     int
	errs        []error
}

func New() *Registry {
	return &Registry{
		definitions: map[string]*Definition{},
		tagIndex:    map[string][]*Definition{},
	}
}

// Register creates a definition for id. Registering an existing id replaces its
// definition but keeps its registration position. An empty id is recorded as an
// error and the returned definition stays detached from the registry.
func (r *Registry) Register(id, class string) *Definition {
	def := newDefinition(id, class)
	if id == "" {
		r.errs = append(r.errs, errors.New(errEmptyServiceID))
		return def
	}
	def.registry = r
	if prev, ok := r.definitions[id]; ok {
		r.unindex(prev)
		def.seq = prev.seq
		for i, d := range r.order {
			if d == prev {
				r.order[i] = def
			}
		}
		prev.registry = nil
	} else {
		def.seq = r.nextSeq
		r.nextSeq++
		r.order = append(r.order, def)
	}
	r.definitions[id] = def
	return def
}

func (r *Registry) HasDefinition(id string) bool {
	_, ok := r.definitions[id]
	return ok
}

func (r *Registry) Definition(id string) (*Definition, error) {
	def, ok := r.definitions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefinitionNotFound, id)
	}
	return def, nil
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	return append([]*Definition(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// FindTaggedServiceIDs returns the services carrying tag, in registration order.
func (r *Registry) FindTaggedServiceIDs(tag string) []TaggedService {
	defs := append([]*Definition(nil), r.tagIndex[tag]...)
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].seq < defs[j].seq
	})
	out := make([]TaggedService, 0, len(defs))
	for _, d := range defs {
		out = append(out, TaggedService{ID: d.id, Attributes: d.Tag(tag)})
	}
	return out
}

// Err combines the errors recorded while registering and building definitions.
func (r *Registry) Err() error {
	err := multierr.Combine(r.errs...)
	for _, d := range r.order {
		err = multierr.Append(err, d.err)
	}
	return err
}

func (r *Registry) indexTag(tag string, def *Definition) {
	r.tagIndex[tag] = append(r.tagIndex[tag], def)
}

func (r *Registry) unindex(def *Definition) {
	for _, tag := range def.tagOrder {
		defs := r.tagIndex[tag]
		out := defs[:0]
		for _, d := range defs {
			if d != def {
				out = append(out, d)
			}
		}
		if len(out) == 0 {
			delete(r.tagIndex, tag)
			continue
		}
		r.tagIndex[tag] = out
	}
}
