package container

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// PriorityAttribute is the tag attribute read by FindAndSortTaggedServices.
const PriorityAttribute = "priority"

// TagPriority returns the priority of the first attribute set, 0 when absent.
// Decimal strings and floats are coerced to int.
func TagPriority(attrs []TagAttributes) (int, error) {
	if len(attrs) == 0 {
		return 0, nil
	}
	raw, ok := attrs[0][PriorityAttribute]
	if !ok || raw == nil {
		return 0, nil
	}
	if s, ok := raw.(string); ok {
		p, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPriority, raw)
		}
		return p, nil
	}
	p, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPriority, raw)
	}
	return p, nil
}

// FindAndSortTaggedServices returns references to every service tagged with tag,
// highest priority first. Services with equal priority keep registration order.
func FindAndSortTaggedServices(r *Registry, tag string) ([]Reference, error) {
	tagged := r.FindTaggedServiceIDs(tag)
	if len(tagged) == 0 {
		return nil, nil
	}
	type keyedService struct {
		ref      Reference
		priority int
	}
	keyed := make([]keyedService, len(tagged))
	for i, svc := range tagged {
		p, err := TagPriority(svc.Attributes)
		if err != nil {
			return nil, fmt.Errorf("service %q tagged %q: %w", svc.ID, tag, err)
		}
		keyed[i] = keyedService{ref: NewReference(svc.ID), priority: p}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].priority > keyed[j].priority
	})
	out := make([]Reference, len(keyed))
	for i := range keyed {
		out[i] = keyed[i].ref
	}
	return out, nil
}
