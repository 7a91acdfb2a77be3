package container

import "strings"

// ReferencePrefix marks a string argument as a reference in services files.
const ReferencePrefix = "@"

// Reference points at another definition by id. It is resolved by the container when
// services are instantiated; compiler passes only place references.
type Reference struct {
	ID string `json:"id" yaml:"id"`
}

func NewReference(id string) Reference {
	return Reference{ID: id}
}

// References builds references for ids, preserving order.
func References(ids ...string) []Reference {
	out := make([]Reference, len(ids))
	for i, id := range ids {
		out[i] = NewReference(id)
	}
	return out
}

func (r Reference) String() string {
	return ReferencePrefix + r.ID
}

// ParseReference reports whether s uses the "@id" notation and returns the reference.
// "@@" escapes a literal leading "@".
func ParseReference(s string) (Reference, bool) {
	if !strings.HasPrefix(s, ReferencePrefix) || strings.HasPrefix(s, ReferencePrefix+ReferencePrefix) {
		return Reference{}, false
	}
	id := strings.TrimSpace(strings.TrimPrefix(s, ReferencePrefix))
	if id == "" {
		return Reference{}, false
	}
	return NewReference(id), true
}
