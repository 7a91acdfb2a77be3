package container

import (
	"errors"
	"testing"
)

func TestRegistryFindTaggedServiceIDsKeepsRegistrationOrder(t *testing.T) {
	r := New()
	b := r.Register("b", "")
	a := r.Register("a", "")
	c := r.Register("c", "")

	// Tag in a different order than registration.
	c.AddTag("t")
	a.AddTag("t", TagAttributes{"priority": 1})
	b.AddTag("t")
	r.Register("untagged", "")

	got := r.FindTaggedServiceIDs("t")
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("tagged count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("tagged[%d]=%q want %q", i, got[i].ID, want[i])
		}
	}
	if got[1].Attributes[0]["priority"] != 1 {
		t.Fatalf("expected attributes of a to be kept, got %v", got[1].Attributes)
	}
}

func TestRegistryRegisterReplacesDefinitionInPlace(t *testing.T) {
	r := New()
	r.Register("first", "").AddTag("t")
	r.Register("second", "").AddTag("t")
	r.Register("first", "Replacement")

	if r.Len() != 2 {
		t.Fatalf("expected 2 definitions, got %d", r.Len())
	}
	defs := r.Definitions()
	if defs[0].ID() != "first" || defs[0].Class() != "Replacement" {
		t.Fatalf("expected replaced definition at position 0, got %q (%q)", defs[0].ID(), defs[0].Class())
	}
	tagged := r.FindTaggedServiceIDs("t")
	if len(tagged) != 1 || tagged[0].ID != "second" {
		t.Fatalf("expected stale tags to be dropped, got %+v", tagged)
	}
}

func TestRegistryDefinitionNotFound(t *testing.T) {
	r := New()
	if r.HasDefinition("missing") {
		t.Fatal("expected missing definition")
	}
	_, err := r.Definition("missing")
	if !errors.Is(err, ErrDefinitionNotFound) {
		t.Fatalf("expected ErrDefinitionNotFound, got %v", err)
	}
}

func TestRegistryErrCollectsDefinitionErrors(t *testing.T) {
	r := New()
	r.Register("", "")
	r.Register("svc", "").AddTag("")

	err := r.Err()
	if err == nil {
		t.Fatal("expected registry error")
	}
	if got := err.Error(); got != `service id must not be empty; service "svc": tag name must not be empty` {
		t.Fatalf("unexpected error: %q", got)
	}
}

func TestRegistryEmptyIDIsNotIndexed(t *testing.T) {
	r := New()
	r.Register("", "X").AddTag("t", TagAttributes{"priority": 5})
	r.Register("a", "").AddTag("t")

	if r.Len() != 1 {
		t.Fatalf("expected one definition, got %d", r.Len())
	}
	refs, err := FindAndSortTaggedServices(r, "t")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "a" {
		t.Fatalf("unexpected references: %v", refs)
	}
	if r.Err() == nil {
		t.Fatal("expected empty id error")
	}
}

func TestDefinitionArguments(t *testing.T) {
	r := New()
	def := r.Register("svc", "").SetArguments("a")

	if _, err := def.Argument(1); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("expected ErrArgumentOutOfRange, got %v", err)
	}
	if err := def.ReplaceArgument(2, "x"); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("expected ErrArgumentOutOfRange, got %v", err)
	}

	def.SetArgument(3, NewReference("other"))
	args := def.Arguments()
	if len(args) != 4 {
		t.Fatalf("expected padded arguments, got %v", args)
	}
	if args[0] != "a" || args[1] != nil || args[2] != nil {
		t.Fatalf("unexpected padding: %v", args)
	}
	if args[3] != NewReference("other") {
		t.Fatalf("unexpected argument 3: %v", args[3])
	}

	args[0] = "mutated"
	if v, _ := def.Argument(0); v != "a" {
		t.Fatalf("Arguments must return a copy, got %v", v)
	}
}

func TestDefinitionTagsKeepOccurrences(t *testing.T) {
	r := New()
	def := r.Register("svc", "").
		AddTag("b").
		AddTag("a", TagAttributes{"priority": 3}).
		AddTag("b", TagAttributes{"format": "json"})

	names := def.TagNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("unexpected tag names: %v", names)
	}
	if got := def.Tag("b"); len(got) != 2 || got[1]["format"] != "json" {
		t.Fatalf("unexpected tag b occurrences: %v", got)
	}
	if len(r.FindTaggedServiceIDs("b")) != 1 {
		t.Fatal("a service tagged twice must be indexed once")
	}
}

func TestIsEmptyArgument(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *Reference
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"nil map", nilMap, true},
		{"empty map", map[string]any{}, true},
		{"empty refs", []Reference{}, true},
		{"nil pointer", nilPtr, true},
		{"map", map[string]any{"k": true}, false},
		{"reference", NewReference("x"), false},
		{"string", "", false},
		{"zero", 0, false},
	}
	for _, tc := range cases {
		if got := IsEmptyArgument(tc.value); got != tc.want {
			t.Fatalf("%s: IsEmptyArgument=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseReference(t *testing.T) {
	if ref, ok := ParseReference("@serializer_context"); !ok || ref.ID != "serializer_context" {
		t.Fatalf("unexpected parse: %v %v", ref, ok)
	}
	for _, s := range []string{"plain", "@", "@@escaped", ""} {
		if _, ok := ParseReference(s); ok {
			t.Fatalf("expected %q not to parse as reference", s)
		}
	}
	if got := NewReference("n1").String(); got != "@n1" {
		t.Fatalf("unexpected String: %q", got)
	}
}
