package container

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadFileKeepsFileOrderAndNotation(t *testing.T) {
	r, err := LoadFile("testdata/services.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	defs := r.Definitions()
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID()
	}
	if strings.Join(ids, ",") != "serializer_context,n2,n1,n3,serializer" {
		t.Fatalf("unexpected registration order: %v", ids)
	}

	n1, err := r.Definition("n1")
	if err != nil {
		t.Fatalf("definition n1: %v", err)
	}
	if p, err := TagPriority(n1.Tag("serializer.normalizer")); err != nil || p != 200 {
		t.Fatalf("unexpected n1 priority %d (%v)", p, err)
	}

	n3, _ := r.Definition("n3")
	if !n3.HasTag("serializer.normalizer") || !n3.HasTag("serializer.encoder") {
		t.Fatalf("expected bare string tags on n3, got %v", n3.TagNames())
	}

	if tagged := r.FindTaggedServiceIDs("serializer.Context"); len(tagged) != 1 || tagged[0].ID != "serializer_context" {
		t.Fatalf("unexpected context providers: %+v", tagged)
	}

	consumer, _ := r.Definition("serializer")
	if !consumer.IsAutowired() {
		t.Fatal("expected autowire flag")
	}
	args := consumer.Arguments()
	if len(args) != 6 {
		t.Fatalf("unexpected arguments: %#v", args)
	}
	if args[0] != nil || args[1] != nil {
		t.Fatalf("expected unset placeholders, got %#v %#v", args[0], args[1])
	}
	if args[2] != NewReference("n1") {
		t.Fatalf("expected reference, got %#v", args[2])
	}
	refs, ok := args[3].([]Reference)
	if !ok || len(refs) != 2 || refs[0].ID != "n2" || refs[1].ID != "n3" {
		t.Fatalf("expected reference list, got %#v", args[3])
	}
	if args[4] != "@literal" || args[5] != "plain" {
		t.Fatalf("unexpected literals: %#v %#v", args[4], args[5])
	}
}

func TestLoadAggregatesValidationErrors(t *testing.T) {
	_, err := LoadFile("testdata/invalid.yaml")
	if !errors.Is(err, ErrInvalidServicesFile) {
		t.Fatalf("expected ErrInvalidServicesFile, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"services[0]", "services[1]", `services[3]: duplicate id "dup" (first at services[2])`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFile("testdata/missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithoutServices(t *testing.T) {
	r, err := LoadBytes([]byte("other: true\n"), FormatYAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d definitions", r.Len())
	}
}

func TestDecodeServicesFromRawList(t *testing.T) {
	specs, err := DecodeServices([]any{
		map[string]any{
			"id":   "enc",
			"tags": []any{map[string]any{"name": "serializer.encoder", "priority": "5", "format": "json"}},
		},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(specs) != 1 || len(specs[0].Tags) != 1 {
		t.Fatalf("unexpected specs: %+v", specs)
	}
	tag := specs[0].Tags[0]
	if tag.Name != "serializer.encoder" || tag.Attributes["priority"] != "5" || tag.Attributes["format"] != "json" {
		t.Fatalf("unexpected tag: %+v", tag)
	}
}

func TestLoadFileKeepsKeyCase(t *testing.T) {
	files := map[string]string{
		"services.yaml": `
services:
  - id: normalizer
    class: JSONSerializableNormalizer
    arguments: [~, ~, {enableMaxDepth: true, DateTimeFormat: "Y-m-d"}]
    tags:
      - name: serializer.normalizer
        MyAttr: X
`,
		"services.json": `{"services": [{
  "id": "normalizer",
  "class": "JSONSerializableNormalizer",
  "arguments": [null, null, {"enableMaxDepth": true, "DateTimeFormat": "Y-m-d"}],
  "tags": [{"name": "serializer.normalizer", "MyAttr": "X"}]
}]}`,
		"services.toml": `
[[services]]
id = "normalizer"
class = "JSONSerializableNormalizer"
arguments = ["~", "~", { enableMaxDepth = true, DateTimeFormat = "Y-m-d" }]
tags = [{ name = "serializer.normalizer", MyAttr = "X" }]
`,
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			r, err := LoadFile(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			def, err := r.Definition("normalizer")
			if err != nil {
				t.Fatalf("definition: %v", err)
			}
			arg, _ := def.Argument(2)
			want := map[string]any{"enableMaxDepth": true, "DateTimeFormat": "Y-m-d"}
			if !reflect.DeepEqual(arg, want) {
				t.Fatalf("argument mapping changed: %#v", arg)
			}
			if first, _ := def.Argument(0); first != nil {
				t.Fatalf("expected unset slot 0, got %#v", first)
			}
			attrs := def.Tag("serializer.normalizer")
			if len(attrs) != 1 || attrs[0]["MyAttr"] != "X" {
				t.Fatalf("tag attributes changed: %#v", attrs)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]string{
		"a.yaml": FormatYAML,
		"a.yml":  FormatYAML,
		"a.JSON": FormatJSON,
		"a.toml": FormatTOML,
		"a":      FormatYAML,
	}
	for path, want := range cases {
		if got := FormatOf(path); got != want {
			t.Fatalf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadBytesRejectsMalformedDocument(t *testing.T) {
	if _, err := LoadBytes([]byte("{"), FormatJSON); !errors.Is(err, ErrInvalidServicesFile) {
		t.Fatalf("expected ErrInvalidServicesFile, got %v", err)
	}
	if _, err := LoadBytes(nil, "ini"); !errors.Is(err, ErrInvalidServicesFile) {
		t.Fatalf("expected ErrInvalidServicesFile, got %v", err)
	}
}
