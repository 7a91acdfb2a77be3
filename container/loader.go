package container

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ServicesKey is the top-level key holding the ordered service list.
const ServicesKey = "services"

// Services file formats understood by LoadBytes.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ServiceSpec is one entry of a services file.
type ServiceSpec struct {
	ID        string    `mapstructure:"id" validate:"required"`
	Class     string    `mapstructure:"class"`
	Autowire  bool      `mapstructure:"autowire"`
	Arguments []any     `mapstructure:"arguments"`
	Tags      []TagSpec `mapstructure:"tags" validate:"dive"`
}

// TagSpec is one tag of a ServiceSpec. A bare string in the file decodes to a TagSpec
// with only Name set.
type TagSpec struct {
	Name       string         `mapstructure:"name" validate:"required"`
	Attributes map[string]any `mapstructure:",remain"`
}

var tagSpecType = reflect.TypeOf(TagSpec{})

var validate = validator.New()

// LoadFile reads a YAML, TOML or JSON services file into a new registry. The format
// follows the file extension. Keys inside argument mappings and tag attributes are
// kept exactly as written.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read services file %q: %w", path, err)
	}
	r, err := LoadBytes(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("services file %q: %w", path, err)
	}
	return r, nil
}

// FormatOf returns the services file format implied by the extension of path.
// Unknown extensions are read as YAML.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// LoadBytes parses a services document in format and builds a registry from it.
func LoadBytes(data []byte, format string) (*Registry, error) {
	doc := map[string]any{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidServicesFile, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServicesFile, err)
	}
	return Load(doc[ServicesKey])
}

// Load builds a registry from a raw services list. Services are registered in
// list order.
func Load(raw any) (*Registry, error) {
	specs, err := DecodeServices(raw)
	if err != nil {
		return nil, err
	}
	r := New()
	for _, spec := range specs {
		spec.Register(r)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServicesFile, err)
	}
	return r, nil
}

// DecodeServices decodes and validates a raw services list.
func DecodeServices(raw any) ([]ServiceSpec, error) {
	if raw == nil {
		return nil, nil
	}
	var specs []ServiceSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(tagSpecHook),
		Result:           &specs,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServicesFile, err)
	}
	var errs error
	seen := map[string]int{}
	for i, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("services[%d]: %w", i, err))
			continue
		}
		if prev, ok := seen[spec.ID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("services[%d]: duplicate id %q (first at services[%d])", i, spec.ID, prev))
			continue
		}
		seen[spec.ID] = i
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServicesFile, errs)
	}
	return specs, nil
}

// Register adds the spec to r, converting argument notation to references.
func (s ServiceSpec) Register(r *Registry) *Definition {
	def := r.Register(s.ID, s.Class).SetAutowired(s.Autowire)
	for _, arg := range s.Arguments {
		def.AddArgument(decodeArgument(arg))
	}
	for _, tag := range s.Tags {
		def.AddTag(tag.Name, TagAttributes(tag.Attributes))
	}
	return def
}

// decodeArgument maps "@id" to a Reference, "~" to unset and lists of "@id" strings
// to []Reference. Other values are kept as-is.
func decodeArgument(arg any) any {
	switch v := arg.(type) {
	case string:
		if v == "~" {
			return nil
		}
		if ref, ok := ParseReference(v); ok {
			return ref
		}
		if strings.HasPrefix(v, ReferencePrefix+ReferencePrefix) {
			return strings.TrimPrefix(v, ReferencePrefix)
		}
		return v
	case []any:
		if refs, ok := referenceList(v); ok {
			return refs
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = decodeArgument(item)
		}
		return out
	default:
		return arg
	}
}

func referenceList(items []any) ([]Reference, bool) {
	if len(items) == 0 {
		return nil, false
	}
	refs := make([]Reference, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		ref, ok := ParseReference(s)
		if !ok {
			return nil, false
		}
		refs = append(refs, ref)
	}
	return refs, true
}

func tagSpecHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != tagSpecType || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"name": data}, nil
}
