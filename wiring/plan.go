package wiring

import (
	"fmt"
	"strings"

	"github.com/bronystylecrazy/ultrawire/container"
	"github.com/bronystylecrazy/ultrawire/serializer"
)

// Context slot states reported in a Plan.
const (
	ContextUnset       = "unset"
	ContextReference   = "reference"
	ContextExplicit    = "explicit"
	ContextPassThrough = "pass-through"
)

// Plan summarizes the wired consumer.
type Plan struct {
	RunID       string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Consumer    string       `json:"consumer" yaml:"consumer"`
	Class       string       `json:"class,omitempty" yaml:"class,omitempty"`
	Autowired   bool         `json:"autowired" yaml:"autowired"`
	Normalizers []string     `json:"normalizers" yaml:"normalizers"`
	Encoders    []string     `json:"encoders" yaml:"encoders"`
	Context     *ContextPlan `json:"context,omitempty" yaml:"context,omitempty"`
}

// ContextPlan describes the consumer's context slot.
type ContextPlan struct {
	Slot     int    `json:"slot" yaml:"slot"`
	Policy   string `json:"policy" yaml:"policy"`
	State    string `json:"state" yaml:"state"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// Describe reads the consumer definition of r. It is meant to run after the
// resolver; before that the reference lists are usually empty.
func Describe(r *container.Registry, catalog *serializer.Catalog) (*Plan, error) {
	def, err := r.Definition(serializer.ConsumerID)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = serializer.DefaultCatalog()
	}
	normalizers, _ := def.Argument(serializer.NormalizersArgument)
	encoders, _ := def.Argument(serializer.EncodersArgument)
	plan := &Plan{
		Consumer:    def.ID(),
		Class:       def.Class(),
		Autowired:   def.IsAutowired(),
		Normalizers: referenceIDs(normalizers),
		Encoders:    referenceIDs(encoders),
	}
	if caps, ok := catalog.Lookup(def.Class()); ok {
		if slot, ok := caps.ContextSlot(); ok {
			plan.Context = describeContextSlot(def, slot)
		}
	}
	return plan, nil
}

func describeContextSlot(def *container.Definition, slot serializer.ConstructorSlot) *ContextPlan {
	out := &ContextPlan{Slot: slot.Index, Policy: slot.Policy.String()}
	current, _ := def.Argument(slot.Index)
	switch {
	case slot.Policy == serializer.PassThroughMapping:
		out.State = ContextPassThrough
	case container.IsEmptyArgument(current):
		out.State = ContextUnset
	default:
		if ref, ok := current.(container.Reference); ok {
			out.State = ContextReference
			out.Provider = ref.ID
		} else {
			out.State = ContextExplicit
		}
	}
	return out
}

func referenceIDs(v any) []string {
	out := []string{}
	switch refs := v.(type) {
	case []container.Reference:
		for _, ref := range refs {
			out = append(out, ref.ID)
		}
	case container.Reference:
		out = append(out, refs.ID)
	case []any:
		for _, item := range refs {
			if ref, ok := item.(container.Reference); ok {
				out = append(out, ref.ID)
			}
		}
	}
	return out
}

type planNode struct {
	label    string
	children []planNode
}

// String renders the plan as a tree.
func (p *Plan) String() string {
	root := planNode{label: p.Consumer}
	if p.Class != "" {
		root.label = fmt.Sprintf("%s (%s)", p.Consumer, p.Class)
	}
	root.children = append(root.children,
		referencesNode("normalizers", p.Normalizers),
		referencesNode("encoders", p.Encoders),
	)
	if p.Context != nil {
		label := fmt.Sprintf("context slot %d [%s]: %s", p.Context.Slot, p.Context.Policy, p.Context.State)
		if p.Context.Provider != "" {
			label += " " + container.NewReference(p.Context.Provider).String()
		}
		root.children = append(root.children, planNode{label: label})
	}

	var b strings.Builder
	b.WriteString(root.label)
	b.WriteString("\n")
	for i, child := range root.children {
		writePlanNode(&b, child, "", i == len(root.children)-1)
	}
	return b.String()
}

func referencesNode(label string, ids []string) planNode {
	n := planNode{label: fmt.Sprintf("%s (%d)", label, len(ids))}
	for _, id := range ids {
		n.children = append(n.children, planNode{label: container.NewReference(id).String()})
	}
	return n
}

func writePlanNode(b *strings.Builder, n planNode, prefix string, isLast bool) {
	branch := "|-- "
	nextPrefix := prefix + "|   "
	if isLast {
		branch = "`-- "
		nextPrefix = prefix + "    "
	}
	fmt.Fprintf(b, "%s%s%s\n", prefix, branch, n.label)
	for i, child := range n.children {
		writePlanNode(b, child, nextPrefix, i == len(n.children)-1)
	}
}
