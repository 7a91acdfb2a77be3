package wiring

import (
	"github.com/bronystylecrazy/ultrawire/container"
	"github.com/bronystylecrazy/ultrawire/serializer"
	"go.uber.org/zap"
)

// defaultContextProvider returns the id of the single service tagged as the default
// context, or "" when there is none.
func defaultContextProvider(r *container.Registry) (string, error) {
	tagged := r.FindTaggedServiceIDs(serializer.ContextTag)
	switch len(tagged) {
	case 0:
		return "", nil
	case 1:
		return tagged[0].ID, nil
	}
	ids := make([]string, len(tagged))
	for i, t := range tagged {
		ids[i] = t.ID
	}
	return "", &AmbiguousContextError{Tag: serializer.ContextTag, Providers: ids}
}

func (p *Resolver) injectDefaultContext(def *container.Definition, provider string) {
	log := p.log.With(zap.String("class", def.Class()), zap.String("provider", provider))
	caps, ok := p.catalog.Lookup(def.Class())
	if !ok {
		log.Debug("consumer class not in catalog, context not injected")
		return
	}
	slot, ok := caps.ContextSlot()
	if !ok {
		log.Debug("consumer class has no context slot")
		return
	}
	log = log.With(zap.Int("slot", slot.Index), zap.Stringer("policy", slot.Policy))

	switch slot.Policy {
	case serializer.PassThroughMapping:
		log.Debug("context slot takes a raw mapping, kept as is")
	case serializer.InjectContext:
		current, _ := def.Argument(slot.Index)
		if !container.IsEmptyArgument(current) {
			log.Debug("context slot already wired, kept as is")
			return
		}
		def.SetArgument(slot.Index, container.NewReference(provider))
		log.Debug("default context injected")
	}
}
