package wiring

import (
	"github.com/bronystylecrazy/ultrawire/container"
	"github.com/bronystylecrazy/ultrawire/serializer"
	"go.uber.org/zap"
)

// PassName identifies the resolver in compiler logs and spans.
const PassName = "serializer-wiring"

// Resolver wires the serializer consumer: it orders tagged normalizers and encoders
// into arguments 0 and 1 and injects the default context where the consumer's class
// declares a context slot.
type Resolver struct {
	catalog *serializer.Catalog
	log     *zap.Logger
}

var _ container.CompilerPass = (*Resolver)(nil)

type Option func(*Resolver)

// WithCatalog replaces the default implementation catalog.
func WithCatalog(c *serializer.Catalog) Option {
	return func(r *Resolver) {
		if c != nil {
			r.catalog = c
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		catalog: serializer.DefaultCatalog(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (p *Resolver) Name() string { return PassName }

// Catalog returns the implementation catalog used for context injection.
func (p *Resolver) Catalog() *serializer.Catalog { return p.catalog }

// Process rewrites the consumer definition. A registry without a consumer is left
// untouched. Every check runs before the first write, so a failing pass leaves the
// registry as it was.
func (p *Resolver) Process(r *container.Registry) error {
	if !r.HasDefinition(serializer.ConsumerID) {
		p.log.Debug("no serializer consumer registered, skipping", zap.String("consumer", serializer.ConsumerID))
		return nil
	}
	def, err := r.Definition(serializer.ConsumerID)
	if err != nil {
		return err
	}

	normalizers, err := requireTagged(r, serializer.NormalizerTag, ErrMissingNormalizers)
	if err != nil {
		return err
	}
	encoders, err := requireTagged(r, serializer.EncoderTag, ErrMissingEncoders)
	if err != nil {
		return err
	}
	provider, err := defaultContextProvider(r)
	if err != nil {
		return err
	}

	def.SetArgument(serializer.NormalizersArgument, normalizers)
	def.SetArgument(serializer.EncodersArgument, encoders)
	p.log.Debug("serializer contributions ordered",
		zap.Stringers("normalizers", normalizers),
		zap.Stringers("encoders", encoders),
	)

	if provider != "" {
		p.injectDefaultContext(def, provider)
	}
	return nil
}

func requireTagged(r *container.Registry, tag string, kind error) ([]container.Reference, error) {
	refs, err := container.FindAndSortTaggedServices(r, tag)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, &MissingTaggedServiceError{Tag: tag, Consumer: serializer.ConsumerID, kind: kind}
	}
	return refs, nil
}
