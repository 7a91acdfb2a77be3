package cmd

import (
	"context"

	"github.com/bronystylecrazy/ultrawire/container"
	"github.com/bronystylecrazy/ultrawire/otel"
	"github.com/bronystylecrazy/ultrawire/serializer"
	"github.com/bronystylecrazy/ultrawire/wiring"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Pipeline loads a services file, runs the compiler with the serializer wiring pass
// and describes the result.
type Pipeline struct {
	log     *zap.Logger
	tracer  trace.Tracer
	catalog *serializer.Catalog
}

// Result of one pipeline run. Plan is nil when the file has no serializer consumer.
type Result struct {
	RunID    string
	Registry *container.Registry
	Plan     *wiring.Plan
}

func NewPipeline(log *zap.Logger, tp *otel.TracerProvider) *Pipeline {
	p := &Pipeline{log: log, catalog: serializer.DefaultCatalog()}
	if tp != nil {
		p.tracer = tp.Compiler()
	}
	return p
}

// WithCatalog returns a copy of p using catalog for context injection.
func (p *Pipeline) WithCatalog(catalog *serializer.Catalog) *Pipeline {
	out := *p
	out.catalog = catalog
	return &out
}

func (p *Pipeline) Catalog() *serializer.Catalog { return p.catalog }

func (p *Pipeline) Compile(ctx context.Context, path string) (*Result, error) {
	r, err := container.LoadFile(path)
	if err != nil {
		return nil, err
	}
	compiler := container.NewCompiler(
		container.WithLogger(p.log),
		container.WithTracer(p.tracer),
	)
	if err := compiler.AddPass(wiring.NewResolver(
		wiring.WithLogger(p.log),
		wiring.WithCatalog(p.catalog),
	)); err != nil {
		return nil, err
	}
	runID, err := compiler.Compile(ctx, r)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: runID, Registry: r}
	if !r.HasDefinition(serializer.ConsumerID) {
		return result, nil
	}
	plan, err := wiring.Describe(r, p.catalog)
	if err != nil {
		return nil, err
	}
	plan.RunID = runID
	result.Plan = plan
	return result, nil
}
