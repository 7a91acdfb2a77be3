package container

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// CompilerPass rewrites definitions of a fully populated registry.
type CompilerPass interface {
	Process(r *Registry) error
}

// PassFunc adapts a function to CompilerPass.
type PassFunc func(r *Registry) error

func (f PassFunc) Process(r *Registry) error { return f(r) }

// PassPriority orders compiler passes. Lower values run earlier; ties keep the order
// in which passes were added.
type PassPriority int

const (
	Earliest PassPriority = -10000
	Earlier  PassPriority = -5000
	Normal   PassPriority = 0
	Later    PassPriority = 5000
	Latest   PassPriority = 10000
)

type namedPass interface {
	Name() string
}

type registeredPass struct {
	pass     CompilerPass
	priority PassPriority
}

// Compiler runs compiler passes against a registry, stopping at the first failure.
type Compiler struct {
	passes []registeredPass
	log    *zap.Logger
	tracer trace.Tracer
}

type CompilerOption func(*Compiler)

func WithLogger(log *zap.Logger) CompilerOption {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

func WithTracer(tracer trace.Tracer) CompilerOption {
	return func(c *Compiler) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		log:    zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("ultrawire/container"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddPass registers a pass. The optional priority defaults to Normal.
func (c *Compiler) AddPass(pass CompilerPass, priority ...PassPriority) error {
	if pass == nil {
		return ErrCompilerPassRequired
	}
	p := Normal
	if len(priority) > 0 {
		p = priority[len(priority)-1]
	}
	c.passes = append(c.passes, registeredPass{pass: pass, priority: p})
	return nil
}

// Passes returns the registered passes in execution order.
func (c *Compiler) Passes() []CompilerPass {
	ordered := c.ordered()
	out := make([]CompilerPass, len(ordered))
	for i, p := range ordered {
		out[i] = p.pass
	}
	return out
}

func (c *Compiler) ordered() []registeredPass {
	out := append([]registeredPass(nil), c.passes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].priority < out[j].priority
	})
	return out
}

// Compile validates the registry and runs every pass once. It returns the run id used
// in logs and spans.
func (c *Compiler) Compile(ctx context.Context, r *Registry) (string, error) {
	runID := uuid.NewString()
	log := c.log.With(zap.String("run_id", runID))
	ctx, span := c.tracer.Start(ctx, "container.compile",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("registry.definitions", r.Len()),
		),
	)
	defer span.End()

	if err := r.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid registry")
		log.Error("registry has invalid definitions", zap.Error(err))
		return runID, err
	}
	for _, p := range c.ordered() {
		name := passName(p.pass)
		_, passSpan := c.tracer.Start(ctx, "container.pass",
			trace.WithAttributes(
				attribute.String("pass.name", name),
				attribute.Int("pass.priority", int(p.priority)),
			),
		)
		err := p.pass.Process(r)
		if err != nil {
			passSpan.RecordError(err)
			passSpan.SetStatus(codes.Error, err.Error())
			passSpan.End()
			span.SetStatus(codes.Error, "compiler pass failed")
			log.Error("compiler pass failed", zap.String("pass", name), zap.Error(err))
			return runID, fmt.Errorf("%s: %w", name, err)
		}
		passSpan.End()
		log.Debug("compiler pass done", zap.String("pass", name))
	}
	return runID, nil
}

func passName(p CompilerPass) string {
	if n, ok := p.(namedPass); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
