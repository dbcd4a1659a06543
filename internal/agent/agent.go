// Package agent owns the registries of the component pipeline and drives one
// generation per input: parse, normalise, select, extract, transform,
// validate and render.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/extract"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/inputdata"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/llm"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/payload"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/render"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/selection"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/transform"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/typemap"
)

const defaultMaxParallel = 4

// Options configure an Agent. Inputs and Renderers default to the built-in registries.
type Options struct {
	Config    config.AgentConfig
	Inference llm.Inference
	Inputs    *inputdata.Registry
	Renderers *render.Registry
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	// MaxParallel bounds concurrent pipelines in GenerateAll.
	MaxParallel int
}

// Agent runs the component pipeline. It is safe for concurrent use; every
// registry is built in New and never changes afterwards.
type Agent struct {
	cfg         config.AgentConfig
	inputs      *inputdata.Registry
	types       *typemap.Registry
	prompts     *prompts.Assembler
	strategy    selection.Strategy
	transforms  *transform.Registry
	renderer    render.Factory
	logger      *slog.Logger
	metrics     *observability.Metrics
	maxParallel int
}

// New validates the configuration and builds every registry.
func New(opts Options) (*Agent, error) {
	cfg := opts.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	inputs := opts.Inputs
	if inputs == nil {
		inputs = inputdata.DefaultRegistry()
	}
	renderers := opts.Renderers
	if renderers == nil {
		renderers = render.DefaultRegistry()
	}

	types, err := typemap.New(cfg.DataTypes)
	if err != nil {
		return nil, err
	}
	if cfg.DataTransformer != "" {
		if _, err := inputs.Get(cfg.DataTransformer); err != nil {
			return nil, fmt.Errorf("agent: data_transformer: %w", err)
		}
	}
	for dataType, name := range types.Transformers() {
		if _, err := inputs.Get(name); err != nil {
			return nil, fmt.Errorf("agent: data_types[%q]: %w", dataType, err)
		}
	}
	renderer, err := renderers.Get(cfg.ComponentSystem)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}
	assembler, err := prompts.NewAssembler(cfg, types)
	if err != nil {
		return nil, err
	}
	strategy, err := selection.New(cfg.ComponentSelectionStrategy, selection.Deps{
		Inference: opts.Inference,
		Prompts:   assembler,
		Logger:    logger,
		Metrics:   opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	maxParallel := opts.MaxParallel
	if maxParallel < 1 {
		maxParallel = defaultMaxParallel
	}
	return &Agent{
		cfg:         cfg,
		inputs:      inputs,
		types:       types,
		prompts:     assembler,
		strategy:    strategy,
		transforms:  transform.NewRegistry(transform.Options{ExpandAllFields: cfg.ExpandAllFields, Logger: logger}),
		renderer:    renderer,
		logger:      logger,
		metrics:     opts.Metrics,
		maxParallel: maxParallel,
	}, nil
}

// Config returns the effective agent configuration.
func (a *Agent) Config() config.AgentConfig { return a.cfg }

// ComponentSystem names the renderer blocks are produced with.
func (a *Agent) ComponentSystem() string { return a.renderer.Name() }

// Components lists the components offered to the LLM for a data type.
func (a *Agent) Components(dataType string) []prompts.Choice {
	return a.prompts.Choices(dataType)
}

// Prepare parses the raw payload and applies wrapping. The returned input
// carries the enrichment fields.
func (a *Agent) Prepare(in domain.InputData) (domain.InputData, error) {
	if err := domain.ValidateInputData(in); err != nil {
		return in, err
	}
	t, err := a.inputs.Resolve(in, a.types.TransformerFor(in.Type), a.cfg.DataTransformer)
	if err != nil {
		return in, err
	}
	tree, err := t.Transform(in.Data)
	if err != nil {
		return in, fmt.Errorf("input %q: %w", in.ID, err)
	}
	in.TransformerUsed = t.Name()
	in.WrapperKey = ""
	if a.cfg.JSONWrapping() {
		tree, in.WrapperKey = payload.Wrap(tree, in.Type)
	}
	in.Parsed = tree
	return in, nil
}

// Select chooses and configures the component for one input. Inputs with a
// hand-built type or a fixed per-type mapping never reach the LLM.
func (a *Agent) Select(ctx context.Context, prompt string, in domain.InputData) (m domain.ComponentMetadata, err error) {
	ctx, span := observability.StartSpan(ctx, "agent.select",
		attribute.String("input_id", in.ID), attribute.String("data_type", in.Type))
	defer func() { observability.EndSpan(span, err) }()

	if in.Parsed == nil {
		if in, err = a.Prepare(in); err != nil {
			return domain.ComponentMetadata{}, err
		}
	}
	logger := observability.ForInput(a.logger, in.ID, in.Type)

	if fixed, ok := a.types.ShortCircuit(in, in.Parsed); ok {
		logger.DebugContext(ctx, "component resolved without llm", "component", fixed.Component, "component_type", fixed.ComponentType)
		return a.enrich(fixed, in), nil
	}

	view, err := payload.ReducedJSON(in.Parsed, a.cfg.ArrayBoundary)
	if err != nil {
		return domain.ComponentMetadata{}, err
	}
	m, err = a.strategy.Select(ctx, selection.Request{Prompt: prompt, Input: in, Data: view})
	if err != nil {
		return domain.ComponentMetadata{}, fmt.Errorf("input %q: %w", in.ID, err)
	}
	if err := domain.ValidateComponentMetadata(m); err != nil {
		return domain.ComponentMetadata{}, fmt.Errorf("input %q: %w", in.ID, err)
	}
	logger.InfoContext(ctx, "component selected",
		"component", m.Component, "strategy", a.strategy.Name(), "confidence", m.ConfidenceScore)
	return a.enrich(m, in), nil
}

func (a *Agent) enrich(m domain.ComponentMetadata, in domain.InputData) domain.ComponentMetadata {
	m.ID = in.ID
	m.DataType = in.Type
	m.WrapperKey = in.WrapperKey
	m.TransformerName = in.TransformerUsed
	m.Data = in.Parsed
	return m
}

// Transform builds the component data. Field problems do not fail it.
func (a *Agent) Transform(ctx context.Context, m domain.ComponentMetadata) (cd domain.ComponentData, err error) {
	_, span := observability.StartSpan(ctx, "agent.transform",
		attribute.String("input_id", m.ID), attribute.String("component", string(m.Component)))
	defer func() { observability.EndSpan(span, err) }()

	t, err := a.transforms.Get(m.Component)
	if err != nil {
		return nil, err
	}
	return t.Process(m, m.Data)
}

// Validate builds the component data and reports every field and chart problem.
func (a *Agent) Validate(ctx context.Context, m domain.ComponentMetadata) (domain.ComponentData, []domain.ValidationError) {
	_, span := observability.StartSpan(ctx, "agent.transform",
		attribute.String("input_id", m.ID), attribute.String("component", string(m.Component)), attribute.Bool("validate", true))
	defer span.End()

	t, err := a.transforms.Get(m.Component)
	if err != nil {
		return nil, []domain.ValidationError{{Code: string(domain.CodeOf(err)), Message: err.Error()}}
	}
	cd, errs := t.Validate(m, m.Data, nil)
	for _, e := range errs {
		a.metrics.RecordValidationError(ctx, e.Code)
	}
	return cd, errs
}

// Render wraps component data into a UI block with the configured component system.
func (a *Agent) Render(ctx context.Context, cd domain.ComponentData, m domain.ComponentMetadata) (b domain.UIBlock, err error) {
	_, span := observability.StartSpan(ctx, "agent.render",
		attribute.String("input_id", m.ID), attribute.String("component_system", a.renderer.Name()))
	defer func() { observability.EndSpan(span, err) }()

	m.Fields = extract.Normalize(m.Fields)
	return render.Block(a.renderer, cd, m)
}
