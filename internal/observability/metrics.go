package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the generation pipeline.
type Metrics struct {
	Generations      metric.Int64Counter
	ComponentChosen  metric.Int64Counter
	LLMCalls         metric.Int64Counter
	LLMDuration      metric.Float64Histogram
	ValidationErrors metric.Int64Counter
	ChartCorrections metric.Int64Counter
}

// NewMetrics creates the pipeline metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("ngui")

	generations, err := meter.Int64Counter("ngui.generations.total",
		metric.WithDescription("Number of finished generations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	chosen, err := meter.Int64Counter("ngui.component.selected",
		metric.WithDescription("Components selected, by tag and strategy"),
	)
	if err != nil {
		return nil, err
	}

	llmCalls, err := meter.Int64Counter("ngui.llm.calls",
		metric.WithDescription("Number of model invocations"),
	)
	if err != nil {
		return nil, err
	}

	llmDuration, err := meter.Float64Histogram("ngui.llm.duration_ms",
		metric.WithDescription("Model call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	validationErrors, err := meter.Int64Counter("ngui.validation.errors",
		metric.WithDescription("Validation errors by code"),
	)
	if err != nil {
		return nil, err
	}

	corrections, err := meter.Int64Counter("ngui.chart.autocorrections",
		metric.WithDescription("Chart tags rewritten to match the selection reasoning"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Generations:      generations,
		ComponentChosen:  chosen,
		LLMCalls:         llmCalls,
		LLMDuration:      llmDuration,
		ValidationErrors: validationErrors,
		ChartCorrections: corrections,
	}, nil
}

// RecordGeneration records a finished generation. outcome is "ok" or a terminal phase.
func (m *Metrics) RecordGeneration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Generations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordSelection records the component chosen for an input.
func (m *Metrics) RecordSelection(ctx context.Context, component, strategy string) {
	if m == nil {
		return
	}
	m.ComponentChosen.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("component", component),
			attribute.String("strategy", strategy),
		),
	)
}

// RecordLLMCall records one model invocation and its latency.
func (m *Metrics) RecordLLMCall(ctx context.Context, model string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("model", model),
		attribute.Bool("error", err != nil),
	)
	m.LLMCalls.Add(ctx, 1, attrs)
	m.LLMDuration.Record(ctx, float64(d.Milliseconds()), attrs)
}

// RecordValidationError records one validation error code.
func (m *Metrics) RecordValidationError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.ValidationErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}

// RecordChartCorrection records a chart tag rewrite.
func (m *Metrics) RecordChartCorrection(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.ChartCorrections.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("from", from),
			attribute.String("to", to),
		),
	)
}
