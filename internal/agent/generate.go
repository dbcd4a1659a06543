package agent

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/extract"
)

// Phase is a state of one generation. Failed phases are terminal.
type Phase string

const (
	PhaseReceived       Phase = "received"
	PhaseParsed         Phase = "parsed"
	PhaseSelected       Phase = "selected"
	PhaseTransformed    Phase = "transformed"
	PhaseRendered       Phase = "rendered"
	PhaseParseFailed    Phase = "parse_failed"
	PhaseLLMFailed      Phase = "llm_failed"
	PhaseInvalidMeta    Phase = "invalid_metadata"
	PhaseExtractFailed  Phase = "extract_failed"
	PhaseValidateFailed Phase = "validate_failed"
	PhaseRenderFailed   Phase = "render_failed"
)

// Failed reports whether p is a terminal error state.
func (p Phase) Failed() bool {
	return strings.HasSuffix(string(p), "_failed") || p == PhaseInvalidMeta
}

// ValidationErrors is returned when the component data failed validation.
type ValidationErrors []domain.ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result is the outcome of one generation.
type Result struct {
	InputID  string                   `json:"id"`
	Phase    Phase                    `json:"phase"`
	Metadata domain.ComponentMetadata `json:"metadata"`
	Block    *domain.UIBlock          `json:"block,omitempty"`
	Errors   []domain.ValidationError `json:"errors,omitempty"`
	Err      error                    `json:"-"`
}

// Generate runs the whole pipeline for one input. Validation problems fail
// the generation; the returned Result still carries them.
func (a *Agent) Generate(ctx context.Context, prompt string, in domain.InputData) (Result, error) {
	res := Result{InputID: in.ID, Phase: PhaseReceived}
	fail := func(p Phase, err error) (Result, error) {
		res.Phase = p
		res.Err = err
		a.metrics.RecordGeneration(ctx, string(p))
		a.logger.WarnContext(ctx, "generation failed", "input_id", in.ID, "phase", p, "error", err)
		return res, err
	}

	prepared, err := a.Prepare(in)
	if err != nil {
		return fail(PhaseParseFailed, err)
	}
	res.Phase = PhaseParsed

	m, err := a.Select(ctx, prompt, prepared)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeInvalidJSONFromLLM, domain.CodeInvalidComponentMetadata:
			return fail(PhaseInvalidMeta, err)
		}
		return fail(PhaseLLMFailed, err)
	}
	res.Metadata = m
	res.Phase = PhaseSelected

	cd, errs := a.Validate(ctx, m)
	if len(errs) > 0 {
		res.Errors = errs
		if cd == nil {
			return fail(PhaseExtractFailed, ValidationErrors(errs))
		}
		return fail(PhaseValidateFailed, ValidationErrors(errs))
	}
	res.Metadata.Fields = extract.Normalize(m.Fields)
	res.Phase = PhaseTransformed

	block, err := a.Render(ctx, cd, m)
	if err != nil {
		return fail(PhaseRenderFailed, err)
	}
	res.Block = &block
	res.Phase = PhaseRendered
	a.metrics.RecordGeneration(ctx, string(PhaseRendered))
	return res, nil
}

// GenerateAll runs one pipeline per input concurrently and returns results in
// input order. A failed input never stops its siblings.
func (a *Agent) GenerateAll(ctx context.Context, prompt string, inputs []domain.InputData) []Result {
	results := make([]Result, len(inputs))
	var g errgroup.Group
	g.SetLimit(a.maxParallel)
	for i, in := range inputs {
		g.Go(func() error {
			results[i], _ = a.Generate(ctx, prompt, in)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Describe summarises a failed result for adapters that emit one message per failure.
func (r Result) Describe() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("input %s failed at %s: %v", r.InputID, r.Phase, r.Err)
}
