// Package selection drives the LLM to choose and configure a component for
// one input, using either one or two model round-trips.
package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/llm"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/typemap"
)

// Request is the input of one selection.
type Request struct {
	// Prompt is the user's question.
	Prompt string
	Input  domain.InputData
	// Data is the reduced, LLM-facing rendering of the parsed input.
	Data string
}

// Strategy selects and configures a component.
type Strategy interface {
	Name() domain.SelectionStrategy
	Select(ctx context.Context, req Request) (domain.ComponentMetadata, error)
}

// Deps are shared by both strategies.
type Deps struct {
	Inference llm.Inference
	Prompts   *prompts.Assembler
	Logger    *slog.Logger
	Metrics   *observability.Metrics
}

// New returns the strategy with the given name.
func New(name domain.SelectionStrategy, deps Deps) (Strategy, error) {
	if deps.Inference == nil || deps.Prompts == nil {
		return nil, domain.Errorf(domain.CodeInvalidConfiguration, "selection: inference and prompts are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	switch name {
	case domain.StrategyOneCall:
		return &OneCall{deps}, nil
	case domain.StrategyTwoCalls:
		return &TwoCalls{deps}, nil
	default:
		return nil, domain.Errorf(domain.CodeInvalidConfiguration, "selection: unknown strategy %q", name)
	}
}

type stepOne struct {
	Reason          string                 `json:"reasonForTheComponentSelection"`
	ConfidenceScore domain.ConfidenceScore `json:"confidenceScore"`
	Component       string                 `json:"component"`
}

type stepTwo struct {
	Title  string             `json:"title"`
	Fields []domain.DataField `json:"fields"`
}

// resolve maps the answered tag onto one of the offered choices, correcting
// chart tags that contradict the reason.
func (d Deps) resolve(ctx context.Context, req Request, tag, reason string) (prompts.Choice, error) {
	comp := domain.Component(tag)
	if corrected, changed := CorrectChartComponent(comp, reason); changed {
		if _, ok := d.Prompts.Lookup(req.Input.Type, string(corrected)); ok {
			d.Logger.InfoContext(ctx, "chart component corrected from reason",
				"input_id", req.Input.ID, "from", comp, "to", corrected, "reason", reason)
			d.Metrics.RecordChartCorrection(ctx, string(comp), string(corrected))
			comp = corrected
		} else {
			d.Logger.WarnContext(ctx, "chart correction target not selectable, keeping answer",
				"input_id", req.Input.ID, "from", comp, "to", corrected)
		}
	}
	choice, ok := d.Prompts.Lookup(req.Input.Type, string(comp))
	if !ok {
		return prompts.Choice{}, domain.Errorf(domain.CodeInvalidComponentMetadata,
			"selection: component %q is not selectable", comp)
	}
	return choice, nil
}

// finish fills the parts of the metadata that do not come from the model.
func (d Deps) finish(ctx context.Context, strategy domain.SelectionStrategy, req Request, m domain.ComponentMetadata, choice prompts.Choice) domain.ComponentMetadata {
	m.ID = req.Input.ID
	m.DataType = req.Input.Type
	m.Component = choice.Component
	if choice.Component == domain.ComponentHandBuilt {
		m.ComponentType = choice.ComponentType
		m.Title = ""
		m.Fields = []domain.DataField{}
	} else if choice.Configured != nil {
		typemap.Apply(&m, choice.Configured)
	}
	if m.Fields == nil {
		m.Fields = []domain.DataField{}
	}
	d.Metrics.RecordSelection(ctx, string(m.Component), string(strategy))
	return m
}

func (d Deps) call(ctx context.Context, system, user string) (string, error) {
	out, err := d.Inference.CallModel(ctx, system, user)
	if err != nil {
		if domain.CodeOf(err) != "" {
			return "", err
		}
		return "", domain.Errorf(domain.CodeTransportError, "selection: call model: %w", err)
	}
	return out, nil
}

// OneCall selects and configures the component in one round-trip.
type OneCall struct{ Deps }

func (s *OneCall) Name() domain.SelectionStrategy { return domain.StrategyOneCall }

func (s *OneCall) Select(ctx context.Context, req Request) (domain.ComponentMetadata, error) {
	raw, err := s.call(ctx, s.Prompts.OneCallSystem(req.Input.Type), prompts.UserPrompt(req.Prompt, req.Data))
	if err != nil {
		return domain.ComponentMetadata{}, err
	}
	var m domain.ComponentMetadata
	if err := decode(raw, metadataSchema, &m); err != nil {
		s.Logger.WarnContext(ctx, "invalid model answer", "input_id", req.Input.ID, "error", err, "answer", raw)
		return domain.ComponentMetadata{}, err
	}
	choice, err := s.resolve(ctx, req, string(m.Component), m.Reason)
	if err != nil {
		return domain.ComponentMetadata{}, err
	}
	return s.finish(ctx, s.Name(), req, m, choice), nil
}

// TwoCalls first asks for the component only, then for its configuration
// with a prompt tailored to that component. A data type offering exactly one
// component skips the first call; hand-built and pre-configured choices skip
// the second.
type TwoCalls struct{ Deps }

func (s *TwoCalls) Name() domain.SelectionStrategy { return domain.StrategyTwoCalls }

func (s *TwoCalls) Select(ctx context.Context, req Request) (domain.ComponentMetadata, error) {
	user := prompts.UserPrompt(req.Prompt, req.Data)

	var (
		m      domain.ComponentMetadata
		choice prompts.Choice
	)
	if choices := s.Prompts.Choices(req.Input.Type); len(choices) == 1 {
		choice = choices[0]
		m.Reason = fmt.Sprintf("%s is the only component configured for data type %q", choice.Name, req.Input.Type)
	} else {
		raw, err := s.call(ctx, s.Prompts.SelectSystem(req.Input.Type), user)
		if err != nil {
			return domain.ComponentMetadata{}, err
		}
		var one stepOne
		if err := decode(raw, selectSchema, &one); err != nil {
			s.Logger.WarnContext(ctx, "invalid model answer", "input_id", req.Input.ID, "step", 1, "error", err, "answer", raw)
			return domain.ComponentMetadata{}, err
		}
		if choice, err = s.resolve(ctx, req, one.Component, one.Reason); err != nil {
			return domain.ComponentMetadata{}, err
		}
		m.Reason = one.Reason
		m.ConfidenceScore = one.ConfidenceScore
	}

	if choice.Component == domain.ComponentHandBuilt || choice.Configured != nil {
		return s.finish(ctx, s.Name(), req, m, choice), nil
	}

	raw, err := s.call(ctx, s.Prompts.ConfigureSystem(req.Input.Type, choice), user)
	if err != nil {
		return domain.ComponentMetadata{}, err
	}
	var two stepTwo
	if err := decode(raw, configureSchema, &two); err != nil {
		s.Logger.WarnContext(ctx, "invalid model answer", "input_id", req.Input.ID, "step", 2, "error", err, "answer", raw)
		return domain.ComponentMetadata{}, err
	}
	m.Title = two.Title
	m.Fields = two.Fields
	return s.finish(ctx, s.Name(), req, m, choice), nil
}
