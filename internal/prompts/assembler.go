package prompts

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/typemap"
)

// Slot identifies one configurable system prompt.
type Slot string

const (
	SlotOneCall   Slot = "system_prompt"
	SlotSelect    Slot = "twostep_step1select"
	SlotConfigure Slot = "twostep_step2configure"
)

const (
	defaultOneCallStart = `You are a UI design assistant. Select the best UI component to visualize the Data so it answers the User query, then configure the component's title and fields.`
	defaultSelectStart  = `You are a UI design assistant. Select the best UI component to visualize the Data so it answers the User query.`
	defaultConfigStart  = `You are a UI design assistant. Configure the title and fields of the selected UI component so it visualizes the Data and answers the User query.`

	pathRules = `DATA PATH RULES:
- data_path uses "." between object keys and [*] to iterate an array, for example "movies[*].title".
- Start each data_path with a key that exists in the Data. Never invent keys.
- Arrays in the Data are shortened to two items and their key carries the real size, for example "movies[size: 5]". Never copy the size suffix into a data_path.
- Give each field a short human readable name.`

	cacheSize = 256
)

// Choice is one component offered to the LLM.
type Choice struct {
	// Name is the tag the LLM answers with.
	Name          string
	Component     domain.Component
	ComponentType string
	Metadata      Metadata
	Configured    *config.ComponentConfiguration
}

type cacheKey struct {
	strategy domain.SelectionStrategy
	dataType string
	slot     Slot
	name     string
}

// Assembler builds system prompts from component metadata and configured
// overrides. Assembled prompts are cached by strategy, data type and slot.
type Assembler struct {
	cfg      config.AgentConfig
	types    *typemap.Registry
	defaults map[domain.Component]Metadata
	cache    *lru.Cache[cacheKey, string]
}

// NewAssembler creates an Assembler. types may be nil when no data types are configured.
func NewAssembler(cfg config.AgentConfig, types *typemap.Registry) (*Assembler, error) {
	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("prompts: create cache: %w", err)
	}
	if types == nil {
		if types, err = typemap.New(nil); err != nil {
			return nil, err
		}
	}
	return &Assembler{cfg: cfg, types: types, defaults: DefaultMetadata(), cache: cache}, nil
}

// Choices returns the components offered for a data type: the mapped
// candidates when the type has a mapping, otherwise the selectable set.
func (a *Assembler) Choices(dataType string) []Choice {
	if e, ok := a.types.Lookup(dataType); ok {
		out := make([]Choice, 0, len(e.Candidates))
		for _, c := range e.Candidates {
			md := a.defaults[c.Component]
			if c.Component == domain.ComponentHandBuilt {
				md = Metadata{}
			}
			if c.Description != "" {
				md.Description = c.Description
			}
			out = append(out, Choice{
				Name:          c.Name(),
				Component:     c.Component,
				ComponentType: c.ComponentType,
				Metadata:      a.override(md, dataType, c.Name()),
				Configured:    c.Configured,
			})
		}
		return out
	}
	selectable := a.cfg.Selectable()
	out := make([]Choice, 0, len(selectable))
	for _, c := range selectable {
		out = append(out, Choice{
			Name:      string(c),
			Component: c,
			Metadata:  a.override(a.defaults[c], dataType, string(c)),
		})
	}
	return out
}

// Lookup resolves a component name returned by the LLM against the choices
// for a data type.
func (a *Assembler) Lookup(dataType, name string) (Choice, bool) {
	for _, c := range a.Choices(dataType) {
		if c.Name == name {
			return c, true
		}
	}
	return Choice{}, false
}

// override applies global then data type prompt overrides for one component.
func (a *Assembler) override(md Metadata, dataType, name string) Metadata {
	if p := a.cfg.Prompt; p != nil {
		if o, ok := p.Components[name]; ok {
			md = md.apply(&o)
		}
	}
	dt, ok := a.cfg.DataTypes[dataType]
	if !ok {
		return md
	}
	if dt.Prompt != nil {
		if o, ok := dt.Prompt.Components[name]; ok {
			md = md.apply(&o)
		}
	}
	for _, m := range dt.Components {
		if strings.TrimSpace(m.Component) == name {
			md = md.apply(m.Prompt)
		}
	}
	return md
}

// start returns the preamble for a slot, data type overrides first.
func (a *Assembler) start(dataType string, slot Slot) string {
	pick := func(p *config.PromptConfig) string {
		if p == nil {
			return ""
		}
		switch slot {
		case SlotSelect:
			return p.TwoStepStep1SelectSystemPromptStart
		case SlotConfigure:
			return p.TwoStepStep2ConfigureSystemPromptStart
		default:
			return p.SystemPromptStart
		}
	}
	if dt, ok := a.cfg.DataTypes[dataType]; ok {
		if s := pick(dt.Prompt); s != "" {
			return s
		}
	}
	if s := pick(a.cfg.Prompt); s != "" {
		return s
	}
	switch slot {
	case SlotSelect:
		return defaultSelectStart
	case SlotConfigure:
		return defaultConfigStart
	default:
		return defaultOneCallStart
	}
}

func (a *Assembler) cached(key cacheKey, build func() string) string {
	if s, ok := a.cache.Get(key); ok {
		return s
	}
	s := build()
	a.cache.Add(key, s)
	return s
}

// OneCallSystem is the system prompt of the one-call strategy.
func (a *Assembler) OneCallSystem(dataType string) string {
	key := cacheKey{strategy: domain.StrategyOneCall, dataType: dataType, slot: SlotOneCall}
	return a.cached(key, func() string {
		choices := a.Choices(dataType)
		var b strings.Builder
		b.WriteString(a.start(dataType, SlotOneCall))
		b.WriteString("\n\n")
		writeComponents(&b, choices)
		writeCharts(&b, choices)
		b.WriteString(pathRules)
		b.WriteString("\n\n")
		b.WriteString("RESPONSE FORMAT:\nRespond with one JSON object and nothing else:\n")
		fmt.Fprintf(&b, `{"title": "<short title>", "reasonForTheComponentSelection": "<one sentence>", "confidenceScore": "<0-100%%>", "component": "<one of: %s>", "fields": [{"name": "<label>", "data_path": "<path>"}]}`,
			names(choices))
		b.WriteString("\n")
		writeExamples(&b, choices, func(m Metadata) string { return m.OneStepExample })
		return b.String()
	})
}

// SelectSystem is the first system prompt of the two-call strategy.
func (a *Assembler) SelectSystem(dataType string) string {
	key := cacheKey{strategy: domain.StrategyTwoCalls, dataType: dataType, slot: SlotSelect}
	return a.cached(key, func() string {
		choices := a.Choices(dataType)
		var b strings.Builder
		b.WriteString(a.start(dataType, SlotSelect))
		b.WriteString("\n\n")
		writeComponents(&b, choices)
		b.WriteString("RESPONSE FORMAT:\nRespond with one JSON object and nothing else:\n")
		fmt.Fprintf(&b, `{"reasonForTheComponentSelection": "<one sentence>", "confidenceScore": "<0-100%%>", "component": "<one of: %s>"}`,
			names(choices))
		b.WriteString("\n")
		return b.String()
	})
}

// ConfigureSystem is the second system prompt of the two-call strategy,
// tailored to the chosen component.
func (a *Assembler) ConfigureSystem(dataType string, choice Choice) string {
	key := cacheKey{strategy: domain.StrategyTwoCalls, dataType: dataType, slot: SlotConfigure, name: choice.Name}
	return a.cached(key, func() string {
		md := choice.Metadata
		var b strings.Builder
		b.WriteString(a.start(dataType, SlotConfigure))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "SELECTED COMPONENT:\n%s - %s\n\n", choice.Name, md.Description)
		if choice.Component.IsChart() {
			writeChart(&b, choice.Name, md)
			b.WriteString("\n")
		} else if md.TwoStepStep2Rules != "" {
			fmt.Fprintf(&b, "FIELD RULES:\n%s\n\n", md.TwoStepStep2Rules)
		}
		b.WriteString(pathRules)
		b.WriteString("\n\n")
		b.WriteString("RESPONSE FORMAT:\nRespond with one JSON object and nothing else:\n")
		b.WriteString(`{"title": "<short title>", "fields": [{"name": "<label>", "data_path": "<path>"}]}`)
		b.WriteString("\n")
		if md.TwoStepStep2Example != "" {
			fmt.Fprintf(&b, "\nEXAMPLE:\n%s\n", md.TwoStepStep2Example)
		}
		return b.String()
	})
}

// UserPrompt combines the user's question with the reduced data.
func UserPrompt(question, data string) string {
	return fmt.Sprintf("=== User query ===\n%s\n\n=== Data ===\n%s\n", strings.TrimSpace(question), data)
}

func names(choices []Choice) string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Name
	}
	return strings.Join(out, ", ")
}

func writeComponents(b *strings.Builder, choices []Choice) {
	b.WriteString("AVAILABLE UI COMPONENTS:\n")
	for _, c := range choices {
		fmt.Fprintf(b, "* %s - %s\n", c.Name, c.Metadata.Description)
	}
	b.WriteString("\n")
}

func writeCharts(b *strings.Builder, choices []Choice) {
	var charts []Choice
	for _, c := range choices {
		if c.Component.IsChart() {
			charts = append(charts, c)
		}
	}
	if len(charts) == 0 {
		return
	}
	b.WriteString("CHART COMPONENTS:\n")
	for _, c := range charts {
		writeChart(b, c.Name, c.Metadata)
	}
	b.WriteString("\n")
}

func writeChart(b *strings.Builder, name string, md Metadata) {
	fmt.Fprintf(b, "%s: %s\n", name, md.ChartDescription)
	if md.ChartFieldsSpec != "" {
		fmt.Fprintf(b, "  Fields: %s\n", md.ChartFieldsSpec)
	}
	if md.ChartRules != "" {
		fmt.Fprintf(b, "  Rules: %s\n", md.ChartRules)
	}
	if md.ChartInlineExamples != "" {
		fmt.Fprintf(b, "  Example: %s\n", md.ChartInlineExamples)
	}
}

func writeExamples(b *strings.Builder, choices []Choice, pick func(Metadata) string) {
	var examples []string
	for _, c := range choices {
		if ex := pick(c.Metadata); ex != "" {
			examples = append(examples, ex)
		}
	}
	if len(examples) == 0 {
		return
	}
	b.WriteString("\nEXAMPLES:\n")
	for _, ex := range examples {
		b.WriteString(ex)
		b.WriteString("\n")
	}
}
