package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// DefaultComponentSystem is the renderer used when none is configured.
const DefaultComponentSystem = "json"

// AgentConfig configures one Agent instance.
type AgentConfig struct {
	ComponentSystem            string                   `yaml:"component_system,omitempty" json:"component_system,omitempty"`
	ComponentSelectionStrategy domain.SelectionStrategy `yaml:"component_selection_strategy,omitempty" json:"component_selection_strategy,omitempty"`
	// InputDataJSONWrapping wraps strings, arrays and multi-field objects under
	// the sanitised data type. Nil means true.
	InputDataJSONWrapping *bool `yaml:"input_data_json_wrapping,omitempty" json:"input_data_json_wrapping,omitempty"`
	// UnsupportedComponents advertises table and set-of-cards when no explicit
	// selectable set is configured.
	UnsupportedComponents bool                      `yaml:"unsupported_components,omitempty" json:"unsupported_components,omitempty"`
	SelectableComponents  []domain.Component        `yaml:"selectable_components,omitempty" json:"selectable_components,omitempty"`
	// DataTransformer is the default input transformer. Empty means auto-detect.
	DataTransformer       string                    `yaml:"data_transformer,omitempty" json:"data_transformer,omitempty"`
	DataTypes             map[string]DataTypeConfig `yaml:"data_types,omitempty" json:"data_types,omitempty"`
	Prompt                *PromptConfig             `yaml:"prompt,omitempty" json:"prompt,omitempty"`

	// ExpandAllFields fills fields_all on table and set-of-cards data.
	ExpandAllFields bool `yaml:"expand_all_fields,omitempty" json:"expand_all_fields,omitempty"`
	// ArrayBoundary switches reducer annotations to "size up to/over N". 0 keeps "size: N".
	ArrayBoundary int `yaml:"array_boundary,omitempty" json:"array_boundary,omitempty"`
}

// DataTypeConfig customises handling of one InputData.Type.
type DataTypeConfig struct {
	DataTransformer string             `yaml:"data_transformer,omitempty" json:"data_transformer,omitempty"`
	Components      []ComponentMapping `yaml:"components,omitempty" json:"components,omitempty"`
	Prompt          *PromptConfig      `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// ComponentMapping pre-configures a component for a data type.
type ComponentMapping struct {
	Component string `yaml:"component" json:"component"`
	// LLMConfigure lets the LLM pick fields. Nil means false when a
	// configuration is given and true otherwise.
	LLMConfigure  *bool                    `yaml:"llm_configure,omitempty" json:"llm_configure,omitempty"`
	Configuration *ComponentConfiguration  `yaml:"configuration,omitempty" json:"configuration,omitempty"`
	Prompt        *ComponentPromptOverride `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// ComponentConfiguration is a fixed title and field list.
type ComponentConfiguration struct {
	Title      string        `yaml:"title" json:"title"`
	Fields     []FieldConfig `yaml:"fields" json:"fields"`
	OnRowClick string        `yaml:"on_row_click,omitempty" json:"on_row_click,omitempty"`
}

// FieldConfig is one configured field.
type FieldConfig struct {
	Name     string `yaml:"name" json:"name"`
	DataPath string `yaml:"data_path" json:"data_path"`
}

// PromptConfig overrides prompt fragments globally or for a data type.
type PromptConfig struct {
	SystemPromptStart                      string                             `yaml:"system_prompt_start,omitempty" json:"system_prompt_start,omitempty"`
	TwoStepStep1SelectSystemPromptStart    string                             `yaml:"twostep_step1select_system_prompt_start,omitempty" json:"twostep_step1select_system_prompt_start,omitempty"`
	TwoStepStep2ConfigureSystemPromptStart string                             `yaml:"twostep_step2configure_system_prompt_start,omitempty" json:"twostep_step2configure_system_prompt_start,omitempty"`
	Components                             map[string]ComponentPromptOverride `yaml:"components,omitempty" json:"components,omitempty"`
}

// ComponentPromptOverride replaces individual fragments of a component's prompt metadata.
type ComponentPromptOverride struct {
	Description         *string `yaml:"description,omitempty" json:"description,omitempty"`
	OneStepExample      *string `yaml:"onestep_example,omitempty" json:"onestep_example,omitempty"`
	TwoStepStep2Example *string `yaml:"twostep_step2_example,omitempty" json:"twostep_step2_example,omitempty"`
	TwoStepStep2Rules   *string `yaml:"twostep_step2_rules,omitempty" json:"twostep_step2_rules,omitempty"`
	ChartDescription    *string `yaml:"chart_description,omitempty" json:"chart_description,omitempty"`
	ChartFieldsSpec     *string `yaml:"chart_fields_spec,omitempty" json:"chart_fields_spec,omitempty"`
	ChartRules          *string `yaml:"chart_rules,omitempty" json:"chart_rules,omitempty"`
	ChartInlineExamples *string `yaml:"chart_inline_examples,omitempty" json:"chart_inline_examples,omitempty"`
}

// LoadAgentConfig reads a YAML agent configuration. An empty path yields defaults.
func LoadAgentConfig(path string) (AgentConfig, error) {
	if path == "" {
		cfg := AgentConfig{}.WithDefaults()
		return cfg, cfg.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return AgentConfig{}, fmt.Errorf("config: open agent config: %w", err)
	}
	defer f.Close()
	return ParseAgentConfig(f)
}

// ParseAgentConfig decodes, defaults and validates a YAML agent configuration.
// Unknown keys are rejected.
func ParseAgentConfig(r io.Reader) (AgentConfig, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return AgentConfig{}, fmt.Errorf("config: read agent config: %w", err)
	}
	var cfg AgentConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return AgentConfig{}, domain.Errorf(domain.CodeInvalidConfiguration, "config: decode agent config: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return AgentConfig{}, err
	}
	return cfg, nil
}

// WithDefaults returns a copy with unset options filled in.
func (c AgentConfig) WithDefaults() AgentConfig {
	if c.ComponentSystem == "" {
		c.ComponentSystem = DefaultComponentSystem
	}
	if c.ComponentSelectionStrategy == "" {
		c.ComponentSelectionStrategy = domain.StrategyOneCall
	}
	if c.InputDataJSONWrapping == nil {
		t := true
		c.InputDataJSONWrapping = &t
	}
	return c
}

// JSONWrapping reports whether payload wrapping is enabled.
func (c AgentConfig) JSONWrapping() bool {
	return c.InputDataJSONWrapping == nil || *c.InputDataJSONWrapping
}

// Validate checks enumerated options. Per-type component mappings are
// validated when the agent builds its registries.
func (c AgentConfig) Validate() error {
	if !c.ComponentSelectionStrategy.Valid() {
		return domain.Errorf(domain.CodeInvalidConfiguration,
			"config: invalid component_selection_strategy %q (must be one_llm_call or two_llm_calls)", c.ComponentSelectionStrategy)
	}
	for _, sc := range c.SelectableComponents {
		if !sc.Dynamic() {
			return domain.Errorf(domain.CodeInvalidConfiguration, "config: selectable_components: unknown component %q", sc)
		}
	}
	if c.ArrayBoundary < 0 {
		return domain.Errorf(domain.CodeInvalidConfiguration, "config: array_boundary must not be negative")
	}
	return nil
}

// Selectable returns the component set advertised to the LLM.
func (c AgentConfig) Selectable() []domain.Component {
	if len(c.SelectableComponents) > 0 {
		return append([]domain.Component(nil), c.SelectableComponents...)
	}
	var out []domain.Component
	for _, comp := range domain.DynamicComponents() {
		if !c.UnsupportedComponents && (comp == domain.ComponentTable || comp == domain.ComponentSetOfCards) {
			continue
		}
		out = append(out, comp)
	}
	return out
}
