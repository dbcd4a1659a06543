package inputdata

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// YAML parses YAML documents whose root is a mapping or sequence.
type YAML struct{}

var yamlKeyLine = regexp.MustCompile(`^\s*(- )?["']?[\w .\-]+["']?\s*:(\s|$)`)

func (YAML) Name() string { return NameYAML }

func (YAML) Detect(head string) bool {
	t := strings.TrimSpace(head)
	if t == "" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return false
	}
	if strings.HasPrefix(t, "---") || strings.HasPrefix(t, "- ") {
		return true
	}
	first, _, _ := strings.Cut(t, "\n")
	return yamlKeyLine.MatchString(first)
}

func (YAML) Transform(raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "yaml: %w", err)
	}
	v = normalizeYAML(v)
	if err := checkRoot(NameYAML, v); err != nil {
		return nil, err
	}
	return v, nil
}

// normalizeYAML converts decoded YAML into the same value space encoding/json
// produces, so downstream stages see one tree shape regardless of format.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
