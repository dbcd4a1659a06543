package inputdata

import (
	"encoding/json"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// JSON parses JSON documents whose root is an object or array.
type JSON struct{}

func (JSON) Name() string { return NameJSON }

func (JSON) Detect(head string) bool {
	t := strings.TrimSpace(head)
	return strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")
}

func (JSON) Transform(raw string) (any, error) {
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "json: %w", err)
	}
	if err := checkRoot(NameJSON, v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
