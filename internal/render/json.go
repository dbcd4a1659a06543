package render

import (
	"encoding/json"
	"fmt"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// JSONName is the always-available component system.
const JSONName = "json"

// JSONFactory renders every component as its JSON descriptor.
type JSONFactory struct{}

func (JSONFactory) Name() string { return JSONName }

func (JSONFactory) RenderStrategy(cd domain.ComponentData) (Strategy, error) {
	if cd == nil {
		return nil, domain.Errorf(domain.CodeRenderStrategyMissing, "render: no component data")
	}
	return jsonStrategy{}, nil
}

type jsonStrategy struct{}

func (jsonStrategy) Render(cd domain.ComponentData) (string, error) {
	b, err := json.Marshal(cd)
	if err != nil {
		return "", fmt.Errorf("encode component data: %w", err)
	}
	return string(b), nil
}

func (jsonStrategy) MimeType() string { return "application/json" }
func (jsonStrategy) Name() string     { return JSONName }
