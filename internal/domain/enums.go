package domain

import "strings"

// Component is the tag of a UI component the pipeline can produce.
type Component string

const (
	ComponentOneCard          Component = "one-card"
	ComponentSetOfCards       Component = "set-of-cards"
	ComponentTable            Component = "table"
	ComponentImage            Component = "image"
	ComponentVideoPlayer      Component = "video-player"
	ComponentAudioPlayer      Component = "audio-player"
	ComponentChartBar         Component = "chart-bar"
	ComponentChartLine        Component = "chart-line"
	ComponentChartPie         Component = "chart-pie"
	ComponentChartDonut       Component = "chart-donut"
	ComponentChartMirroredBar Component = "chart-mirrored-bar"
	ComponentHandBuilt        Component = "hand-build-component"
)

// DynamicComponents returns the LLM-configurable components in registry order.
func DynamicComponents() []Component {
	return []Component{
		ComponentOneCard,
		ComponentImage,
		ComponentVideoPlayer,
		ComponentAudioPlayer,
		ComponentTable,
		ComponentSetOfCards,
		ComponentChartBar,
		ComponentChartLine,
		ComponentChartPie,
		ComponentChartDonut,
		ComponentChartMirroredBar,
	}
}

func (c Component) Valid() bool {
	return c.Dynamic() || c == ComponentHandBuilt
}

// Dynamic reports whether the component is configured by the LLM.
func (c Component) Dynamic() bool {
	switch c {
	case ComponentOneCard, ComponentSetOfCards, ComponentTable, ComponentImage,
		ComponentVideoPlayer, ComponentAudioPlayer, ComponentChartBar, ComponentChartLine,
		ComponentChartPie, ComponentChartDonut, ComponentChartMirroredBar:
		return true
	}
	return false
}

// IsChart reports whether the component is one of the chart-* variants.
func (c Component) IsChart() bool {
	return c.Dynamic() && strings.HasPrefix(string(c), "chart-")
}

// RequiresArray reports whether the component renders a list of values per field.
func (c Component) RequiresArray() bool {
	return c == ComponentTable || c == ComponentSetOfCards || c.IsChart()
}

// SelectionStrategy names the LLM interaction pattern used for selection.
type SelectionStrategy string

const (
	StrategyOneCall  SelectionStrategy = "one_llm_call"
	StrategyTwoCalls SelectionStrategy = "two_llm_calls"
)

func (s SelectionStrategy) Valid() bool {
	switch s {
	case StrategyOneCall, StrategyTwoCalls:
		return true
	}
	return false
}
