package selection

import (
	"regexp"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// chartMentions are checked in priority order: a reason mentioning a
// mirrored bar also mentions a bar.
var chartMentions = []struct {
	re        *regexp.Regexp
	component domain.Component
}{
	{regexp.MustCompile(`(?i)\bmirrored[\s-]?bar`), domain.ComponentChartMirroredBar},
	{regexp.MustCompile(`(?i)\bdo(ugh)?nut`), domain.ComponentChartDonut},
	{regexp.MustCompile(`(?i)\bpie\b`), domain.ComponentChartPie},
	{regexp.MustCompile(`(?i)\bline\b`), domain.ComponentChartLine},
	{regexp.MustCompile(`(?i)\bbar\b`), domain.ComponentChartBar},
}

// CorrectChartComponent returns the chart tag named by the selection reason
// when it disagrees with the chosen chart tag. Non-chart tags are returned as is.
func CorrectChartComponent(component domain.Component, reason string) (domain.Component, bool) {
	if !strings.HasPrefix(string(component), "chart-") || reason == "" {
		return component, false
	}
	for _, m := range chartMentions {
		if m.re.MatchString(reason) {
			return m.component, m.component != component
		}
	}
	return component, false
}
