// Package shadow compares component selections made by different strategies
// on the same input.
package shadow

// ComparisonResult is the top-level output of a strategy comparison.
type ComparisonResult struct {
	InputID  string             `json:"input_id"`
	Aspects  []AspectComparison `json:"aspects"`
	AllMatch bool               `json:"all_match"`
	Summary  string             `json:"summary"`
}

// AspectComparison records the comparison for one aspect of the selection.
type AspectComparison struct {
	Aspect    string `json:"aspect"`
	Left      string `json:"left"`
	Right     string `json:"right"`
	Match     bool   `json:"match"`
	DiffLines string `json:"diff_lines,omitempty"`
}
