package shadow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Aspects compared, in report order.
const (
	AspectComponent = "component"
	AspectTitle     = "title"
	AspectFields    = "fields"
)

type fieldView struct {
	Name     string `json:"name"`
	DataPath string `json:"data_path"`
}

// Compare diffs the component, title and fields (names and paths) of two
// selections. Reasons, confidence scores and field ids are ignored.
func Compare(left, right domain.ComponentMetadata) *ComparisonResult {
	aspects := []struct {
		name        string
		left, right any
	}{
		{AspectComponent, componentName(left), componentName(right)},
		{AspectTitle, left.Title, right.Title},
		{AspectFields, fieldViews(left.Fields), fieldViews(right.Fields)},
	}

	res := &ComparisonResult{InputID: left.ID, AllMatch: true}
	var divergent []string
	for _, a := range aspects {
		l, _ := json.MarshalIndent(a.left, "", "  ") // safe: strings and plain structs
		r, _ := json.MarshalIndent(a.right, "", "  ")

		ac := AspectComparison{Aspect: a.name, Left: string(l), Right: string(r), Match: string(l) == string(r)}
		if !ac.Match {
			ac.DiffLines = simpleDiff(ac.Left, ac.Right)
			res.AllMatch = false
			divergent = append(divergent, a.name)
		}
		res.Aspects = append(res.Aspects, ac)
	}

	res.Summary = "all aspects match"
	if !res.AllMatch {
		res.Summary = fmt.Sprintf("divergence in: %s", strings.Join(divergent, ", "))
	}
	return res
}

// CompareJSON decodes two serialized selections and compares them.
func CompareJSON(left, right []byte) (*ComparisonResult, error) {
	var l, r domain.ComponentMetadata
	if err := json.Unmarshal(left, &l); err != nil {
		return nil, fmt.Errorf("parse left selection: %w", err)
	}
	if err := json.Unmarshal(right, &r); err != nil {
		return nil, fmt.Errorf("parse right selection: %w", err)
	}
	return Compare(l, r), nil
}

func componentName(m domain.ComponentMetadata) string {
	if m.Component == domain.ComponentHandBuilt {
		return string(m.Component) + ":" + m.ComponentType
	}
	return string(m.Component)
}

func fieldViews(fields []domain.DataField) []fieldView {
	out := make([]fieldView, len(fields))
	for i, f := range fields {
		out[i] = fieldView{Name: f.Name, DataPath: f.DataPath}
	}
	return out
}

// simpleDiff returns a basic line-by-line diff indicator.
func simpleDiff(a, b string) string {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")
	var diffs []string

	for i := range max(len(aLines), len(bLines)) {
		aLine := ""
		if i < len(aLines) {
			aLine = aLines[i]
		}
		bLine := ""
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			diffs = append(diffs, fmt.Sprintf("line %d:\n  -: %s\n  +: %s", i+1, aLine, bLine))
		}
	}
	return strings.Join(diffs, "\n")
}
