package domain

import "testing"

func TestComponentValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		c       Component
		valid   bool
		dynamic bool
		chart   bool
	}{
		{name: "one-card", c: ComponentOneCard, valid: true, dynamic: true},
		{name: "table", c: ComponentTable, valid: true, dynamic: true},
		{name: "chart-bar", c: ComponentChartBar, valid: true, dynamic: true, chart: true},
		{name: "chart-mirrored-bar", c: ComponentChartMirroredBar, valid: true, dynamic: true, chart: true},
		{name: "hand-built", c: ComponentHandBuilt, valid: true},
		{name: "legacy chart", c: Component("chart"), valid: false},
		{name: "chart-radar", c: Component("chart-radar"), valid: false},
		{name: "empty", c: Component(""), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.c.Valid(); got != tt.valid {
				t.Errorf("Component(%q).Valid() = %v, want %v", tt.c, got, tt.valid)
			}
			if got := tt.c.Dynamic(); got != tt.dynamic {
				t.Errorf("Component(%q).Dynamic() = %v, want %v", tt.c, got, tt.dynamic)
			}
			if got := tt.c.IsChart(); got != tt.chart {
				t.Errorf("Component(%q).IsChart() = %v, want %v", tt.c, got, tt.chart)
			}
		})
	}
}

func TestComponentRequiresArray(t *testing.T) {
	t.Parallel()
	for _, c := range DynamicComponents() {
		want := c == ComponentTable || c == ComponentSetOfCards || c.IsChart()
		if got := c.RequiresArray(); got != want {
			t.Errorf("Component(%q).RequiresArray() = %v, want %v", c, got, want)
		}
	}
	if ComponentHandBuilt.RequiresArray() {
		t.Error("hand-built component must not require arrays")
	}
}

func TestDynamicComponentsExcludesHandBuilt(t *testing.T) {
	t.Parallel()
	all := DynamicComponents()
	if len(all) != 11 {
		t.Fatalf("expected 11 dynamic components, got %d", len(all))
	}
	for _, c := range all {
		if c == ComponentHandBuilt {
			t.Fatal("hand-build-component must not be dynamic")
		}
	}
}

func TestSelectionStrategyValid(t *testing.T) {
	t.Parallel()
	if !StrategyOneCall.Valid() || !StrategyTwoCalls.Valid() {
		t.Fatal("built-in strategies must be valid")
	}
	if SelectionStrategy("three_llm_calls").Valid() {
		t.Fatal("unknown strategy must be invalid")
	}
}
