package inputdata

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Prometheus converts range-query (matrix) results into named series.
type Prometheus struct{}

// seriesLabelPriority orders the metric labels used to name a series.
var seriesLabelPriority = []string{"pod", "instance", "job", "container", "node", "__name__"}

func (Prometheus) Name() string { return NamePrometheus }

func (Prometheus) Detect(head string) bool {
	return strings.Contains(head, `"resultType"`) && strings.Contains(head, `"matrix"`)
}

func (Prometheus) Transform(raw string) (any, error) {
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: %w", err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: expected an object")
	}
	// Accept the full API envelope {"status": ..., "data": {...}}.
	if inner, ok := doc["data"].(map[string]any); ok {
		if _, has := inner["resultType"]; has {
			doc = inner
		}
	}
	if rt, _ := doc["resultType"].(string); rt != "matrix" {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: unsupported resultType %q", rt)
	}
	results, ok := doc["result"].([]any)
	if !ok {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: result must be an array")
	}

	series := make([]any, 0, len(results))
	for i, r := range results {
		entry, ok := r.(map[string]any)
		if !ok {
			return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: result[%d] must be an object", i)
		}
		metric, _ := entry["metric"].(map[string]any)
		if metric == nil {
			metric = map[string]any{}
		}
		values, _ := entry["values"].([]any)
		points := make([]any, 0, len(values))
		for j, pair := range values {
			p, err := promPoint(pair)
			if err != nil {
				return nil, domain.Errorf(domain.CodeInvalidInputFormat, "prometheus: result[%d].values[%d]: %w", i, j, err)
			}
			points = append(points, p)
		}
		series = append(series, map[string]any{
			"name":       seriesName(metric, i),
			"metric":     metric,
			"dataPoints": points,
		})
	}

	return map[string]any{
		"metadata": map[string]any{
			"source":     NamePrometheus,
			"resultType": "matrix",
		},
		"series": series,
	}, nil
}

func promPoint(pair any) (map[string]any, error) {
	tuple, ok := pair.([]any)
	if !ok || len(tuple) != 2 {
		return nil, fmt.Errorf("expected [timestamp, value]")
	}
	ts, ok := tuple[0].(float64)
	if !ok {
		return nil, fmt.Errorf("timestamp must be a number")
	}
	var value any
	switch raw := tuple[1].(type) {
	case string:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", raw, err)
		}
		value = finiteOrNil(f)
	case float64:
		value = finiteOrNil(raw)
	default:
		return nil, fmt.Errorf("value must be a string or number")
	}
	sec, frac := math.Modf(ts)
	t := time.Unix(int64(sec), int64(frac*1e9)).UTC()
	return map[string]any{
		"timestamp": ts,
		"value":     value,
		"time":      t.Format("15:04"),
	}, nil
}

// finiteOrNil maps NaN and ±Inf, which JSON cannot carry, to nil.
func finiteOrNil(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func seriesName(metric map[string]any, index int) string {
	for _, label := range seriesLabelPriority {
		if v, ok := metric[label].(string); ok && v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(metric))
	for k := range metric {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := fmt.Sprint(metric[k]); v != "" {
			return v
		}
	}
	return fmt.Sprintf("series-%d", index+1)
}
