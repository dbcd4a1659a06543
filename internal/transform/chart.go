package transform

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

func newChart(c domain.Component, logger *slog.Logger) *fieldTransformer {
	ct := &chartTransformer{component: c, logger: logger}
	return &fieldTransformer{component: c, build: ct.build, check: ct.check}
}

type chartTransformer struct {
	component domain.Component
	logger    *slog.Logger
}

func (c *chartTransformer) build(base domain.ComponentDataBase, meta domain.ComponentMetadata, fields []domain.DataField, _ any) (domain.ComponentData, error) {
	cd := &domain.ComponentDataChart{ComponentDataBase: base}
	if len(fields) > 0 {
		cd.XAxisLabel = fields[0].Name
	}
	switch c.component {
	case domain.ComponentChartPie, domain.ComponentChartDonut:
		if len(fields) == 1 {
			cd.XAxisLabel = ""
			cd.Series = []domain.ChartSeries{countSeries(fields[0])}
		}
	case domain.ComponentChartMirroredBar:
		if len(fields) == 3 {
			cd.Series = standardSeries(fields)
		}
	case domain.ComponentChartLine:
		if isMultiSeries(fields) {
			c.logger.Info("line chart treated as multi-series",
				"id", meta.ID, "series_field", fields[0].Name, "series", len(fields[0].Data))
			cd.Series = multiSeries(fields)
			cd.XAxisLabel = fields[1].Name
			cd.YAxisLabel = fields[2].Name
		} else {
			cd.Series = standardSeries(fields)
		}
	default:
		cd.Series = standardSeries(fields)
	}
	if len(cd.Series) == 1 && cd.YAxisLabel == "" && c.component != domain.ComponentChartPie && c.component != domain.ComponentChartDonut {
		cd.YAxisLabel = cd.Series[0].Name
	}
	return cd, nil
}

func (c *chartTransformer) check(cd domain.ComponentData, meta domain.ComponentMetadata, errs []domain.ValidationError) []domain.ValidationError {
	if !meta.Component.IsChart() {
		return append(errs, domain.ValidationError{
			Code:    domain.CodeChartInvalidComponent,
			Message: fmt.Sprintf("component %q is not a chart", meta.Component),
		})
	}
	switch c.component {
	case domain.ComponentChartPie, domain.ComponentChartDonut:
		if len(meta.Fields) != 1 {
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeChartInvalidSeriesCount,
				Message: fmt.Sprintf("%s needs exactly 1 field, got %d", c.component, len(meta.Fields)),
			})
		}
	case domain.ComponentChartMirroredBar:
		if len(meta.Fields) != 3 {
			errs = append(errs, domain.ValidationError{
				Code:    domain.CodeChartInvalidSeriesCount,
				Message: fmt.Sprintf("%s needs exactly 3 fields (category and two metrics), got %d", c.component, len(meta.Fields)),
			})
		}
	}
	if !hasPoints(cd.(*domain.ComponentDataChart).Series) {
		errs = append(errs, domain.ValidationError{Code: domain.CodeChartNoData, Message: "chart has no data points"})
	}
	return errs
}

func hasPoints(series []domain.ChartSeries) bool {
	for _, s := range series {
		if len(s.Data) > 0 {
			return true
		}
	}
	return false
}

// standardSeries uses the first field as x values and every other field as
// one series. Points whose y is missing or not numeric are skipped.
func standardSeries(fields []domain.DataField) []domain.ChartSeries {
	if len(fields) < 2 {
		return nil
	}
	xs := flatten(fields[0].Data)
	out := make([]domain.ChartSeries, 0, len(fields)-1)
	for _, f := range fields[1:] {
		s := domain.ChartSeries{Name: f.Name, Data: []domain.ChartPoint{}}
		for i, v := range flatten(f.Data) {
			if i >= len(xs) {
				break
			}
			y, ok := toNumber(v)
			if !ok {
				continue
			}
			s.Data = append(s.Data, domain.ChartPoint{X: xs[i], Y: y})
		}
		out = append(out, s)
	}
	return out
}

// isMultiSeries detects the [series id, x, y] layout where the x and y fields
// hold an equal-length run of points for every series id. A single id keeps
// the standard layout.
func isMultiSeries(fields []domain.DataField) bool {
	if len(fields) != 3 {
		return false
	}
	ids, xs, ys := len(fields[0].Data), len(fields[1].Data), len(fields[2].Data)
	return ids > 1 && xs == ys && xs > ids && xs%ids == 0
}

func multiSeries(fields []domain.DataField) []domain.ChartSeries {
	ids := fields[0].Data
	per := len(fields[1].Data) / len(ids)
	out := make([]domain.ChartSeries, 0, len(ids))
	for s, id := range ids {
		series := domain.ChartSeries{Name: fmt.Sprint(id), Data: []domain.ChartPoint{}}
		for i := s * per; i < (s+1)*per; i++ {
			y, ok := toNumber(fields[2].Data[i])
			if !ok {
				continue
			}
			series.Data = append(series.Data, domain.ChartPoint{X: fields[1].Data[i], Y: y})
		}
		out = append(out, series)
	}
	return out
}

// countSeries counts occurrences of each distinct value, in first-appearance order.
func countSeries(f domain.DataField) domain.ChartSeries {
	s := domain.ChartSeries{Name: f.Name, Data: []domain.ChartPoint{}}
	index := make(map[any]int)
	for _, v := range flatten(f.Data) {
		if v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			v = fmt.Sprint(v)
		}
		i, ok := index[v]
		if !ok {
			i = len(s.Data)
			index[v] = i
			s.Data = append(s.Data, domain.ChartPoint{X: v})
		}
		s.Data[i].Y++
	}
	return s
}

// flatten expands nested arrays into a single list.
func flatten(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if arr, ok := v.([]any); ok {
			out = append(out, flatten(arr)...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// toNumber coerces JSON numbers and numeric strings such as "1,234", "$12.50"
// or "45%" to float64.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimLeft(s, "$€£")
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
