package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// HTMLName is the component system of the built-in HTML renderer.
const HTMLName = "html"

const htmlTemplates = `
{{define "one-card"}}<article class="ngui-one-card" id="{{.ID}}">
<h2>{{.Title}}</h2>
{{with .Image}}<img src="{{.}}" alt="">{{end}}
<dl>{{range .Fields}}<dt>{{.Name}}</dt><dd>{{join .Data}}</dd>{{end}}</dl>
</article>{{end}}

{{define "image"}}<figure class="ngui-image" id="{{.ID}}"><img src="{{.Image}}" alt="{{.Title}}"><figcaption>{{.Title}}</figcaption></figure>{{end}}

{{define "video-player"}}<figure class="ngui-video" id="{{.ID}}"><iframe src="{{.Video}}" title="{{.Title}}" allowfullscreen></iframe><figcaption>{{.Title}}</figcaption></figure>{{end}}

{{define "audio-player"}}<figure class="ngui-audio" id="{{.ID}}">{{with .Image}}<img src="{{.}}" alt="">{{end}}<audio controls src="{{.Audio}}"></audio><figcaption>{{.Title}}</figcaption></figure>{{end}}

{{define "table"}}<table class="ngui-table" id="{{.ID}}">
<caption>{{.Title}}</caption>
<thead><tr>{{range .Fields}}<th>{{.Name}}</th>{{end}}</tr></thead>
<tbody>{{range rows .Fields}}<tr>{{range .}}<td>{{cell .}}</td>{{end}}</tr>{{end}}</tbody>
</table>{{end}}

{{define "set-of-cards"}}<section class="ngui-set-of-cards" id="{{.ID}}">
<h2>{{.Title}}</h2>
{{range cards .}}<article class="ngui-card">{{with .Image}}<img src="{{.}}" alt="">{{end}}{{with .Subtitle}}<h3>{{.}}</h3>{{end}}
<dl>{{range .Values}}<dt>{{.Name}}</dt><dd>{{cell .Value}}</dd>{{end}}</dl></article>
{{end}}</section>{{end}}

{{define "chart"}}<figure class="ngui-{{.Component}}" id="{{.ID}}">
<figcaption>{{.Title}}</figcaption>
{{range .Series}}<table><caption>{{.Name}}</caption>
<thead><tr><th>{{$.XAxisLabel}}</th><th>{{.Name}}</th></tr></thead>
<tbody>{{range .Data}}<tr><td>{{cell .X}}</td><td>{{.Y}}</td></tr>{{end}}</tbody></table>
{{end}}</figure>{{end}}

{{define "hand-build-component"}}<div class="ngui-hand-built" id="{{.ID}}" data-component-type="{{.ComponentType}}" data-json="{{jsonattr .Data}}"></div>{{end}}
`

type cardValue struct {
	Name  string
	Value any
}

type card struct {
	Subtitle string
	Image    string
	Values   []cardValue
}

var htmlFuncs = template.FuncMap{
	"join": func(values []any) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = cell(v)
		}
		return strings.Join(parts, ", ")
	},
	"cell":     cell,
	"rows":     rows,
	"cards":    cards,
	"jsonattr": jsonAttr,
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any, map[string]any:
		return jsonAttr(t)
	default:
		return fmt.Sprint(t)
	}
}

func jsonAttr(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// rows transposes per-field value lists into table rows.
func rows(fields []domain.DataField) [][]any {
	n := 0
	for _, f := range fields {
		n = max(n, len(f.Data))
	}
	out := make([][]any, n)
	for i := range out {
		out[i] = make([]any, len(fields))
		for j, f := range fields {
			if i < len(f.Data) {
				out[i][j] = f.Data[i]
			}
		}
	}
	return out
}

func cards(cd *domain.ComponentDataSetOfCards) []card {
	n := 0
	if cd.SubtitleField != nil {
		n = len(cd.SubtitleField.Data)
	}
	if cd.ImageField != nil {
		n = max(n, len(cd.ImageField.Data))
	}
	for _, f := range cd.Fields {
		n = max(n, len(f.Data))
	}
	at := func(f *domain.DataField, i int) string {
		if f == nil || i >= len(f.Data) {
			return ""
		}
		return cell(f.Data[i])
	}
	out := make([]card, n)
	for i := range out {
		out[i].Subtitle = at(cd.SubtitleField, i)
		out[i].Image = at(cd.ImageField, i)
		for _, f := range cd.Fields {
			var v any
			if i < len(f.Data) {
				v = f.Data[i]
			}
			out[i].Values = append(out[i].Values, cardValue{Name: f.Name, Value: v})
		}
	}
	return out
}

// HTMLFactory renders components as HTML fragments.
type HTMLFactory struct {
	tmpl *template.Template
}

// NewHTMLFactory parses the built-in templates.
func NewHTMLFactory() *HTMLFactory {
	return &HTMLFactory{tmpl: template.Must(template.New("ngui").Funcs(htmlFuncs).Parse(htmlTemplates))}
}

func (f *HTMLFactory) Name() string { return HTMLName }

func (f *HTMLFactory) RenderStrategy(cd domain.ComponentData) (Strategy, error) {
	if cd == nil {
		return nil, domain.Errorf(domain.CodeRenderStrategyMissing, "render: no component data")
	}
	name := string(cd.Base().Component)
	if cd.Base().Component.IsChart() {
		name = "chart"
	}
	t := f.tmpl.Lookup(name)
	if t == nil {
		return nil, domain.Errorf(domain.CodeRenderStrategyMissing, "render: html has no template for %q", cd.Base().Component)
	}
	return htmlStrategy{tmpl: t}, nil
}

type htmlStrategy struct {
	tmpl *template.Template
}

func (s htmlStrategy) Render(cd domain.ComponentData) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, cd); err != nil {
		return "", fmt.Errorf("execute %s template: %w", s.tmpl.Name(), err)
	}
	return buf.String(), nil
}

func (htmlStrategy) MimeType() string { return "text/html" }
func (htmlStrategy) Name() string     { return HTMLName }
