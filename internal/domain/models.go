package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// InputData is the unit of work: a raw payload plus optional hints about its shape.
type InputData struct {
	ID   string `json:"id"`
	Data string `json:"data"`
	// Type is a caller-supplied identifier such as "my.movies".
	Type string `json:"type,omitempty"`
	// TransformerName forces a specific input transformer.
	TransformerName string `json:"input_data_transformer_name,omitempty"`
	// HandBuildComponentType bypasses selection entirely.
	HandBuildComponentType string `json:"hand_build_component_type,omitempty"`

	// Enrichment, written once by the agent.
	Parsed          any    `json:"-"`
	TransformerUsed string `json:"transformer_used,omitempty"`
	WrapperKey      string `json:"json_wrapping_field_name,omitempty"`
}

// NewInputData creates an InputData with a generated id.
func NewInputData(data, dataType string) InputData {
	return InputData{ID: uuid.NewString(), Data: data, Type: dataType}
}

// DataField is one field of a component: a human label and a path into the data.
type DataField struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	DataPath string `json:"data_path"`
	// Data holds resolved values after extraction.
	Data []any `json:"data,omitempty"`
}

// ConfidenceScore is the model's self-reported confidence. Models emit either
// a string such as "85%" or a bare number; both decode to the string form.
type ConfidenceScore string

func (c *ConfidenceScore) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ConfidenceScore(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*c = ConfidenceScore(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// ComponentMetadata is the selection result before data extraction.
type ComponentMetadata struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Reason          string          `json:"reasonForTheComponentSelection,omitempty"`
	ConfidenceScore ConfidenceScore `json:"confidenceScore,omitempty"`
	Component       Component       `json:"component"`
	Fields          []DataField     `json:"fields"`

	// ComponentType names the caller-rendered component for hand-built results.
	ComponentType string `json:"component_type,omitempty"`
	OnRowClick    string `json:"on_row_click,omitempty"`

	DataType        string `json:"data_type,omitempty"`
	WrapperKey      string `json:"json_wrapping_field_name,omitempty"`
	TransformerName string `json:"input_data_transformer_name,omitempty"`
	// Data caches the parsed (and wrapped) tree the fields resolve against.
	Data any `json:"-"`
}

// ComponentData is the renderer-ready descriptor produced by a data transformer.
type ComponentData interface {
	Base() *ComponentDataBase
}

// ComponentDataBase carries the fields shared by every ComponentData variant.
type ComponentDataBase struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Component Component `json:"component"`
}

func (b *ComponentDataBase) Base() *ComponentDataBase { return b }

// ComponentDataOneCard shows one item's fields with an optional image.
type ComponentDataOneCard struct {
	ComponentDataBase
	Image  string      `json:"image,omitempty"`
	Fields []DataField `json:"fields"`
}

// ComponentDataImage shows a single image.
type ComponentDataImage struct {
	ComponentDataBase
	Image string `json:"image"`
}

// ComponentDataVideo embeds a video player.
type ComponentDataVideo struct {
	ComponentDataBase
	Video    string `json:"video"`
	VideoImg string `json:"video_img,omitempty"`
}

// ComponentDataAudio embeds an audio player.
type ComponentDataAudio struct {
	ComponentDataBase
	Audio string `json:"audio"`
	Image string `json:"image,omitempty"`
}

// ComponentDataSetOfCards shows one card per array item.
type ComponentDataSetOfCards struct {
	ComponentDataBase
	SubtitleField *DataField  `json:"subtitle_field,omitempty"`
	ImageField    *DataField  `json:"image_field,omitempty"`
	Fields        []DataField `json:"fields"`
	FieldsAll     []DataField `json:"fields_all,omitempty"`
}

// ComponentDataTable shows one row per array item.
type ComponentDataTable struct {
	ComponentDataBase
	Fields     []DataField `json:"fields"`
	OnRowClick string      `json:"on_row_click,omitempty"`
	FieldsAll  []DataField `json:"fields_all,omitempty"`
}

// ChartPoint is one data point of a chart series.
type ChartPoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeries is a named list of points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ComponentDataChart is shared by every chart-* variant.
type ComponentDataChart struct {
	ComponentDataBase
	Series     []ChartSeries `json:"data"`
	XAxisLabel string        `json:"x_axis_label,omitempty"`
	YAxisLabel string        `json:"y_axis_label,omitempty"`
}

// ComponentDataHandBuilt passes the parsed tree to a caller-rendered component.
type ComponentDataHandBuilt struct {
	ComponentDataBase
	ComponentType string `json:"component_type"`
	Data          any    `json:"data"`
}

// UIBlockRendering is the rendered output of a component.
type UIBlockRendering struct {
	Content         string `json:"content"`
	ComponentSystem string `json:"component_system"`
	MimeType        string `json:"mime_type"`
}

// UIBlockConfiguration echoes the selection so the UI can explain or edit it.
type UIBlockConfiguration struct {
	Component       Component       `json:"component"`
	Title           string          `json:"title"`
	Fields          []DataField     `json:"fields"`
	Reason          string          `json:"reasonForTheComponentSelection,omitempty"`
	ConfidenceScore ConfidenceScore `json:"confidenceScore,omitempty"`
	ComponentType   string          `json:"component_type,omitempty"`
	DataType        string          `json:"data_type,omitempty"`
}

// UIBlock is the envelope returned to callers for one InputData.
type UIBlock struct {
	ID            string                `json:"id"`
	Rendering     *UIBlockRendering     `json:"rendering,omitempty"`
	Configuration *UIBlockConfiguration `json:"configuration,omitempty"`
}

// NewUIBlockConfiguration builds the configuration echo from metadata.
// Resolved values are dropped; only names and paths are echoed.
func NewUIBlockConfiguration(m ComponentMetadata) *UIBlockConfiguration {
	fields := make([]DataField, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = DataField{ID: f.ID, Name: f.Name, DataPath: f.DataPath}
	}
	return &UIBlockConfiguration{
		Component:       m.Component,
		Title:           m.Title,
		Fields:          fields,
		Reason:          m.Reason,
		ConfidenceScore: m.ConfidenceScore,
		ComponentType:   m.ComponentType,
		DataType:        m.DataType,
	}
}

// CloneFields deep-copies a field list, including resolved data slices.
func CloneFields(in []DataField) []DataField {
	if in == nil {
		return nil
	}
	out := make([]DataField, len(in))
	for i, f := range in {
		out[i] = f
		if f.Data != nil {
			out[i].Data = append([]any(nil), f.Data...)
		}
	}
	return out
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
