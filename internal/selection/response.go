package selection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

const thinkEnd = "</think>"

// TrimResponse drops any reasoning block ending in </think> and trims the
// text to its outermost JSON object or array.
func TrimResponse(raw string) string {
	if i := strings.LastIndex(raw, thinkEnd); i >= 0 {
		raw = raw[i+len(thinkEnd):]
	}
	start := strings.IndexAny(raw, "{[")
	end := strings.LastIndexAny(raw, "}]")
	if start < 0 || end < start {
		return strings.TrimSpace(raw)
	}
	return raw[start : end+1]
}

// decode trims and parses a model answer, validates it against schema and
// unmarshals it into out. A single-element array is unwrapped.
func decode(raw string, schema *gojsonschema.Schema, out any) error {
	trimmed := TrimResponse(raw)
	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return domain.Errorf(domain.CodeInvalidJSONFromLLM, "selection: parse model answer: %w", err)
	}
	if arr, ok := doc.([]any); ok && len(arr) == 1 {
		doc = arr[0]
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return domain.Errorf(domain.CodeInvalidComponentMetadata, "selection: validate model answer: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return domain.Errorf(domain.CodeInvalidComponentMetadata, "selection: model answer does not match schema: %v", errs)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("selection: re-encode model answer: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return domain.Errorf(domain.CodeInvalidComponentMetadata, "selection: decode model answer: %w", err)
	}
	return nil
}

const fieldsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "data_path"],
		"properties": {
			"name": {"type": "string"},
			"data_path": {"type": "string", "minLength": 1}
		}
	}
}`

const (
	metadataSchemaJSON = `{
	"type": "object",
	"required": ["title", "component", "fields"],
	"properties": {
		"title": {"type": "string"},
		"component": {"type": "string", "minLength": 1},
		"reasonForTheComponentSelection": {"type": "string"},
		"confidenceScore": {"type": ["string", "number", "null"]},
		"fields": ` + fieldsSchema + `
	}
}`
	selectSchemaJSON = `{
	"type": "object",
	"required": ["component"],
	"properties": {
		"component": {"type": "string", "minLength": 1},
		"reasonForTheComponentSelection": {"type": "string"},
		"confidenceScore": {"type": ["string", "number", "null"]}
	}
}`
	configureSchemaJSON = `{
	"type": "object",
	"required": ["title", "fields"],
	"properties": {
		"title": {"type": "string"},
		"fields": ` + fieldsSchema + `
	}
}`
)

var (
	metadataSchema  = mustSchema(metadataSchemaJSON)
	selectSchema    = mustSchema(selectSchemaJSON)
	configureSchema = mustSchema(configureSchemaJSON)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("selection: invalid built-in schema: %v", err))
	}
	return schema
}
