// Package extract resolves component fields against parsed data.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/jsonpath"
)

// Options tune extraction for a component family.
type Options struct {
	// RequireArray demands at least two values per field.
	RequireArray bool
	// AllowNestedArrays accepts values that are arrays of arrays. Charts set it
	// and flatten the values themselves.
	AllowNestedArrays bool
}

// OptionsFor returns the extraction options for a component.
func OptionsFor(c domain.Component) Options {
	return Options{RequireArray: c.RequiresArray(), AllowNestedArrays: c.IsChart()}
}

// FieldID is a stable identifier derived from a sanitised path.
func FieldID(sanitizedPath string) string {
	sum := sha256.Sum256([]byte(sanitizedPath))
	return hex.EncodeToString(sum[:8])
}

// Normalize returns a copy of fields with sanitised paths and ids filled in,
// without resolving values. Paths that do not parse are kept as given.
func Normalize(fields []domain.DataField) []domain.DataField {
	out := domain.CloneFields(fields)
	for i := range out {
		f := &out[i]
		if p, err := jsonpath.Parse(f.DataPath); err == nil {
			f.DataPath = p.String()
		}
		if f.ID == "" && f.DataPath != "" {
			f.ID = FieldID(f.DataPath)
		}
	}
	return out
}

// Fields resolves every field against data and returns a new field list with
// normalised paths, ids and resolved values, plus the problems found. Fields
// with problems are kept so callers can render partial data.
func Fields(fields []domain.DataField, data any, opts Options) ([]domain.DataField, []domain.ValidationError) {
	out := domain.CloneFields(fields)
	var errs []domain.ValidationError
	for i := range out {
		f := &out[i]
		p, err := jsonpath.Parse(f.DataPath)
		if err != nil {
			errs = append(errs, domain.ValidationError{
				Code:    domain.FieldPathCode(i, domain.PathInvalidFormat),
				Message: fmt.Sprintf("Invalid data_path format %q", f.DataPath),
			})
			f.Data = nil
			continue
		}
		f.DataPath = p.String()
		if f.ID == "" {
			f.ID = FieldID(f.DataPath)
		}

		values := p.Find(data)
		if !opts.RequireArray && len(values) == 1 {
			if arr, ok := values[0].([]any); ok {
				values = arr
			}
		}
		f.Data = values

		switch {
		case len(values) == 0:
			errs = append(errs, domain.ValidationError{
				Code:    domain.FieldPathCode(i, domain.PathInvalid),
				Message: fmt.Sprintf("No value found in input data for data_path %q", f.DataPath),
			})
		case !opts.AllowNestedArrays && hasNestedArray(values):
			errs = append(errs, domain.ValidationError{
				Code:    domain.FieldPathCode(i, domain.PathInvalid),
				Message: fmt.Sprintf("data_path %q resolves to nested arrays, which this component cannot show", f.DataPath),
			})
		case opts.RequireArray && len(values) < 2:
			errs = append(errs, domain.ValidationError{
				Code:    domain.FieldPathCode(i, domain.PathNotEnoughValues),
				Message: fmt.Sprintf("data_path %q resolves to %d value(s), at least 2 are required", f.DataPath, len(values)),
			})
		}
	}
	return out, errs
}

// hasNestedArray reports whether any resolved value is itself an array.
func hasNestedArray(values []any) bool {
	for _, v := range values {
		if _, ok := v.([]any); ok {
			return true
		}
	}
	return false
}
