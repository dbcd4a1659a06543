package inputdata

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// CSV parses delimited text with a header row into a list of row objects.
type CSV struct {
	name  string
	comma rune
}

// NewCSV creates a CSV transformer for the given delimiter.
func NewCSV(name string, comma rune) CSV {
	return CSV{name: name, comma: comma}
}

func (c CSV) Name() string { return c.name }

// Detect requires a header and at least one data line with the same,
// greater-than-one, number of delimiters.
func (c CSV) Detect(head string) bool {
	t := strings.TrimSpace(head)
	if t == "" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return false
	}
	lines := strings.SplitN(t, "\n", 3)
	if len(lines) < 2 {
		return false
	}
	sep := string(c.comma)
	n := strings.Count(lines[0], sep)
	return n > 0 && strings.Count(lines[1], sep) == n
}

func (c CSV) Transform(raw string) (any, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = c.comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "%s: missing header row", c.name)
	}
	if err != nil {
		return nil, domain.Errorf(domain.CodeInvalidInputFormat, "%s: %w", c.name, err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = SanitizeHeader(h, i)
	}

	rows := []any{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Errorf(domain.CodeInvalidInputFormat, "%s: %w", c.name, err)
		}
		row := make(map[string]any, len(keys))
		for i, k := range keys {
			if i < len(rec) {
				row[k] = CoerceCell(rec[i])
			} else {
				row[k] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SanitizeHeader turns a header cell into an identifier: non-alphanumerics
// become "_", and names starting with a digit or hyphen get a "field_" prefix.
func SanitizeHeader(h string, index int) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return "field_" + strconv.Itoa(index+1)
	}
	prefix := h[0] >= '0' && h[0] <= '9' || h[0] == '-'
	var b strings.Builder
	if prefix {
		b.WriteString("field_")
	}
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CoerceCell converts a cell to bool, number, nil or trimmed string.
func CoerceCell(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	switch strings.ToLower(t) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return t
}
