package transform

import (
	"sort"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/extract"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/jsonpath"
)

// CollectAllFields expands the chosen fields to every renderable leaf of the
// array items they iterate over. Chosen fields come first, then the remaining
// leaves in key order. Leaves are scalars and arrays of scalars; nested
// objects are descended into and arrays of objects are skipped.
func CollectAllFields(chosen []domain.DataField, data any) []domain.DataField {
	prefix, arrayKey, ok := itemsPrefix(chosen)
	if !ok {
		return nil
	}
	var sample map[string]any
	for _, item := range prefix.Find(data) {
		if m, isMap := item.(map[string]any); isMap {
			sample = m
			break
		}
	}
	if sample == nil {
		return nil
	}

	out := domain.CloneFields(chosen)
	seenPath := make(map[string]bool, len(chosen))
	seenName := make(map[string]bool, len(chosen))
	for _, f := range chosen {
		seenPath[f.DataPath] = true
		seenName[f.Name] = true
	}
	var walk func(obj map[string]any, base jsonpath.Path, parentKey string)
	walk = func(obj map[string]any, base jsonpath.Path, parentKey string) {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := base.Child(k)
			switch v := obj[k].(type) {
			case map[string]any:
				walk(v, p, k)
				continue
			case []any:
				if containsObject(v) {
					continue
				}
			}
			path := p.String()
			if seenPath[path] {
				continue
			}
			seenPath[path] = true
			name := GenerateFieldName(k)
			if seenName[name] {
				name = strings.TrimSpace(GenerateFieldName(parentKey) + " " + name)
			}
			seenName[name] = true
			out = append(out, domain.DataField{
				ID:       extract.FieldID(path),
				Name:     name,
				DataPath: path,
				Data:     p.Find(data),
			})
		}
	}
	walk(sample, prefix, arrayKey)
	return out
}

// itemsPrefix finds the array the chosen fields iterate over.
func itemsPrefix(fields []domain.DataField) (jsonpath.Path, string, bool) {
	for _, f := range fields {
		p, err := jsonpath.Parse(f.DataPath)
		if err != nil {
			continue
		}
		if prefix, ok := p.Prefix(); ok {
			return prefix, prefix.LastKey(), true
		}
	}
	return jsonpath.Path{}, "", false
}

func containsObject(arr []any) bool {
	for _, e := range arr {
		if _, ok := e.(map[string]any); ok {
			return true
		}
	}
	return false
}
