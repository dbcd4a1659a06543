package jsonpath

import "sort"

// Find sanitises raw and resolves it against tree.
func Find(tree any, raw string) ([]any, error) {
	p, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return p.Find(tree), nil
}

// Find resolves the path against tree. The first segment matches at any
// depth; the remaining segments are applied to each of those matches.
// Matches are returned in document order, with object keys visited sorted.
func (p Path) Find(tree any) []any {
	if len(p.segments) == 0 {
		return nil
	}
	var current []any
	walk(tree, func(node any) {
		current = append(current, p.segments[0].apply(node)...)
	})
	for _, seg := range p.segments[1:] {
		var next []any
		for _, node := range current {
			next = append(next, seg.apply(node)...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}

func (s segment) apply(node any) []any {
	var out []any
	switch s.key {
	case "":
		out = []any{node}
	case "*":
		out = children(node)
	default:
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := m[s.key]
		if !ok {
			return nil
		}
		out = []any{v}
	}
	for _, o := range s.ops {
		var next []any
		for _, v := range out {
			switch o.kind {
			case opSpread:
				if arr, ok := v.([]any); ok {
					next = append(next, arr...)
				}
			case opIndex:
				if arr, ok := v.([]any); ok && o.index < len(arr) {
					next = append(next, arr[o.index])
				}
			}
		}
		out = next
	}
	return out
}

// walk visits node and all descendants in pre-order.
func walk(node any, visit func(any)) {
	visit(node)
	for _, c := range children(node) {
		walk(c, visit)
	}
}

func children(node any) []any {
	switch t := node.(type) {
	case []any:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = t[k]
		}
		return out
	}
	return nil
}
