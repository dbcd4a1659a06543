package payload

import (
	"encoding/json"
	"fmt"
)

// keepItems is how many elements of each array the LLM sees.
const keepItems = 2

// Reduce returns a copy of tree in which every array longer than two elements
// is cut to its first two, and the key holding it is annotated with the
// original size. With boundary 0 the annotation is "k[size: N]"; otherwise it
// is "k[size over B]" or "k[size up to B]". The input is never modified.
func Reduce(tree any, boundary int) any {
	switch t := tree.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if arr, ok := v.([]any); ok && len(arr) > keepItems {
				out[annotate(k, len(arr), boundary)] = reduceSlice(arr, boundary)
				continue
			}
			out[k] = Reduce(v, boundary)
		}
		return out
	case []any:
		return reduceSlice(t, boundary)
	default:
		return tree
	}
}

func reduceSlice(arr []any, boundary int) []any {
	n := len(arr)
	if n > keepItems {
		n = keepItems
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = Reduce(arr[i], boundary)
	}
	return out
}

func annotate(key string, size, boundary int) string {
	switch {
	case boundary <= 0:
		return fmt.Sprintf("%s[size: %d]", key, size)
	case size > boundary:
		return fmt.Sprintf("%s[size over %d]", key, boundary)
	default:
		return fmt.Sprintf("%s[size up to %d]", key, boundary)
	}
}

// ReducedJSON renders the LLM view of tree.
func ReducedJSON(tree any, boundary int) (string, error) {
	if s, ok := tree.(string); ok {
		return s, nil
	}
	b, err := json.MarshalIndent(Reduce(tree, boundary), "", "  ")
	if err != nil {
		return "", fmt.Errorf("payload: marshal reduced data: %w", err)
	}
	return string(b), nil
}
