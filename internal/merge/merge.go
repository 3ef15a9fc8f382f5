// Package merge implements the deep-merge primitive shared by config
// overlay folding and render-context assembly.
//
// Semantics:
//   - Maps are merged recursively, key by key.
//   - Scalars and slices from src replace the dst value wholesale.
//   - src always wins on conflict.
//
// The result never aliases nested maps from src, so callers may hand the
// merged map to templates without risking writes back into their inputs.
package merge

// Maps deep-merges src into dst. dst is mutated and returned for chaining.
func Maps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, v := range src {
		if mv, ok := v.(map[string]any); ok {
			if existing, ok2 := dst[k].(map[string]any); ok2 {
				Maps(existing, mv)
			} else {
				cp := map[string]any{}
				Maps(cp, mv)
				dst[k] = cp
			}
			continue
		}
		dst[k] = v
	}
	return dst
}

// Layered merges the given maps into a fresh map, lowest precedence
// first. None of the inputs are mutated.
func Layered(layers ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, layer := range layers {
		Maps(out, layer)
	}
	return out
}
