package info

// mergeTrees overlays one definition tree on another without mutating either.
// Objects merge per key recursively; scalars and sequences from the overlay
// replace the base value wholesale.
func mergeTrees(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		if bm, ok := merged[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				merged[k] = mergeTrees(bm, om)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}
