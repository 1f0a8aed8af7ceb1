package knowledge

// Decoding helpers for generic key-value documents. YAML and JSON both
// decode into map[string]any / []any, so these helpers only need to cope
// with missing keys and mistyped values, never with library-specific types.

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func stringSlice(v any) []string {
	items := anySlice(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for key, val := range m {
		if s, ok := val.(string); ok {
			out[key] = s
		}
	}
	return out
}

func anyMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
