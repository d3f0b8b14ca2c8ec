package jwt

import "strconv"

// getPayload extracts the nested payload claim, if any
func getPayload(claims map[string]any) (map[string]any, bool) {
	if payload, ok := claims["payload"].(map[string]any); ok {
		return payload, true
	}
	return nil, false
}

// getString safely extracts a string or numeric value as string
func getString(m map[string]any, key string) string {
	switch val := m[key].(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	}
	return ""
}

// firstString returns the first non-empty key, looking at the payload
// before the top level claims
func firstString(claims, payload map[string]any, keys ...string) string {
	for _, m := range []map[string]any{payload, claims} {
		if m == nil {
			continue
		}
		for _, k := range keys {
			if v := getString(m, k); v != "" {
				return v
			}
		}
	}
	return ""
}
