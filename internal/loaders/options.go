package loaders

import "fmt"

// options reads loosely typed values decoded from TOML or JSON.
type options map[string]any

// string returns the value at key, or "" if absent or not a string.
func (o options) string(key string) string {
	s, _ := o[key].(string)
	return s
}

// strings returns a string list. Each key is tried in turn and a single
// string is accepted in place of a list.
func (o options) strings(keys ...string) []string {
	for _, key := range keys {
		switch v := o[key].(type) {
		case string:
			if v != "" {
				return []string{v}
			}
		case []string:
			return v
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

// stringMap returns a table as string pairs. Non-string values are formatted.
func (o options) stringMap(key string) map[string]string {
	var src map[string]any
	switch v := o[key].(type) {
	case map[string]string:
		return v
	case map[string]any:
		src = v
	default:
		return nil
	}

	out := make(map[string]string, len(src))
	for k, v := range src {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func (o options) int(key string) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func (o options) float(key string) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
