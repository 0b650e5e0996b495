package draft

import (
	"io"
	"reflect"
	"strings"
)

// Field names that must never reach persistent storage: secrets and
// consent/agreement flags. Matching is case-insensitive; "password" matches
// as a substring so confirmation fields are covered too.
var excludedFields = map[string]struct{}{
	"agree":   {},
	"consent": {},
	"token":   {},
}

func excludedName(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "password") {
		return true
	}
	_, ok := excludedFields[lower]
	return ok
}

// unserializable reports values that must never reach the JSON encoder:
// raw file handles/blobs and functions.
func unserializable(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case []byte, io.Reader:
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// sanitizeForm returns a copy of in with excluded names and unserializable
// values dropped, recursing one level into nested plain objects.
func sanitizeForm(in map[string]any) map[string]any {
	return sanitizeMap(in, 0)
}

func sanitizeMap(in map[string]any, depth int) map[string]any {
	out := make(map[string]any, len(in))
	for name, value := range in {
		if excludedName(name) || unserializable(value) {
			continue
		}
		if nested, ok := value.(map[string]any); ok && depth == 0 {
			out[name] = sanitizeMap(nested, depth+1)
			continue
		}
		out[name] = value
	}
	return out
}
