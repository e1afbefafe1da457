package validator

import "fmt"

// walker accumulates path-qualified schema violations while a document is
// being parsed, so a single pass reports every problem at once.
type walker struct {
	errors   []string
	warnings []string
}

func newWalker() *walker {
	return &walker{}
}

func (w *walker) addError(path, message string) {
	if path == "" {
		w.errors = append(w.errors, message)
		return
	}
	w.errors = append(w.errors, fmt.Sprintf("%s: %s", path, message))
}

func (w *walker) addWarning(path, message string) {
	w.warnings = append(w.warnings, fmt.Sprintf("%s: %s", path, message))
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func (w *walker) object(value any, path string) (map[string]any, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		w.addError(path, "must be an object")
		return nil, false
	}
	return obj, true
}

func (w *walker) requireField(obj map[string]any, key string) (any, bool) {
	value, ok := obj[key]
	if !ok {
		w.addError(key, "is required")
		return nil, false
	}
	return value, true
}

func (w *walker) requireString(obj map[string]any, key string) (string, bool) {
	return w.requireStringAt(obj, "", key)
}

func (w *walker) requireStringAt(obj map[string]any, base, key string) (string, bool) {
	path := joinPath(base, key)
	value, ok := obj[key]
	if !ok {
		w.addError(path, "is required")
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		w.addError(path, "must be a string")
		return "", false
	}
	if s == "" {
		w.addError(path, "must not be empty")
		return "", false
	}
	return s, true
}

func (w *walker) requireBool(obj map[string]any, key string) (bool, bool) {
	return w.requireBoolAt(obj, "", key)
}

func (w *walker) requireBoolAt(obj map[string]any, base, key string) (bool, bool) {
	path := joinPath(base, key)
	value, ok := obj[key]
	if !ok {
		w.addError(path, "is required")
		return false, false
	}
	b, ok := value.(bool)
	if !ok {
		w.addError(path, "must be a boolean")
		return false, false
	}
	return b, true
}

func (w *walker) requireNumber(obj map[string]any, key string) (float64, bool) {
	value, ok := obj[key]
	if !ok {
		w.addError(key, "is required")
		return 0, false
	}
	n, ok := value.(float64)
	if !ok {
		w.addError(key, "must be a number")
		return 0, false
	}
	return n, true
}

// requireStringArray checks presence, element types, and a minimum length.
func (w *walker) requireStringArray(obj map[string]any, key string, minLen int) []string {
	value, ok := obj[key]
	if !ok {
		w.addError(key, "is required")
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		w.addError(key, "must be an array")
		return nil
	}
	if len(arr) < minLen {
		w.addError(key, fmt.Sprintf("must contain at least %d entries", minLen))
		return nil
	}

	out := make([]string, 0, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok || s == "" {
			w.addError(fmt.Sprintf("%s.%d", key, i), "must be a non-empty string")
			continue
		}
		out = append(out, s)
	}
	return out
}

// eachItem iterates the object items of a required array field, reporting
// missing, mistyped, or under-length arrays and delegating per-item parsing.
func (w *walker) eachItem(obj map[string]any, base, key string, minLen int, fn func(path string, item map[string]any)) {
	path := joinPath(base, key)
	value, ok := obj[key]
	if !ok {
		w.addError(path, "is required")
		return
	}
	arr, ok := value.([]any)
	if !ok {
		w.addError(path, "must be an array")
		return
	}
	if len(arr) < minLen {
		w.addError(path, fmt.Sprintf("must contain at least %d entries", minLen))
	}

	for i, el := range arr {
		elPath := fmt.Sprintf("%s.%d", path, i)
		item, ok := w.object(el, elPath)
		if !ok {
			continue
		}
		fn(elPath, item)
	}
}
