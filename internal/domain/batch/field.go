package batch

import (
	"strings"
	"time"
)

// Field is one mutable business field of an entity. Column is the persisted
// column name; Fold marks the field as case-insensitive.
type Field[T any] struct {
	Column string
	Value  func(T) any
	Fold   bool
}

// Diff returns the columns whose incoming value differs from current, mapped
// to the incoming value. Strings compare after trimming (and case folding for
// Fold fields); times compare at day precision.
func Diff[T any](fields []Field[T], current, incoming T) map[string]any {
	changed := make(map[string]any)
	for _, f := range fields {
		next := f.Value(incoming)
		if normalize(f.Value(current), f.Fold) != normalize(next, f.Fold) {
			changed[f.Column] = next
		}
	}
	return changed
}

// Values maps every field column to its value in v.
func Values[T any](fields []Field[T], v T) map[string]any {
	all := make(map[string]any, len(fields))
	for _, f := range fields {
		all[f.Column] = f.Value(v)
	}
	return all
}

func normalize(v any, fold bool) any {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if fold {
			s = strings.ToLower(s)
		}
		return s
	case *string:
		if x == nil {
			return ""
		}
		return normalize(*x, fold)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(time.DateOnly)
	case *time.Time:
		if x == nil {
			return ""
		}
		return normalize(*x, fold)
	}
	return v
}
