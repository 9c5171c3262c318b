package rule

import "fmt"

// MatchesCriteria reports whether a record's projected fields satisfy every
// criterion. An empty criteria list matches every record.
func MatchesCriteria(criteria []Criterion, fields map[string]any) bool {
	for _, c := range criteria {
		got, ok := fields[c.Field]
		if !matchValue(c.Value, got, ok) {
			return false
		}
	}

	return true
}

// matchValue compares one criterion value against a record field value.
// Comparison coerces both sides to string form so that numeric JSON types
// do not fail on int/float mismatches. A nil criterion value matches only
// an absent or nil field.
func matchValue(want, got any, present bool) bool {
	if want == nil {
		return !present || got == nil
	}

	if !present || got == nil {
		return false
	}

	switch w := want.(type) {
	case []any:
		for _, item := range w {
			if fmt.Sprint(item) == fmt.Sprint(got) {
				return true
			}
		}

		return false
	case []string:
		for _, item := range w {
			if item == fmt.Sprint(got) {
				return true
			}
		}

		return false
	default:
		return fmt.Sprint(want) == fmt.Sprint(got)
	}
}
