package schema

import "strconv"

// Typed accessors for FormData. Records assembled from JSON carry numbers as
// float64, so the numeric readers fold the usual encodings into one type.

// String returns the value for key as a string, or "" when absent.
func (d FormData) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Int returns the value for key as an int. The second return value is false
// when the key is absent or not numeric.
func (d FormData) Int(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Float returns the value for key as a float64.
func (d FormData) Float(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the value for key as a bool, folding the string forms "true"
// and "false" that some networks use as option values.
func (d FormData) Bool(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

// Strings returns the value for key as a string slice, for multiselect fields.
func (d FormData) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a shallow copy of the record.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
