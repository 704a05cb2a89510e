package schema

import "fmt"

// FieldKind identifies the widget and value shape of a form input.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindNumber      FieldKind = "number"
	KindRadio       FieldKind = "radio"
	KindDropdown    FieldKind = "dropdown"
	KindMultiselect FieldKind = "multiselect"
	KindHidden      FieldKind = "hidden"
)

// Option pairs a human label with the exact scalar the network API expects.
// Value types are contractual: an int option must stay an int all the way to
// the wire, a bool a bool, and so on.
type Option struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// Condition is a visibility predicate over the form state accumulated so far.
// Fields lists the earlier field names the predicate reads, so the
// no-forward-reference rule can be checked mechanically rather than assumed.
type Condition struct {
	Fields []string
	Test   func(FormData) bool
}

// Field describes one form input: how to render it, whether it is required,
// and which values it may resolve to. Fields are constructed once per adapter
// at startup and never mutated.
type Field struct {
	Name      string      `json:"name"`
	Kind      FieldKind   `json:"kind"`
	Required  bool        `json:"required"`
	Label     string      `json:"label"`
	Options   []Option    `json:"options,omitempty"`
	Default   interface{} `json:"default,omitempty"`
	Min       *float64    `json:"min,omitempty"`
	Max       *float64    `json:"max,omitempty"`
	Condition *Condition  `json:"-"`
}

// FormData is the accumulated form state keyed by field name.
type FormData map[string]interface{}

func (f *Field) visible(data FormData) bool {
	if f.Condition == nil {
		return true
	}
	return f.Condition.Test(data)
}

// Renderable filters the schema to the fields currently visible given the
// accumulated form state, preserving declaration order. Non-conditional
// fields are always included.
func Renderable(fields []Field, data FormData) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.visible(data) {
			out = append(out, f)
		}
	}
	return out
}

// Complete reports whether every required, currently-visible field has a
// non-empty value in data. The second return value lists the labels of the
// missing fields in declaration order.
func Complete(fields []Field, data FormData) (bool, []string) {
	var missing []string
	for _, f := range fields {
		if !f.Required || !f.visible(data) {
			continue
		}
		if isEmpty(data[f.Name]) {
			label := f.Label
			if label == "" {
				label = f.Name
			}
			missing = append(missing, label)
		}
	}
	return len(missing) == 0, missing
}

// Purge removes values of conditional fields that are no longer visible, so a
// field filled while visible cannot leak stale data into a payload after the
// answer that exposed it changes.
func Purge(fields []Field, data FormData) {
	for _, f := range fields {
		if f.Condition == nil {
			continue
		}
		if !f.visible(data) {
			delete(data, f.Name)
		}
	}
}

// Check verifies the schema's structural invariants: unique names, and every
// condition referencing only fields declared earlier in the same schema.
func Check(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("schema: duplicate field name %q", f.Name)
		}
		if f.Condition != nil {
			for _, ref := range f.Condition.Fields {
				if _, ok := seen[ref]; !ok {
					return fmt.Errorf("schema: field %q condition references %q, which is not declared earlier", f.Name, ref)
				}
			}
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}
