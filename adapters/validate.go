package adapters

import (
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/schema"
)

// RequireComplete returns a BadInput for the first required, currently-visible
// field missing from data, or nil when the record is complete.
func RequireComplete(fields []schema.Field, data schema.FormData) error {
	if ok, missing := schema.Complete(fields, data); !ok {
		return &errortypes.BadInput{
			Message: fmt.Sprintf("Missing required field: %s", missing[0]),
		}
	}
	return nil
}

// CheckStoreURL validates a store URL when present. An empty value passes;
// presence rules are cross-field and belong to each adapter.
func CheckStoreURL(label, value string) error {
	if value == "" {
		return nil
	}
	if !govalidator.IsURL(value) {
		return &errortypes.BadInput{
			Message: fmt.Sprintf("%s is not a valid URL", label),
		}
	}
	return nil
}

// CheckBounds enforces a numeric field's declared bounds when the value is present.
func CheckBounds(label string, data schema.FormData, key string, min, max float64) error {
	v, ok := data.Float(key)
	if !ok {
		return nil
	}
	if v < min || v > max {
		return &errortypes.BadInput{
			Message: fmt.Sprintf("%s must be between %v and %v", label, min, max),
		}
	}
	return nil
}
