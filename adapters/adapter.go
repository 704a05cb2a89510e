package adapters

import (
	"encoding/json"

	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Adapter encapsulates everything network-specific behind a fixed contract so
// callers never branch on network identity.
type Adapter interface {
	// AppCreationFields returns the static schema for the "create app" form.
	AppCreationFields() []schema.Field

	// UnitCreationFields returns the static schema for the "create unit" form.
	// Some networks expose extra fields for specific ad formats, so the format
	// is an input. An empty adType returns the format-independent fields.
	UnitCreationFields(adType string) []schema.Field

	// Validate checks required and conditionally-required fields plus the
	// network's cross-field rules. It returns the first violated rule only;
	// the UI depends on that ordering for deterministic error display.
	Validate(data schema.FormData) error

	// BuildAppPayloads maps the record to the wire bodies the network expects,
	// one per requested platform for multi-payload networks and exactly one
	// for single-payload networks. Android is always ordered before iOS.
	// It must not fail for records that pass Validate.
	BuildAppPayloads(data schema.FormData, platforms []string) ([]RequestData, error)

	// BuildUnitPayload maps the record for ad-unit creation.
	BuildUnitPayload(data schema.FormData) (RequestData, error)

	SupportsAppCreation() bool
	SupportsUnitCreation() bool
}

// RequestData packages the JSON body for one outbound call.
type RequestData struct {
	Method   string
	Path     string
	Body     json.RawMessage
	Platform string
}

// OrderPlatforms normalizes and orders the requested platforms: Android is
// attempted before iOS, duplicates are dropped, nil means both.
func OrderPlatforms(platforms []string) []string {
	if len(platforms) == 0 {
		return []string{networks.PlatformAndroid, networks.PlatformIOS}
	}

	var android, ios bool
	for _, p := range platforms {
		switch networks.NormalizePlatform(p) {
		case networks.PlatformAndroid:
			android = true
		case networks.PlatformIOS:
			ios = true
		}
	}

	out := make([]string, 0, 2)
	if android {
		out = append(out, networks.PlatformAndroid)
	}
	if ios {
		out = append(out, networks.PlatformIOS)
	}
	return out
}
