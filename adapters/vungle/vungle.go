package vungle

import (
	"encoding/json"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Vungle registers one app per submission (single payload); the store ID is
// the Android package or the iTunes numeric ID depending on the platform.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the Vungle (Liftoff) adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "platform", Kind: schema.KindRadio, Required: true, Label: "Platform", Options: []schema.Option{
				{Label: "Android", Value: "android"},
				{Label: "iOS", Value: "ios"},
			}, Default: "android"},
			{Name: "store_id", Kind: schema.KindText, Required: true, Label: "Store ID"},
			{Name: "is_coppa", Kind: schema.KindRadio, Required: true, Label: "COPPA", Options: []schema.Option{
				{Label: "Yes", Value: true},
				{Label: "No", Value: false},
			}, Default: false},
		},
	}
	if err := schema.Check(a.appFields); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *adapter) AppCreationFields() []schema.Field {
	return a.appFields
}

func (a *adapter) UnitCreationFields(adType string) []schema.Field {
	return []schema.Field{
		{Name: "app_id", Kind: schema.KindText, Required: true, Label: "App ID"},
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Placement Name"},
	}
}

func (a *adapter) Validate(data schema.FormData) error {
	if data.String("unit_name") != "" {
		return adapters.RequireComplete(a.UnitCreationFields(data.String("ad_type")), data)
	}
	return adapters.RequireComplete(a.appFields, data)
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	platform := networks.NormalizePlatform(data.String("platform"))
	body, err := json.Marshal(map[string]interface{}{
		"name":     data.String("app_name"),
		"platform": platform,
		"store_id": data.String("store_id"),
		"is_coppa": data.Bool("is_coppa"),
	})
	if err != nil {
		return nil, err
	}
	return []adapters.RequestData{{
		Method:   "POST",
		Path:     "/api/v2/apps",
		Body:     body,
		Platform: platform,
	}}, nil
}

var placementTypes = map[string]string{
	networks.AdTypeRewarded:     "rewarded",
	networks.AdTypeInterstitial: "interstitial",
	networks.AdTypeBanner:       "banner",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	body, err := json.Marshal(map[string]interface{}{
		"app_id": data.String("app_id"),
		"name":   data.String("unit_name"),
		"type":   placementTypes[code],
	})
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/api/v2/placements", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
