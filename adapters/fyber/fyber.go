package fyber

import (
	"encoding/json"
	"strconv"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Fyber takes one payload per call; the platform argument selects whether the
// Android package or the iOS bundle feeds the shared bundle/store_url keys.
// COPPA options carry the literal strings "true"/"false" and are cast to a
// real boolean at payload time.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the Fyber (Digital Turbine) adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "android_bundle", Kind: schema.KindText, Label: "Android Package"},
			{Name: "ios_bundle", Kind: schema.KindText, Label: "iOS Bundle"},
			{Name: "android_store_url", Kind: schema.KindText, Label: "Android Store URL"},
			{Name: "ios_store_url", Kind: schema.KindText, Label: "iOS Store URL"},
			{Name: "coppa", Kind: schema.KindRadio, Required: true, Label: "COPPA", Options: []schema.Option{
				{Label: "Yes", Value: "true"},
				{Label: "No", Value: "false"},
			}, Default: "false"},
			{Name: "mediation_platforms", Kind: schema.KindMultiselect, Required: true, Label: "Mediation Platforms", Options: []schema.Option{
				{Label: "MAX", Value: "max"},
				{Label: "LevelPlay", Value: "levelplay"},
				{Label: "AdMob", Value: "admob"},
				{Label: "Others", Value: "others"},
			}},
			{Name: "mediation_platform_name", Kind: schema.KindText, Required: true, Label: "Mediation Platform Name", Condition: &schema.Condition{
				Fields: []string{"mediation_platforms"},
				Test: func(d schema.FormData) bool {
					for _, p := range d.Strings("mediation_platforms") {
						if p == "others" {
							return true
						}
					}
					return false
				},
			}},
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

	schema.Purge(a.appFields, data)
	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
	}
	if data.String("android_bundle") == "" && data.String("ios_bundle") == "" {
		return &errortypes.BadInput{Message: "At least one of Android package or iOS bundle must be provided"}
	}
	if err := adapters.CheckStoreURL("Android Store URL", data.String("android_store_url")); err != nil {
		return err
	}
	return adapters.CheckStoreURL("iOS Store URL", data.String("ios_store_url"))
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	platform := ""
	for _, p := range adapters.OrderPlatforms(platforms) {
		if a.bundleFor(data, p) != "" {
			platform = p
			break
		}
	}
	if platform == "" {
		platform = networks.PlatformAndroid
	}

	coppa, _ := strconv.ParseBool(data.String("coppa"))
	body, err := json.Marshal(map[string]interface{}{
		"name":                data.String("app_name"),
		"platform":            platform,
		"bundle":              a.bundleFor(data, platform),
		"store_url":           a.storeURLFor(data, platform),
		"coppa":               coppa,
		"mediation_platforms": a.mediationPlatforms(data),
	})
	if err != nil {
		return nil, err
	}
	return []adapters.RequestData{{
		Method:   "POST",
		Path:     "/console/apps",
		Body:     body,
		Platform: platform,
	}}, nil
}

func (a *adapter) bundleFor(data schema.FormData, platform string) string {
	if platform == networks.PlatformIOS {
		return data.String("ios_bundle")
	}
	return data.String("android_bundle")
}

func (a *adapter) storeURLFor(data schema.FormData, platform string) string {
	if platform == networks.PlatformIOS {
		return data.String("ios_store_url")
	}
	return data.String("android_store_url")
}

// mediationPlatforms swaps the "others" marker for the free-text name the
// conditional field collected.
func (a *adapter) mediationPlatforms(data schema.FormData) []string {
	selected := data.Strings("mediation_platforms")
	out := make([]string, 0, len(selected))
	for _, p := range selected {
		if p == "others" {
			if custom := data.String("mediation_platform_name"); custom != "" {
				out = append(out, custom)
			}
			continue
		}
		out = append(out, p)
	}
	return out
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
	return adapters.RequestData{Method: "POST", Path: "/console/placements", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
