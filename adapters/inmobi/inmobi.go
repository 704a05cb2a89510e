package inmobi

import (
	"encoding/json"
	"strings"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// InMobi registers apps per platform (multi-payload). childDirected is a
// tri-state integer on the wire: 1 yes, 2 no, 3 unknown.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the InMobi adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "android_store_url", Kind: schema.KindText, Label: "Android Store URL"},
			{Name: "ios_store_url", Kind: schema.KindText, Label: "iOS Store URL"},
			{Name: "child_directed", Kind: schema.KindDropdown, Required: true, Label: "Child Directed", Options: []schema.Option{
				{Label: "Yes", Value: 1},
				{Label: "No", Value: 2},
				{Label: "Unknown", Value: 3},
			}, Default: 3},
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
	fields := []schema.Field{
		{Name: "app_id", Kind: schema.KindText, Required: true, Label: "App ID"},
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Placement Name"},
	}
	if code, _ := networks.NormalizeAdType(adType); code == networks.AdTypeBanner {
		fields = append(fields,
			schema.Field{Name: "auto_refresh", Kind: schema.KindRadio, Required: true, Label: "Auto Refresh", Options: []schema.Option{
				{Label: "Yes", Value: true},
				{Label: "No", Value: false},
			}, Default: false},
			schema.Field{Name: "refresh_seconds", Kind: schema.KindNumber, Required: true, Label: "Refresh Seconds", Default: 30, Condition: &schema.Condition{
				Fields: []string{"auto_refresh"},
				Test: func(d schema.FormData) bool {
					return d.Bool("auto_refresh")
				},
			}},
		)
	}
	return fields
}

func (a *adapter) Validate(data schema.FormData) error {
	if data.String("unit_name") != "" {
		return a.validateUnit(data)
	}

	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
	}
	if data.String("android_store_url") == "" && data.String("ios_store_url") == "" {
		return &errortypes.BadInput{Message: "At least one of Android or iOS store URL is required"}
	}
	if cd, ok := data.Int("child_directed"); !ok || cd < 1 || cd > 3 {
		return &errortypes.BadInput{Message: "Child Directed must be Yes, No or Unknown"}
	}
	if err := adapters.CheckStoreURL("Android Store URL", data.String("android_store_url")); err != nil {
		return err
	}
	return adapters.CheckStoreURL("iOS Store URL", data.String("ios_store_url"))
}

func (a *adapter) validateUnit(data schema.FormData) error {
	fields := a.UnitCreationFields(data.String("ad_type"))
	schema.Purge(fields, data)
	if err := adapters.RequireComplete(fields, data); err != nil {
		return err
	}
	if data.Bool("auto_refresh") {
		if secs, ok := data.Int("refresh_seconds"); !ok || secs < 1 {
			return &errortypes.BadInput{Message: "Banner refresh seconds must be at least 1"}
		}
	}
	return nil
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	childDirected, ok := data.Int("child_directed")
	if !ok {
		childDirected = 3
	}

	out := make([]adapters.RequestData, 0, 2)
	for _, platform := range adapters.OrderPlatforms(platforms) {
		storeURL := data.String("android_store_url")
		if platform == networks.PlatformIOS {
			storeURL = data.String("ios_store_url")
		}
		if storeURL == "" {
			continue
		}

		body, err := json.Marshal(map[string]interface{}{
			"appName":       data.String("app_name"),
			"platform":      strings.ToUpper(platform),
			"storeUrl":      storeURL,
			"childDirected": childDirected,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, adapters.RequestData{
			Method:   "POST",
			Path:     "/publisher/apps",
			Body:     body,
			Platform: platform,
		})
	}
	return out, nil
}

var placementTypes = map[string]string{
	networks.AdTypeRewarded:     "REWARDED_VIDEO",
	networks.AdTypeInterstitial: "INTERSTITIAL",
	networks.AdTypeBanner:       "BANNER",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	payload := map[string]interface{}{
		"appId":         data.String("app_id"),
		"placementName": data.String("unit_name"),
		"placementType": placementTypes[code],
	}
	if code == networks.AdTypeBanner {
		payload["autoRefresh"] = data.Bool("auto_refresh")
		if data.Bool("auto_refresh") {
			if secs, ok := data.Int("refresh_seconds"); ok {
				payload["refreshInterval"] = secs
			}
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/publisher/placements", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
