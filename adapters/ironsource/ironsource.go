package ironsource

import (
	"encoding/json"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// IronSource creates one app per platform, so app creation is multi-payload.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the IronSource adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "android_store_url", Kind: schema.KindText, Label: "Android Store URL"},
			{Name: "ios_store_url", Kind: schema.KindText, Label: "iOS Store URL"},
			{Name: "coppa", Kind: schema.KindRadio, Required: true, Label: "COPPA", Options: []schema.Option{
				{Label: "Yes", Value: true},
				{Label: "No", Value: false},
			}, Default: false},
			{Name: "taxonomy", Kind: schema.KindDropdown, Label: "Taxonomy", Options: []schema.Option{
				{Label: "Gaming", Value: "Gaming"},
				{Label: "Non-Gaming", Value: "Non-Gaming"},
			}, Default: "Gaming"},
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
		{Name: "app_key", Kind: schema.KindText, Required: true, Label: "App Key"},
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Ad Unit Name"},
	}
	if code, _ := networks.NormalizeAdType(adType); code == networks.AdTypeRewarded {
		fields = append(fields,
			schema.Field{Name: "reward_name", Kind: schema.KindText, Label: "Reward Name", Default: "Coins"},
			schema.Field{Name: "reward_amount", Kind: schema.KindNumber, Label: "Reward Amount", Default: 1},
		)
	}
	return fields
}

func (a *adapter) Validate(data schema.FormData) error {
	if data.String("unit_name") != "" || data.String("app_key") != "" {
		return adapters.RequireComplete(a.UnitCreationFields(data.String("ad_type")), data)
	}

	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
	}
	if data.String("android_store_url") == "" && data.String("ios_store_url") == "" {
		return &errortypes.BadInput{Message: "At least one of Android or iOS store URL is required"}
	}
	if err := adapters.CheckStoreURL("Android Store URL", data.String("android_store_url")); err != nil {
		return err
	}
	return adapters.CheckStoreURL("iOS Store URL", data.String("ios_store_url"))
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	out := make([]adapters.RequestData, 0, 2)
	for _, platform := range adapters.OrderPlatforms(platforms) {
		storeURL := data.String("android_store_url")
		platformLabel := "Android"
		if platform == networks.PlatformIOS {
			storeURL = data.String("ios_store_url")
			platformLabel = "iOS"
		}
		if storeURL == "" {
			continue
		}

		body, err := json.Marshal(map[string]interface{}{
			"appName":  data.String("app_name"),
			"platform": platformLabel,
			"storeUrl": storeURL,
			"coppa":    data.Bool("coppa"),
			"taxonomy": data.String("taxonomy"),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, adapters.RequestData{
			Method:   "POST",
			Path:     "/v1/apps",
			Body:     body,
			Platform: platform,
		})
	}
	return out, nil
}

var adUnitTypes = map[string]string{
	networks.AdTypeRewarded:     "rewardedVideo",
	networks.AdTypeInterstitial: "interstitial",
	networks.AdTypeBanner:       "banner",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	payload := map[string]interface{}{
		"appKey": data.String("app_key"),
		"adUnit": adUnitTypes[code],
		"name":   data.String("unit_name"),
	}
	if code == networks.AdTypeRewarded {
		payload["rewardName"] = data.String("reward_name")
		if amount, ok := data.Int("reward_amount"); ok {
			payload["rewardAmount"] = amount
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/v1/instances", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
