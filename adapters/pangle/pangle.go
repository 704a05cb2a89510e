package pangle

import (
	"encoding/json"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Pangle registers apps per platform (multi-payload), identified by the
// Android package or the iOS bundle plus a download URL.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the Pangle adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "android_package", Kind: schema.KindText, Label: "Android Package"},
			{Name: "android_download_url", Kind: schema.KindText, Label: "Android Download URL"},
			{Name: "ios_bundle", Kind: schema.KindText, Label: "iOS Bundle"},
			{Name: "ios_download_url", Kind: schema.KindText, Label: "iOS Download URL"},
			{Name: "coppa", Kind: schema.KindRadio, Required: true, Label: "Child Directed", Options: []schema.Option{
				{Label: "Yes", Value: 1},
				{Label: "No", Value: 0},
			}, Default: 0},
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
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Ad Slot Name"},
	}
	if code, _ := networks.NormalizeAdType(adType); code == networks.AdTypeRewarded {
		fields = append(fields,
			schema.Field{Name: "reward_name", Kind: schema.KindText, Required: true, Label: "Reward Name", Default: "Coins"},
			schema.Field{Name: "reward_amount", Kind: schema.KindNumber, Label: "Reward Amount", Default: 1},
		)
	}
	return fields
}

func (a *adapter) Validate(data schema.FormData) error {
	if data.String("unit_name") != "" {
		return adapters.RequireComplete(a.UnitCreationFields(data.String("ad_type")), data)
	}

	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
	}
	if data.String("android_package") == "" && data.String("ios_bundle") == "" {
		return &errortypes.BadInput{Message: "At least one of Android package or iOS bundle must be provided"}
	}
	if err := adapters.CheckStoreURL("Android Download URL", data.String("android_download_url")); err != nil {
		return err
	}
	return adapters.CheckStoreURL("iOS Download URL", data.String("ios_download_url"))
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	coppa, _ := data.Int("coppa")

	out := make([]adapters.RequestData, 0, 2)
	for _, platform := range adapters.OrderPlatforms(platforms) {
		identifier := data.String("android_package")
		downloadURL := data.String("android_download_url")
		if platform == networks.PlatformIOS {
			identifier = data.String("ios_bundle")
			downloadURL = data.String("ios_download_url")
		}
		if identifier == "" {
			continue
		}

		body, err := json.Marshal(map[string]interface{}{
			"app_name":     data.String("app_name"),
			"os":           platform,
			"package_name": identifier,
			"download_url": downloadURL,
			"coppa":        coppa,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, adapters.RequestData{
			Method:   "POST",
			Path:     "/union/media/open_api/app/create",
			Body:     body,
			Platform: platform,
		})
	}
	return out, nil
}

var slotTypes = map[string]string{
	networks.AdTypeRewarded:     "rewarded_video",
	networks.AdTypeInterstitial: "interstitial",
	networks.AdTypeBanner:       "banner",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	payload := map[string]interface{}{
		"app_id":       data.String("app_id"),
		"ad_slot_name": data.String("unit_name"),
		"ad_slot_type": slotTypes[code],
	}
	if code == networks.AdTypeRewarded {
		payload["reward_name"] = data.String("reward_name")
		if amount, ok := data.Int("reward_amount"); ok {
			payload["reward_amount"] = amount
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/union/media/open_api/slot/create", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
