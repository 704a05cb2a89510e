package mintegral

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Mintegral registers apps with a single payload; the operator picks one
// platform per submission. The API wants the os value uppercased.
type adapter struct {
	appFields []schema.Field
}

// Builder builds a new instance of the Mintegral adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "os", Kind: schema.KindRadio, Required: true, Label: "OS", Options: []schema.Option{
				{Label: "Android", Value: "android"},
				{Label: "iOS", Value: "ios"},
			}, Default: "android"},
			{Name: "package", Kind: schema.KindText, Required: true, Label: "Package / Bundle"},
			{Name: "is_live_in_store", Kind: schema.KindRadio, Required: true, Label: "Live in Store", Options: []schema.Option{
				{Label: "Yes", Value: 1},
				{Label: "No", Value: 0},
			}, Default: 1},
			{Name: "store_url", Kind: schema.KindText, Required: true, Label: "Store URL", Condition: &schema.Condition{
				Fields: []string{"is_live_in_store"},
				Test: func(d schema.FormData) bool {
					live, _ := d.Int("is_live_in_store")
					return live == 1
				},
			}},
			{Name: "coppa", Kind: schema.KindRadio, Required: true, Label: "COPPA", Options: []schema.Option{
				{Label: "No", Value: 0},
				{Label: "Yes", Value: 1},
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
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Placement Name"},
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
		return a.validateUnit(data)
	}

	schema.Purge(a.appFields, data)
	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
	}
	if live, _ := data.Int("is_live_in_store"); live == 1 {
		return adapters.CheckStoreURL("Store URL", data.String("store_url"))
	}
	return nil
}

func (a *adapter) validateUnit(data schema.FormData) error {
	adType := data.String("ad_type")
	if err := adapters.RequireComplete(a.UnitCreationFields(adType), data); err != nil {
		return err
	}
	if code, _ := networks.NormalizeAdType(adType); code == networks.AdTypeRewarded {
		if n := utf8.RuneCountInString(data.String("reward_name")); n < 1 || n > 60 {
			return &errortypes.BadInput{Message: "Reward name length must be between 1 and 60"}
		}
	}
	return nil
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	live, ok := data.Int("is_live_in_store")
	if !ok {
		live = 1
	}
	coppa, _ := data.Int("coppa")

	payload := map[string]interface{}{
		"app_name":         data.String("app_name"),
		"os":               strings.ToUpper(data.String("os")),
		"package":          data.String("package"),
		"is_live_in_store": live,
		"coppa":            coppa,
	}
	if live == 1 {
		payload["store_url"] = data.String("store_url")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []adapters.RequestData{{
		Method:   "POST",
		Path:     "/v1/apps",
		Body:     body,
		Platform: networks.NormalizePlatform(data.String("os")),
	}}, nil
}

var placementTypes = map[string]string{
	networks.AdTypeRewarded:     "rewarded_video",
	networks.AdTypeInterstitial: "new_interstitial",
	networks.AdTypeBanner:       "banner",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	payload := map[string]interface{}{
		"app_id":         data.String("app_id"),
		"placement_name": data.String("unit_name"),
		"ad_format":      placementTypes[code],
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
	return adapters.RequestData{Method: "POST", Path: "/v1/placements", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
