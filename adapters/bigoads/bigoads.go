package bigoads

import (
	"encoding/json"
	"strings"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// BigOAds registers apps per platform (multi-payload) and has the widest unit
// format coverage: besides rv/is/bn it supports native and splash slots.
type adapter struct {
	appFields []schema.Field
}

// COPPA flag wire values. The API wants integers, not booleans.
const (
	coppaYes = 1
	coppaNo  = 2
)

// Builder builds a new instance of the BigOAds adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	a := &adapter{
		appFields: []schema.Field{
			{Name: "app_name", Kind: schema.KindText, Required: true, Label: "App Name"},
			{Name: "android_store_url", Kind: schema.KindText, Label: "Android Store URL"},
			{Name: "ios_store_url", Kind: schema.KindText, Label: "iOS Store URL"},
			{Name: "category", Kind: schema.KindDropdown, Label: "Category", Options: []schema.Option{
				{Label: "Game", Value: "game"},
				{Label: "Non-Game", Value: "non_game"},
			}, Default: "game"},
			{Name: "coppa", Kind: schema.KindRadio, Required: true, Label: "COPPA", Options: []schema.Option{
				{Label: "Yes", Value: coppaYes},
				{Label: "No", Value: coppaNo},
			}, Default: coppaNo},
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
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Ad Unit Name"},
		{Name: "auction_type", Kind: schema.KindRadio, Required: true, Label: "Auction Type", Options: []schema.Option{
			{Label: "Server Bidding", Value: "server_bidding"},
			{Label: "Waterfall", Value: "waterfall"},
		}, Default: "server_bidding"},
		{Name: "reserve_price", Kind: schema.KindNumber, Required: true, Label: "Reserve Price", Condition: &schema.Condition{
			Fields: []string{"auction_type"},
			Test: func(d schema.FormData) bool {
				return d.String("auction_type") == "waterfall"
			},
		}},
	}

	switch strings.ToLower(adType) {
	case "native":
		fields = append(fields, schema.Field{
			Name: "ad_specification", Kind: schema.KindDropdown, Required: true, Label: "Ad Specification",
			Options: []schema.Option{
				{Label: "Image + Text", Value: "image_text"},
				{Label: "Video", Value: "video"},
			},
		})
	case "splash":
		min, max := 3.0, 10.0
		fields = append(fields, schema.Field{
			Name: "show_duration", Kind: schema.KindNumber, Required: true, Label: "Show Duration",
			Default: 5, Min: &min, Max: &max,
		})
	}
	return fields
}

func (a *adapter) Validate(data schema.FormData) error {
	if data.String("unit_name") != "" {
		return a.validateUnit(data)
	}

	// The store-URL rule is checked first; the UI shows exactly this message
	// when an operator submits an empty form.
	if data.String("android_store_url") == "" && data.String("ios_store_url") == "" {
		return &errortypes.BadInput{Message: "At least one Store URL (Android or iOS) must be provided"}
	}
	if err := adapters.RequireComplete(a.appFields, data); err != nil {
		return err
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
	if data.String("auction_type") == "waterfall" {
		if price, ok := data.Float("reserve_price"); !ok || price <= 0 {
			return &errortypes.BadInput{Message: "Reserve price must be greater than 0"}
		}
	}
	if strings.EqualFold(data.String("ad_type"), "splash") {
		if err := adapters.CheckBounds("Show duration", data, "show_duration", 3, 10); err != nil {
			return err
		}
	}
	return nil
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	coppa, ok := data.Int("coppa")
	if !ok {
		coppa = coppaNo
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
			"app_name":  data.String("app_name"),
			"os":        platform,
			"store_url": storeURL,
			"category":  data.String("category"),
			"is_coppa":  coppa,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, adapters.RequestData{
			Method:   "POST",
			Path:     "/openapi/app/create",
			Body:     body,
			Platform: platform,
		})
	}
	return out, nil
}

var slotTypes = map[string]int{
	"rv":     1,
	"is":     2,
	"bn":     3,
	"native": 4,
	"splash": 5,
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	adType := strings.ToLower(data.String("ad_type"))
	if code, ok := networks.NormalizeAdType(adType); ok {
		adType = code
	}

	payload := map[string]interface{}{
		"name":         data.String("unit_name"),
		"ad_type":      slotTypes[adType],
		"auction_type": data.String("auction_type"),
	}
	if data.String("auction_type") == "waterfall" {
		if price, ok := data.Float("reserve_price"); ok {
			payload["reserve_price"] = price
		}
	}
	switch adType {
	case "native":
		payload["ad_specification"] = data.String("ad_specification")
	case "splash":
		if duration, ok := data.Int("show_duration"); ok {
			payload["show_duration"] = duration
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/openapi/slot/create", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return true
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
