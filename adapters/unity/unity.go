package unity

import (
	"encoding/json"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/schema"
)

// Unity apps (projects) are registered from the Unity dashboard, not through
// this console, so only placement creation is supported here.
type adapter struct{}

// Builder builds a new instance of the Unity Ads adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	return &adapter{}, nil
}

func (a *adapter) AppCreationFields() []schema.Field {
	return nil
}

func (a *adapter) UnitCreationFields(adType string) []schema.Field {
	return []schema.Field{
		{Name: "game_id", Kind: schema.KindText, Required: true, Label: "Game ID"},
		{Name: "unit_name", Kind: schema.KindHidden, Required: true, Label: "Placement ID"},
	}
}

func (a *adapter) Validate(data schema.FormData) error {
	return adapters.RequireComplete(a.UnitCreationFields(data.String("ad_type")), data)
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	return nil, &errortypes.UnsupportedOperation{Message: "unity does not support app creation; register the project from the Unity dashboard"}
}

var placementTypes = map[string]string{
	networks.AdTypeRewarded:     "rewarded",
	networks.AdTypeInterstitial: "interstitial",
	networks.AdTypeBanner:       "banner",
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	code, _ := networks.NormalizeAdType(data.String("ad_type"))
	body, err := json.Marshal(map[string]interface{}{
		"gameId":      data.String("game_id"),
		"placementId": data.String("unit_name"),
		"adFormat":    placementTypes[code],
	})
	if err != nil {
		return adapters.RequestData{}, err
	}
	return adapters.RequestData{Method: "POST", Path: "/advertise/v1/placements", Body: body}, nil
}

func (a *adapter) SupportsAppCreation() bool {
	return false
}

func (a *adapter) SupportsUnitCreation() bool {
	return true
}
