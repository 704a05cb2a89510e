package applovin

import (
	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/schema"
)

// AppLovin is managed entirely from the MAX dashboard; the adapter is
// registered so listing and slot-name resolution still dispatch through the
// registry, but neither creation operation is supported.
type adapter struct{}

// Builder builds a new instance of the AppLovin adapter.
func Builder(cfg config.Network) (adapters.Adapter, error) {
	return &adapter{}, nil
}

func (a *adapter) AppCreationFields() []schema.Field {
	return nil
}

func (a *adapter) UnitCreationFields(adType string) []schema.Field {
	return nil
}

func (a *adapter) Validate(data schema.FormData) error {
	return &errortypes.UnsupportedOperation{Message: "applovin apps and ad units are managed from the AppLovin dashboard"}
}

func (a *adapter) BuildAppPayloads(data schema.FormData, platforms []string) ([]adapters.RequestData, error) {
	return nil, &errortypes.UnsupportedOperation{Message: "applovin does not support app creation"}
}

func (a *adapter) BuildUnitPayload(data schema.FormData) (adapters.RequestData, error) {
	return adapters.RequestData{}, &errortypes.UnsupportedOperation{Message: "applovin does not support ad unit creation"}
}

func (a *adapter) SupportsAppCreation() bool {
	return false
}

func (a *adapter) SupportsUnitCreation() bool {
	return false
}
