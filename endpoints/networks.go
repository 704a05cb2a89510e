package endpoints

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
)

type networkSummary struct {
	ID                   networks.NetworkName `json:"id"`
	DisplayName          string               `json:"displayName"`
	SupportsAppCreation  bool                 `json:"supportsAppCreation"`
	SupportsUnitCreation bool                 `json:"supportsUnitCreation"`
}

// NewNetworksEndpoint lists the enabled networks with display names and
// creation capabilities.
func NewNetworksEndpoint(reg *registry.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		displayNames := reg.DisplayNames()

		out := make([]networkSummary, 0, len(displayNames))
		for _, name := range reg.ListAvailable() {
			adapter, err := reg.Get(name)
			if err != nil {
				continue
			}
			out = append(out, networkSummary{
				ID:                   name,
				DisplayName:          displayNames[name],
				SupportsAppCreation:  adapter.SupportsAppCreation(),
				SupportsUnitCreation: adapter.SupportsUnitCreation(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
