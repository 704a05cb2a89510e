package endpoints

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
	"github.com/openmediation/mediation-console/schema"
)

// NewFieldsEndpoint serves the creation field schema for one network, so the
// UI renders forms purely from data. op selects "app" or "unit"; adtype only
// applies to units.
func NewFieldsEndpoint(reg *registry.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		name, ok := networks.GetNetworkName(ps.ByName("network"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown network "+ps.ByName("network"))
			return
		}
		adapter, err := reg.Get(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		var fields []schema.Field
		switch r.URL.Query().Get("op") {
		case "", "app":
			if !adapter.SupportsAppCreation() {
				writeError(w, http.StatusBadRequest, string(name)+" does not support app creation")
				return
			}
			fields = adapter.AppCreationFields()
		case "unit":
			if !adapter.SupportsUnitCreation() {
				writeError(w, http.StatusBadRequest, string(name)+" does not support ad unit creation")
				return
			}
			fields = adapter.UnitCreationFields(r.URL.Query().Get("adtype"))
		default:
			writeError(w, http.StatusBadRequest, "op must be app or unit")
			return
		}

		writeJSON(w, http.StatusOK, fields)
	}
}
