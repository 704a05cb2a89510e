package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
	"github.com/openmediation/mediation-console/schema"
	"github.com/openmediation/mediation-console/session"
	"github.com/openmediation/mediation-console/slotname"
)

type createUnitRequest struct {
	SessionID string          `json:"sessionId"`
	AppCode   string          `json:"appCode"`
	Platforms []string        `json:"platforms"`
	AdTypes   []string        `json:"adTypes"`
	Seed      seedPayload     `json:"seed"`
	Params    json.RawMessage `json:"params"`
}

type seedPayload struct {
	PackageName string `json:"packageName"`
	BundleID    string `json:"bundleId"`
	AppCode     string `json:"appCode"`
	DisplayName string `json:"displayName"`
}

// NewCreateUnitEndpoint handles POST /networks/:network/units. The batch of
// (platform × ad type) slots is processed strictly sequentially; a failure on
// one slot does not cancel the remaining slots, and each item reports its own
// outcome. A slot whose name cannot be resolved fails that item only.
func NewCreateUnitEndpoint(
	reg *registry.Registry,
	resolver *slotname.Resolver,
	client netclient.Client,
	sessions *session.Store,
	me metrics.Engine,
) httprouter.Handle {
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
		if !adapter.SupportsUnitCreation() {
			writeError(w, http.StatusBadRequest, string(name)+" does not support ad unit creation")
			return
		}

		defer r.Body.Close()
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		var req createUnitRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if len(req.AdTypes) == 0 {
			writeError(w, http.StatusBadRequest, "adTypes must not be empty")
			return
		}

		var params schema.FormData
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				writeError(w, http.StatusBadRequest, "params must be a JSON object")
				return
			}
		} else {
			params = schema.FormData{}
		}

		sess, err := sessions.GetOrCreate(req.SessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		seed := slotname.Seed{
			PackageName: req.Seed.PackageName,
			BundleID:    req.Seed.BundleID,
			AppCode:     req.Seed.AppCode,
			DisplayName: req.Seed.DisplayName,
		}

		var items []createItem
		for _, platform := range adapters.OrderPlatforms(req.Platforms) {
			for _, adType := range req.AdTypes {
				items = append(items, createOneUnit(r, name, adapter, resolver, client, sess, me, seed, platform, adType, params, req.AppCode))
			}
		}
		writeJSON(w, http.StatusOK, createResponse{SessionID: sess.ID, Items: items})
	}
}

func createOneUnit(
	r *http.Request,
	name networks.NetworkName,
	adapter adapters.Adapter,
	resolver *slotname.Resolver,
	client netclient.Client,
	sess *session.Session,
	me metrics.Engine,
	seed slotname.Seed,
	platform, adType string,
	params schema.FormData,
	appCode string,
) createItem {
	item := createItem{Platform: platform, AdType: adType}

	unitName, err := resolver.Generate(r.Context(), sess.ID, seed, platform, adType, name)
	if err != nil {
		me.RecordValidationFailure(name)
		item.Error = err.Error()
		return item
	}

	data := params.Clone()
	data["unit_name"] = unitName
	data["ad_type"] = adType
	if err := adapter.Validate(data); err != nil {
		me.RecordValidationFailure(name)
		item.Error = err.Error()
		return item
	}

	payload, err := adapter.BuildUnitPayload(data)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	start := time.Now()
	resp, err := client.CreateUnit(r.Context(), name, payload)
	me.RecordCreation(metrics.CreationLabels{
		Network:   name,
		Operation: metrics.OpCreateUnit,
		Success:   err == nil,
	}, time.Since(start))
	if err != nil {
		glog.Warningf("create unit %s on %s failed: %v", unitName, name, err)
		item.Error = err.Error()
		return item
	}

	item.OK = true
	item.Result = resp.Result
	sess.AddUnit(name, appCode, session.UnitRecord{Name: unitName, AdType: adType, AppCode: appCode})
	return item
}
