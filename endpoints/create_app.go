package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
	"github.com/openmediation/mediation-console/schema"
	"github.com/openmediation/mediation-console/session"
)

type createAppRequest struct {
	SessionID string          `json:"sessionId"`
	Platforms []string        `json:"platforms"`
	Params    json.RawMessage `json:"params"`
}

type createItem struct {
	Platform string          `json:"platform,omitempty"`
	AdType   string          `json:"adType,omitempty"`
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

type createResponse struct {
	SessionID string       `json:"sessionId"`
	Items     []createItem `json:"items"`
}

// NewCreateAppEndpoint handles POST /networks/:network/apps. Multi-platform
// creation runs sequentially, Android before iOS, and failures are isolated
// per platform: partial success is an expected outcome, not an error state.
func NewCreateAppEndpoint(
	reg *registry.Registry,
	validator networks.ParamsValidator,
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
		if !adapter.SupportsAppCreation() {
			writeError(w, http.StatusBadRequest, string(name)+" does not support app creation")
			return
		}

		defer r.Body.Close()
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		var req createAppRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		if err := validator.Validate(name, req.Params); err != nil {
			me.RecordValidationFailure(name)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var data schema.FormData
		if err := json.Unmarshal(req.Params, &data); err != nil {
			writeError(w, http.StatusBadRequest, "params must be a JSON object")
			return
		}

		// Drop values of conditional fields the current answers hide, then
		// apply the adapter's own rules. Validation failures never reach the
		// network.
		schema.Purge(adapter.AppCreationFields(), data)
		if err := adapter.Validate(data); err != nil {
			me.RecordValidationFailure(name)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess, err := sessions.GetOrCreate(req.SessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		payloads, err := adapter.BuildAppPayloads(data, req.Platforms)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(payloads) == 0 {
			writeError(w, http.StatusBadRequest, "no platform in the record has enough data to create an app")
			return
		}

		items := make([]createItem, 0, len(payloads))
		for _, payload := range payloads {
			start := time.Now()
			resp, err := client.CreateApp(r.Context(), name, payload)
			me.RecordCreation(metrics.CreationLabels{
				Network:   name,
				Operation: metrics.OpCreateApp,
				Success:   err == nil,
			}, time.Since(start))

			item := createItem{Platform: payload.Platform, OK: err == nil}
			if err != nil {
				glog.Warningf("create app on %s (%s) failed: %v", name, payload.Platform, err)
				item.Error = err.Error()
			} else {
				item.Result = resp.Result
				sess.AddApp(name, appRecordFromResult(data, payload.Platform, resp))
			}
			items = append(items, item)
		}

		writeJSON(w, http.StatusOK, createResponse{SessionID: sess.ID, Items: items})
	}
}

func appRecordFromResult(data schema.FormData, platform string, resp *netclient.Response) netclient.AppRecord {
	record := netclient.AppRecord{
		Name:     data.String("app_name"),
		Platform: platform,
	}
	if len(resp.Result) > 0 {
		if created, err := netclient.ParseAppRecords(json.RawMessage("[" + string(resp.Result) + "]")); err == nil && len(created) == 1 {
			if created[0].AppCode != "" {
				record.AppCode = created[0].AppCode
			}
			if created[0].PackageName != "" {
				record.PackageName = created[0].PackageName
			}
			if created[0].BundleID != "" {
				record.BundleID = created[0].BundleID
			}
		}
	}
	if record.PackageName == "" {
		record.PackageName = data.String("package")
	}
	return record
}
