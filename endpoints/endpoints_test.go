package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
	"github.com/openmediation/mediation-console/session"
	"github.com/openmediation/mediation-console/slotname"
)

type fakeClient struct {
	apps       []netclient.AppRecord
	failOnCall int // 1-based index of the create call that fails; 0 never fails
	calls      int
}

func (c *fakeClient) CreateApp(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*netclient.Response, error) {
	return c.create()
}

func (c *fakeClient) CreateUnit(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*netclient.Response, error) {
	return c.create()
}

func (c *fakeClient) create() (*netclient.Response, error) {
	c.calls++
	if c.failOnCall != 0 && c.calls == c.failOnCall {
		return nil, &errortypes.BusinessError{NetworkCode: 2004, Message: "duplicate"}
	}
	return &netclient.Response{Result: json.RawMessage(`{"app_id":"42"}`)}, nil
}

func (c *fakeClient) GetApps(ctx context.Context, network networks.NetworkName) ([]netclient.AppRecord, error) {
	return c.apps, nil
}

func testInfos() config.NetworkInfos {
	infos := config.NetworkInfos{}
	for _, name := range networks.CoreNetworkNames() {
		infos[string(name)] = config.NetworkInfo{DisplayName: string(name)}
	}
	return infos
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(&config.Configuration{}, testInfos())
	require.NoError(t, err)
	return reg
}

func testValidator(t *testing.T) networks.ParamsValidator {
	t.Helper()
	validator, err := networks.NewParamsValidator("../static/network-params")
	require.NoError(t, err)
	return validator
}

func testResolver(client netclient.Client, sessions *session.Store) *slotname.Resolver {
	cfg := &config.Configuration{}
	cfg.SlotName.ReferenceNetwork = "ironsource"
	return slotname.NewResolver(cfg, client, sessions, metrics.NilEngine{})
}

func TestStatusEndpoint(t *testing.T) {
	recorder := httptest.NewRecorder()
	NewStatusEndpoint()(recorder, httptest.NewRequest("GET", "/status", nil), nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestNetworksEndpoint(t *testing.T) {
	handle := NewNetworksEndpoint(testRegistry(t))

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("GET", "/networks", nil), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var out []struct {
		ID                   string `json:"id"`
		DisplayName          string `json:"displayName"`
		SupportsAppCreation  bool   `json:"supportsAppCreation"`
		SupportsUnitCreation bool   `json:"supportsUnitCreation"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	require.Len(t, out, 9)

	byID := map[string]bool{}
	for _, n := range out {
		byID[n.ID] = true
	}
	assert.True(t, byID["ironsource"])

	for _, n := range out {
		switch n.ID {
		case "unity":
			assert.False(t, n.SupportsAppCreation)
			assert.True(t, n.SupportsUnitCreation)
		case "applovin":
			assert.False(t, n.SupportsAppCreation)
			assert.False(t, n.SupportsUnitCreation)
		}
	}
}

func TestFieldsEndpoint(t *testing.T) {
	handle := NewFieldsEndpoint(testRegistry(t))

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("GET", "/networks/vungle/fields?op=app", nil),
		httprouter.Params{{Key: "network", Value: "vungle"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	var fields []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Equal(t, "app_name", fields[0]["name"])

	// Unit creation fields for a rewarded ironsource slot include the extras.
	recorder = httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("GET", "/networks/ironsource/fields?op=unit&adtype=rewarded", nil),
		httprouter.Params{{Key: "network", Value: "ironsource"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Len(t, fields, 4)
}

func TestFieldsEndpointRejections(t *testing.T) {
	handle := NewFieldsEndpoint(testRegistry(t))

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("GET", "/networks/admob/fields", nil),
		httprouter.Params{{Key: "network", Value: "admob"}})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("GET", "/networks/unity/fields?op=app", nil),
		httprouter.Params{{Key: "network", Value: "unity"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateAppPartialSuccess(t *testing.T) {
	client := &fakeClient{failOnCall: 2} // Android succeeds, iOS fails
	sessions := session.NewStore()
	handle := NewCreateAppEndpoint(testRegistry(t), testValidator(t), client, sessions, metrics.NilEngine{})

	body := `{
		"platforms": ["android", "ios"],
		"params": {
			"app_name": "Wordscapes",
			"coppa": true,
			"android_store_url": "https://play.google.com/store/apps/details?id=com.studio.wordscapes",
			"ios_store_url": "https://apps.apple.com/app/id1234567890"
		}
	}`
	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/ironsource/apps", strings.NewReader(body)),
		httprouter.Params{{Key: "network", Value: "ironsource"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
		Items     []struct {
			Platform string `json:"platform"`
			OK       bool   `json:"ok"`
			Error    string `json:"error"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, "android", resp.Items[0].Platform)
	assert.True(t, resp.Items[0].OK)
	assert.Empty(t, resp.Items[0].Error)

	assert.Equal(t, "ios", resp.Items[1].Platform)
	assert.False(t, resp.Items[1].OK)
	assert.NotEmpty(t, resp.Items[1].Error)

	// The Android success was recorded in the session catalog.
	sess, ok := sessions.Get(resp.SessionID)
	require.True(t, ok)
	apps, _ := sess.Apps(networks.NetworkIronSource)
	assert.Len(t, apps, 1)
}

func TestCreateAppValidationStopsBeforeNetwork(t *testing.T) {
	client := &fakeClient{}
	handle := NewCreateAppEndpoint(testRegistry(t), testValidator(t), client, session.NewStore(), metrics.NilEngine{})

	body := `{"params": {"app_name": "Wordscapes", "coppa": true}}`
	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/ironsource/apps", strings.NewReader(body)),
		httprouter.Params{{Key: "network", Value: "ironsource"}})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "store URL")
	assert.Zero(t, client.calls, "a rejected record must never reach the network")
}

func TestCreateAppUnsupportedNetwork(t *testing.T) {
	handle := NewCreateAppEndpoint(testRegistry(t), testValidator(t), &fakeClient{}, session.NewStore(), metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/unity/apps", strings.NewReader(`{"params":{}}`)),
		httprouter.Params{{Key: "network", Value: "unity"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateUnitBatchIsolatesFailures(t *testing.T) {
	client := &fakeClient{}
	sessions := session.NewStore()
	handle := NewCreateUnitEndpoint(testRegistry(t), testResolver(client, sessions), client, sessions, metrics.NilEngine{})

	// "native" is not a vungle ad type, so its item fails while the rest of
	// the batch continues.
	body := `{
		"appCode": "abc",
		"platforms": ["android"],
		"adTypes": ["rewarded", "native", "banner"],
		"seed": {"packageName": "com.studio.wordscapes"},
		"params": {"app_id": "abc"}
	}`
	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/vungle/units", strings.NewReader(body)),
		httprouter.Params{{Key: "network", Value: "vungle"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
		Items     []struct {
			Platform string `json:"platform"`
			AdType   string `json:"adType"`
			OK       bool   `json:"ok"`
			Error    string `json:"error"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)

	assert.True(t, resp.Items[0].OK)
	assert.Equal(t, "rewarded", resp.Items[0].AdType)

	assert.False(t, resp.Items[1].OK)
	assert.Equal(t, "native", resp.Items[1].AdType)
	assert.NotEmpty(t, resp.Items[1].Error)

	assert.True(t, resp.Items[2].OK)
	assert.Equal(t, "banner", resp.Items[2].AdType)

	assert.Equal(t, 2, client.calls, "only resolvable slots reach the network")

	sess, ok := sessions.Get(resp.SessionID)
	require.True(t, ok)
	assert.Len(t, sess.Units(networks.NetworkVungle, "abc"), 2)
}

func TestCreateUnitOrdersAndroidFirst(t *testing.T) {
	client := &fakeClient{}
	sessions := session.NewStore()
	handle := NewCreateUnitEndpoint(testRegistry(t), testResolver(client, sessions), client, sessions, metrics.NilEngine{})

	body := `{
		"appCode": "abc",
		"platforms": ["ios", "android"],
		"adTypes": ["rewarded"],
		"seed": {"packageName": "com.studio.wordscapes"},
		"params": {"app_id": "abc"}
	}`
	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/vungle/units", strings.NewReader(body)),
		httprouter.Params{{Key: "network", Value: "vungle"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Items []struct {
			Platform string `json:"platform"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "android", resp.Items[0].Platform)
	assert.Equal(t, "ios", resp.Items[1].Platform)
}

func TestCreateUnitRejectsEmptyAdTypes(t *testing.T) {
	client := &fakeClient{}
	sessions := session.NewStore()
	handle := NewCreateUnitEndpoint(testRegistry(t), testResolver(client, sessions), client, sessions, metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/vungle/units", strings.NewReader(`{"adTypes":[]}`)),
		httprouter.Params{{Key: "network", Value: "vungle"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateUnitUnsupportedNetwork(t *testing.T) {
	client := &fakeClient{}
	sessions := session.NewStore()
	handle := NewCreateUnitEndpoint(testRegistry(t), testResolver(client, sessions), client, sessions, metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest("POST", "/networks/applovin/units", strings.NewReader(`{"adTypes":["rewarded"]}`)),
		httprouter.Params{{Key: "network", Value: "applovin"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, client.calls)
}
