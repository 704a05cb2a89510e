package netclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
)

func testConfig(endpoint string) *config.Configuration {
	return &config.Configuration{
		ClientTimeoutMS: 30000,
		Networks: map[string]config.Network{
			"vungle": {
				Endpoint: endpoint,
				AppKey:   "key",
				Secret:   "secret",
				Token:    "token",
			},
		},
	}
}

func TestCreateAppSuccess(t *testing.T) {
	var gotPath, gotAuth, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-App-Key")
		w.Write([]byte(`{"status":0,"msg":"ok","result":{"app_id":"42"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	resp, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{
		Method: "POST",
		Path:   "/api/v2/apps",
		Body:   json.RawMessage(`{"name":"Wordscapes"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/apps", gotPath)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, 0, resp.Status)
	assert.JSONEq(t, `{"app_id":"42"}`, string(resp.Result))
}

func TestCreateAppBusinessError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":2004,"message":"duplicate package"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{Method: "POST", Path: "/api/v2/apps"})
	require.Error(t, err)

	var berr *errortypes.BusinessError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, 2004, berr.NetworkCode)
	assert.Equal(t, "duplicate package", berr.Message)
	assert.Contains(t, berr.Hint, "already exists")
}

func TestCreateAppMalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something":"else"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{Method: "POST", Path: "/api/v2/apps"})
	require.Error(t, err)
	assert.IsType(t, &errortypes.BadServerResponse{}, err)
}

func TestCreateAppServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{Method: "POST", Path: "/api/v2/apps"})
	require.Error(t, err)
	assert.IsType(t, &errortypes.BadServerResponse{}, err)
}

func TestCreateAppTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ClientTimeoutMS = 10
	client := NewClient(cfg)

	_, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{Method: "POST", Path: "/api/v2/apps"})
	require.Error(t, err)
	assert.IsType(t, &errortypes.Timeout{}, err)
}

func TestCreateAppNoEndpointConfigured(t *testing.T) {
	client := NewClient(&config.Configuration{ClientTimeoutMS: 30000})
	_, err := client.CreateApp(context.Background(), networks.NetworkVungle, adapters.RequestData{Method: "POST", Path: "/api/v2/apps"})
	require.Error(t, err)
	assert.IsType(t, &errortypes.TransportError{}, err)
}

func TestGetApps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apps", r.URL.Path)
		w.Write([]byte(`{"status":0,"result":[
			{"name":"Wordscapes","platform":"android","packageName":"com.studio.wordscapes","appCode":"abc"},
			{"app_name":"Solitaire","os":"iOS","bundle_id":"com.studio.solitaire","id":77}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	apps, err := client.GetApps(context.Background(), networks.NetworkVungle)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	assert.Equal(t, "Wordscapes", apps[0].Name)
	assert.Equal(t, "android", apps[0].Platform)
	assert.Equal(t, "com.studio.wordscapes", apps[0].PackageName)
	assert.Equal(t, "abc", apps[0].AppCode)

	assert.Equal(t, "Solitaire", apps[1].Name)
	assert.Equal(t, "ios", apps[1].Platform)
	assert.Equal(t, "com.studio.solitaire", apps[1].BundleID)
	assert.Equal(t, "77", apps[1].AppCode)
}

func TestParseEnvelopeCodeZeroIsSuccess(t *testing.T) {
	resp, err := parseEnvelope([]byte(`{"code":0,"data":{"slot_id":9}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Code)
	assert.JSONEq(t, `{"slot_id":9}`, string(resp.Result))
}

func TestParseEnvelopeStatusNonZeroFails(t *testing.T) {
	_, err := parseEnvelope([]byte(`{"status":1035,"msg":"under audit"}`))
	require.Error(t, err)

	var berr *errortypes.BusinessError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, 1035, berr.NetworkCode)
	assert.Contains(t, berr.Hint, "audit")
}

func TestParseAppRecordsNestedList(t *testing.T) {
	apps, err := ParseAppRecords(json.RawMessage(`{"apps":[{"name":"A","platform":"android","package":"com.a"}]}`))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "com.a", apps[0].PackageName)
}

func TestParseAppRecordsEmpty(t *testing.T) {
	apps, err := ParseAppRecords(nil)
	assert.NoError(t, err)
	assert.Nil(t, apps)
}
