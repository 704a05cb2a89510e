package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmediation/mediation-console/config"
)

func testConfig() *config.Configuration {
	cfg := &config.Configuration{
		ClientTimeoutMS: 30000,
		InfoDir:         "../static/network-info",
		ParamsDir:       "../static/network-params",
	}
	cfg.SlotName.ReferenceNetwork = "ironsource"
	return cfg
}

func TestNewMountsAllRoutes(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/status", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/networks", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/networks/vungle/fields", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/network/params", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ironsource"`)
}

func TestNewFailsOnBadDirectories(t *testing.T) {
	cfg := testConfig()
	cfg.InfoDir = "./no-such-dir"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.ParamsDir = "./no-such-dir"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestSupportCORS(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)
	handler := SupportCORS(r)

	req := httptest.NewRequest("OPTIONS", "/networks", nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.Equal(t, "https://console.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
}
