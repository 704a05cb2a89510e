package netclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/golang/glog"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/networks"
)

// Response is the decoded envelope every network wraps its results in.
// status == 0 or code == 0 signals success; any other value is a
// business-level failure carrying msg.
type Response struct {
	Status  int
	Code    int
	Message string
	Result  json.RawMessage
}

// AppRecord is one app from a network's catalog, reduced to the identifier
// fields the resolver and the UI need. Networks disagree on which identifier
// they carry, so all three are optional.
type AppRecord struct {
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	PackageName string `json:"packageName,omitempty"`
	BundleID    string `json:"bundleId,omitempty"`
	AppCode     string `json:"appCode,omitempty"`
}

// Client issues the outbound calls to a network's management API. Calls are
// fire-once: a failed or timed-out call is surfaced to the operator, who
// retries manually.
type Client interface {
	CreateApp(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*Response, error)
	CreateUnit(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*Response, error)
	GetApps(ctx context.Context, network networks.NetworkName) ([]AppRecord, error)
}

// NewClient returns the HTTP-backed Client. Every call is bounded by the
// configured client timeout (30s by default); there are no retries.
func NewClient(cfg *config.Configuration) Client {
	return &httpClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.ClientTimeoutMS) * time.Millisecond,
		},
	}
}

type httpClient struct {
	cfg    *config.Configuration
	client *http.Client
}

func (c *httpClient) CreateApp(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*Response, error) {
	return c.do(ctx, network, req.Method, req.Path, req.Body)
}

func (c *httpClient) CreateUnit(ctx context.Context, network networks.NetworkName, req adapters.RequestData) (*Response, error) {
	return c.do(ctx, network, req.Method, req.Path, req.Body)
}

func (c *httpClient) GetApps(ctx context.Context, network networks.NetworkName) ([]AppRecord, error) {
	resp, err := c.do(ctx, network, "GET", "/apps", nil)
	if err != nil {
		return nil, err
	}
	return ParseAppRecords(resp.Result)
}

func (c *httpClient) do(ctx context.Context, network networks.NetworkName, method, path string, body []byte) (*Response, error) {
	networkCfg, ok := c.cfg.Networks[string(network)]
	if !ok || networkCfg.Endpoint == "" {
		return nil, &errortypes.TransportError{Message: fmt.Sprintf("no endpoint configured for network %s", network)}
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(networkCfg.Endpoint, "/")+path, reader)
	if err != nil {
		return nil, &errortypes.TransportError{Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if networkCfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+networkCfg.Token)
	}
	if networkCfg.AppKey != "" {
		httpReq.Header.Set("X-App-Key", networkCfg.AppKey)
	}
	if networkCfg.Secret != "" {
		httpReq.Header.Set("X-App-Secret", networkCfg.Secret)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(network, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &errortypes.TransportError{Message: err.Error()}
	}
	if httpResp.StatusCode >= 500 {
		glog.Errorf("network %s responded %d: %s", network, httpResp.StatusCode, respBody)
		return nil, &errortypes.BadServerResponse{
			Message: fmt.Sprintf("network %s responded with status %d", network, httpResp.StatusCode),
		}
	}

	return parseEnvelope(respBody)
}

func classifyTransportError(network networks.NetworkName, err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &errortypes.Timeout{Message: fmt.Sprintf("network %s call timed out", network)}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &errortypes.Timeout{Message: fmt.Sprintf("network %s call timed out", network)}
	}
	return &errortypes.TransportError{Message: err.Error()}
}

// parseEnvelope decodes the shared response convention. A body with neither a
// status nor a code field is malformed.
func parseEnvelope(body []byte) (*Response, error) {
	status, statusErr := jsonparser.GetInt(body, "status")
	code, codeErr := jsonparser.GetInt(body, "code")
	if statusErr != nil && codeErr != nil {
		return nil, &errortypes.BadServerResponse{Message: "response body carries neither status nor code"}
	}

	msg, _ := jsonparser.GetString(body, "msg")
	if msg == "" {
		msg, _ = jsonparser.GetString(body, "message")
	}

	resp := &Response{
		Status:  int(status),
		Code:    int(code),
		Message: msg,
	}
	if result, dataType, _, err := jsonparser.Get(body, "result"); err == nil && dataType != jsonparser.NotExist {
		resp.Result = json.RawMessage(result)
	} else if result, dataType, _, err := jsonparser.Get(body, "data"); err == nil && dataType != jsonparser.NotExist {
		resp.Result = json.RawMessage(result)
	}

	if (statusErr == nil && status == 0) || (codeErr == nil && code == 0) {
		return resp, nil
	}

	businessCode := int(code)
	if codeErr != nil {
		businessCode = int(status)
	}
	return nil, &errortypes.BusinessError{
		NetworkCode: businessCode,
		Message:     msg,
		Hint:        hintForCode(businessCode),
	}
}

// Known business codes get a friendlier explanation, without hiding the raw
// code and message.
var businessHints = map[int]string{
	1035: "app is still under audit; retry after the store listing is approved",
	2004: "an app with this package or bundle already exists on the network",
	4010: "API credentials lack permission for this operation",
}

func hintForCode(code int) string {
	return businessHints[code]
}

// ParseAppRecords decodes a catalog list, tolerating the per-network key
// variants for the app identifier. An empty or missing list is "not found",
// not an error.
func ParseAppRecords(result json.RawMessage) ([]AppRecord, error) {
	if len(result) == 0 {
		return nil, nil
	}

	list := result
	// Some networks nest the list one level down.
	if nested, _, _, err := jsonparser.Get(result, "apps"); err == nil {
		list = nested
	}

	var records []AppRecord
	_, err := jsonparser.ArrayEach(list, func(item []byte, dataType jsonparser.ValueType, offset int, _ error) {
		records = append(records, parseAppRecord(item))
	})
	if err != nil {
		return nil, &errortypes.BadServerResponse{Message: fmt.Sprintf("malformed app list: %v", err)}
	}
	return records, nil
}

func parseAppRecord(item []byte) AppRecord {
	record := AppRecord{
		Name:        firstString(item, "name", "appName", "app_name"),
		PackageName: firstString(item, "packageName", "package_name", "pkgName", "package"),
		BundleID:    firstString(item, "bundleId", "bundle_id", "bundle"),
		AppCode:     firstString(item, "appCode", "app_code", "appId", "app_id"),
	}
	if platform, _, _, err := jsonparser.Get(item, "platform"); err == nil {
		record.Platform = networks.NormalizePlatform(string(bytes.Trim(platform, `"`)))
	} else if platform, _, _, err := jsonparser.Get(item, "os"); err == nil {
		record.Platform = networks.NormalizePlatform(string(bytes.Trim(platform, `"`)))
	}
	if record.AppCode == "" {
		if id, err := jsonparser.GetInt(item, "id"); err == nil {
			record.AppCode = fmt.Sprintf("%d", id)
		}
	}
	return record
}

func firstString(item []byte, keys ...string) string {
	for _, key := range keys {
		if s, err := jsonparser.GetString(item, key); err == nil && s != "" {
			return s
		}
	}
	return ""
}
