package router

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/endpoints"
	metricsconfig "github.com/openmediation/mediation-console/metrics/config"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/registry"
	"github.com/openmediation/mediation-console/session"
	"github.com/openmediation/mediation-console/slotname"
)

// Router wires every endpoint to its handler and owns the shared state built
// at startup.
type Router struct {
	*httprouter.Router
	MetricsEngine *metricsconfig.DetailedMetricsEngine
}

// New builds the registry, validator, client and resolver from config and
// mounts all routes. Construction fails fast on packaging errors such as a
// missing params schema or info file.
func New(cfg *config.Configuration) (*Router, error) {
	infos, err := config.LoadNetworkInfos(cfg.InfoDir)
	if err != nil {
		return nil, err
	}

	paramsValidator, err := networks.NewParamsValidator(cfg.ParamsDir)
	if err != nil {
		return nil, err
	}

	reg, err := registry.New(cfg, infos)
	if err != nil {
		return nil, err
	}

	metricsEngine := metricsconfig.NewMetricsEngine(cfg, reg.ListAvailable())
	client := netclient.NewClient(cfg)
	sessions := session.NewStore()
	resolver := slotname.NewResolver(cfg, client, sessions, metricsEngine)

	r := &Router{
		Router:        httprouter.New(),
		MetricsEngine: metricsEngine,
	}
	r.GET("/status", endpoints.NewStatusEndpoint())
	r.GET("/networks", endpoints.NewNetworksEndpoint(reg))
	r.GET("/networks/:network/fields", endpoints.NewFieldsEndpoint(reg))
	r.GET("/network/params", newJSONDirectoryServer(cfg.ParamsDir, paramsValidator))
	r.POST("/networks/:network/apps", endpoints.NewCreateAppEndpoint(reg, paramsValidator, client, sessions, metricsEngine))
	r.POST("/networks/:network/units", endpoints.NewCreateUnitEndpoint(reg, resolver, client, sessions, metricsEngine))

	return r, nil
}

// newJSONDirectoryServer serves the per-network params schemas as one blob:
//
//	{
//	  "ironsource": { ... content from ironsource.json ... },
//	  "vungle": { ... content from vungle.json ... }
//	}
//
// The file contents are slurped into memory at startup; the directory is small
// and this keeps request latency flat.
func newJSONDirectoryServer(schemaDirectory string, validator networks.ParamsValidator) httprouter.Handle {
	files, err := os.ReadDir(schemaDirectory)
	if err != nil {
		glog.Fatalf("Failed to read directory %s: %v", schemaDirectory, err)
	}

	data := make(map[string]json.RawMessage, len(files))
	for _, file := range files {
		network := strings.TrimSuffix(file.Name(), ".json")
		name, isValid := networks.GetNetworkName(network)
		if !isValid {
			glog.Fatalf("Schema exists for an unknown network: %s", network)
		}
		data[network] = json.RawMessage(validator.Schema(name))
	}

	response, err := json.Marshal(data)
	if err != nil {
		glog.Fatalf("Failed to marshal network param JSON-schema: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Add("Content-Type", "application/json")
		w.Write(response)
	}
}

// SupportCORS wraps the router with the CORS policy the console UI needs.
func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(handler)
}
