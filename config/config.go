package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/openmediation/mediation-console/networks"
)

// Configuration holds everything read from mediation-console.yaml plus env
// overrides. Fields follow viper's mapstructure mapping.
type Configuration struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	AdminPort  int    `mapstructure:"admin_port"`
	EnableGzip bool   `mapstructure:"enable_gzip"`

	// ClientTimeoutMS bounds every outbound network call. There is no retry;
	// a timed-out call is surfaced to the operator.
	ClientTimeoutMS uint64 `mapstructure:"client_timeout_ms"`

	Metrics  Metrics            `mapstructure:"metrics"`
	SlotName SlotName           `mapstructure:"slot_name"`
	Networks map[string]Network `mapstructure:"networks"`

	// InfoDir and ParamsDir point at the static network-info YAML and
	// network-params JSON schema directories.
	InfoDir   string `mapstructure:"network_info_dir"`
	ParamsDir string `mapstructure:"network_params_dir"`
}

// Network configures one mediation network's API access.
type Network struct {
	Endpoint string `mapstructure:"endpoint"` // Required
	AppKey   string `mapstructure:"app_key"`
	Secret   string `mapstructure:"secret"`
	Token    string `mapstructure:"token"`
	Disabled bool   `mapstructure:"disabled"`
}

// SlotName configures the identifier-resolution cache and reference catalog.
type SlotName struct {
	// ReferenceNetwork is the network whose app list is the canonical source
	// of Android package names during cross-network identifier recovery.
	ReferenceNetwork string `mapstructure:"reference_network"`
	CacheSizeBytes   int    `mapstructure:"cache_size_bytes"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	Type       string            `mapstructure:"type"` // "none", "go_metrics" or "prometheus"
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

type PrometheusMetrics struct {
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// New validates the viper state and returns the Configuration.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (cfg *Configuration) validate() error {
	if cfg.ClientTimeoutMS == 0 {
		return fmt.Errorf("cfg.client_timeout_ms must be positive")
	}
	if _, ok := networks.GetNetworkName(cfg.SlotName.ReferenceNetwork); !ok {
		return fmt.Errorf("cfg.slot_name.reference_network %q is not a known network", cfg.SlotName.ReferenceNetwork)
	}
	for name := range cfg.Networks {
		if _, ok := networks.GetNetworkName(name); !ok {
			return fmt.Errorf("cfg.networks.%s is not a known network", name)
		}
	}
	return nil
}

// SetupViper sets the default config values and binds environment overrides
// for the viper instance that New() reads from.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("client_timeout_ms", 30000)
	v.SetDefault("metrics.type", "none")
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("slot_name.reference_network", "ironsource")
	v.SetDefault("slot_name.cache_size_bytes", 1024*1024)
	v.SetDefault("network_info_dir", "./static/network-info")
	v.SetDefault("network_params_dir", "./static/network-params")

	for _, name := range networks.CoreNetworkNames() {
		v.SetDefault("networks."+string(name)+".endpoint", "")
		v.SetDefault("networks."+string(name)+".disabled", false)
	}

	v.SetEnvPrefix("MC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
