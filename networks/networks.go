package networks

import "strings"

// NetworkName refers to a mediation network that apps and ad units can be
// created on. These names are written into slot names and payloads, so they
// must stay stable.
type NetworkName string

const (
	NetworkIronSource NetworkName = "ironsource"
	NetworkBigoAds    NetworkName = "bigoads"
	NetworkMintegral  NetworkName = "mintegral"
	NetworkInMobi     NetworkName = "inmobi"
	NetworkFyber      NetworkName = "fyber"
	NetworkPangle     NetworkName = "pangle"
	NetworkUnity      NetworkName = "unity"
	NetworkVungle     NetworkName = "vungle"
	NetworkAppLovin   NetworkName = "applovin"
)

var coreNetworkNames = []NetworkName{
	NetworkIronSource,
	NetworkBigoAds,
	NetworkMintegral,
	NetworkInMobi,
	NetworkFyber,
	NetworkPangle,
	NetworkUnity,
	NetworkVungle,
	NetworkAppLovin,
}

var networkMap = func() map[string]NetworkName {
	m := make(map[string]NetworkName, len(coreNetworkNames))
	for _, name := range coreNetworkNames {
		m[string(name)] = name
	}
	return m
}()

// CoreNetworkNames returns a list of all known networks in registration order.
func CoreNetworkNames() []NetworkName {
	out := make([]NetworkName, len(coreNetworkNames))
	copy(out, coreNetworkNames)
	return out
}

// GetNetworkName returns the NetworkName for the given string, if it exists.
// The lookup is case-insensitive. The second return value is true if the name
// was valid, and false otherwise.
func GetNetworkName(name string) (NetworkName, bool) {
	networkName, ok := networkMap[strings.ToLower(name)]
	return networkName, ok
}

func (name NetworkName) String() string {
	return string(name)
}

func (name NetworkName) MarshalJSON() ([]byte, error) {
	return []byte(`"` + string(name) + `"`), nil
}
