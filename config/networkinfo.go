package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/openmediation/mediation-console/networks"
)

// NetworkInfos contains a mapping of network name to network info.
type NetworkInfos map[string]NetworkInfo

// NetworkInfo describes a network's display metadata and creation capabilities.
// It is loaded from the per-network YAML files in the network-info directory.
type NetworkInfo struct {
	DisplayName  string            `yaml:"displayName"`
	Maintainer   *MaintainerInfo   `yaml:"maintainer"`
	Capabilities *CapabilitiesInfo `yaml:"capabilities"`
}

// MaintainerInfo specifies the support email address for a network integration.
type MaintainerInfo struct {
	Email string `yaml:"email"`
}

// CapabilitiesInfo specifies which creation operations a network supports and
// on which platforms and ad formats.
type CapabilitiesInfo struct {
	AppCreation  *OperationInfo `yaml:"appCreation"`
	UnitCreation *OperationInfo `yaml:"unitCreation"`
}

// OperationInfo scopes one creation operation.
type OperationInfo struct {
	Platforms []string `yaml:"platforms"`
	AdFormats []string `yaml:"adFormats"`
}

// LoadNetworkInfos reads one YAML file per network from the given directory.
// Every core network must have a file, and every file must belong to a core
// network; anything else is a packaging error.
func LoadNetworkInfos(infoDir string) (NetworkInfos, error) {
	fileInfos, err := os.ReadDir(infoDir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read network info from directory %s: %v", infoDir, err)
	}

	infos := NetworkInfos{}
	for _, fileInfo := range fileInfos {
		name := strings.TrimSuffix(fileInfo.Name(), ".yaml")
		if _, ok := networks.GetNetworkName(name); !ok {
			return nil, fmt.Errorf("File %s/%s does not match a valid NetworkName", infoDir, fileInfo.Name())
		}

		fileBytes, err := os.ReadFile(filepath.Join(infoDir, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("Failed to read file %s/%s: %v", infoDir, fileInfo.Name(), err)
		}

		info := NetworkInfo{}
		if err := yaml.Unmarshal(fileBytes, &info); err != nil {
			return nil, fmt.Errorf("Error parsing config for network %s: %v", fileInfo.Name(), err)
		}

		infos[name] = info
	}

	for _, name := range networks.CoreNetworkNames() {
		if _, ok := infos[string(name)]; !ok {
			return nil, fmt.Errorf("Missing network info file for %s in %s", name, infoDir)
		}
	}

	return infos, nil
}

// SupportsAppCreation reports whether the info file declares app creation.
func (i NetworkInfo) SupportsAppCreation() bool {
	return i.Capabilities != nil && i.Capabilities.AppCreation != nil
}

// SupportsUnitCreation reports whether the info file declares unit creation.
func (i NetworkInfo) SupportsUnitCreation() bool {
	return i.Capabilities != nil && i.Capabilities.UnitCreation != nil
}
