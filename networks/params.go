package networks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParamsValidator enforces the raw creation params sent for each network.
//
// This is treated differently from adapter validation because we rely on
// JSON-schemas to describe the per-network param shapes.
type ParamsValidator interface {
	Validate(name NetworkName, params json.RawMessage) error
	// Schema returns the JSON schema used to perform validation.
	Schema(name NetworkName) string
}

// NewParamsValidator makes a ParamsValidator, assuming all the necessary files
// exist in the filesystem. This will error if, for example, a network gets
// added but no JSON schema is written for it.
func NewParamsValidator(schemaDirectory string) (ParamsValidator, error) {
	fileInfos, err := os.ReadDir(schemaDirectory)
	if err != nil {
		return nil, fmt.Errorf("Failed to read JSON schemas from directory %s. %v", schemaDirectory, err)
	}

	filesystem := http.Dir(schemaDirectory)
	schemaContents := make(map[NetworkName]string, len(fileInfos))
	schemas := make(map[NetworkName]*gojsonschema.Schema, len(fileInfos))
	for _, fileInfo := range fileInfos {
		networkName := strings.TrimSuffix(fileInfo.Name(), ".json")
		if _, isValid := GetNetworkName(networkName); !isValid {
			return nil, fmt.Errorf("File %s/%s does not match a valid NetworkName.", schemaDirectory, fileInfo.Name())
		}

		schemaLoader := gojsonschema.NewReferenceLoaderFileSystem(fmt.Sprintf("file:///%s", fileInfo.Name()), filesystem)
		loadedSchema, err := gojsonschema.NewSchema(schemaLoader)
		if err != nil {
			return nil, fmt.Errorf("Failed to load json schema at %s/%s: %v", schemaDirectory, fileInfo.Name(), err)
		}

		fileBytes, err := os.ReadFile(fmt.Sprintf("%s/%s", schemaDirectory, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("Failed to read file %s/%s: %v", schemaDirectory, fileInfo.Name(), err)
		}

		schemas[NetworkName(networkName)] = loadedSchema
		schemaContents[NetworkName(networkName)] = string(fileBytes)
	}

	for _, name := range coreNetworkNames {
		if _, ok := schemas[name]; !ok {
			return nil, fmt.Errorf("Missing JSON schema for network %s in %s", name, schemaDirectory)
		}
	}

	return &paramsValidator{
		schemaContents: schemaContents,
		parsedSchemas:  schemas,
	}, nil
}

type paramsValidator struct {
	schemaContents map[NetworkName]string
	parsedSchemas  map[NetworkName]*gojsonschema.Schema
}

func (v *paramsValidator) Validate(name NetworkName, params json.RawMessage) error {
	parsedSchema, ok := v.parsedSchemas[name]
	if !ok {
		return fmt.Errorf("unknown network %q", name)
	}

	result, err := parsedSchema.Validate(gojsonschema.NewBytesLoader(params))
	if err != nil {
		return err
	}
	if !result.Valid() {
		errBuilder := strings.Builder{}
		for _, err := range result.Errors() {
			errBuilder.WriteString(err.String())
			errBuilder.WriteString("\n")
		}
		return fmt.Errorf("%s", strings.TrimSpace(errBuilder.String()))
	}
	return nil
}

func (v *paramsValidator) Schema(name NetworkName) string {
	return v.schemaContents[name]
}
