package networks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaDirectory = "../static/network-params"

func TestNewParamsValidator(t *testing.T) {
	_, err := NewParamsValidator(schemaDirectory)
	assert.NoError(t, err, "Every core network needs a params schema in %s", schemaDirectory)
}

func TestSchemasAreValidJSON(t *testing.T) {
	validator, err := NewParamsValidator(schemaDirectory)
	require.NoError(t, err)

	for _, name := range CoreNetworkNames() {
		content := validator.Schema(name)
		require.NotEmpty(t, content, name)

		var parsed map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(content), &parsed), name)
	}
}

func TestValidateAcceptsGoodParams(t *testing.T) {
	validator, err := NewParamsValidator(schemaDirectory)
	require.NoError(t, err)

	params := json.RawMessage(`{
		"app_name": "Wordscapes",
		"platform": "android",
		"store_id": "com.studio.wordscapes",
		"is_coppa": false
	}`)
	assert.NoError(t, validator.Validate(NetworkVungle, params))
}

func TestValidateRejectsBadParams(t *testing.T) {
	validator, err := NewParamsValidator(schemaDirectory)
	require.NoError(t, err)

	// platform outside the enum
	params := json.RawMessage(`{"app_name":"Wordscapes","platform":"windows"}`)
	assert.Error(t, validator.Validate(NetworkVungle, params))

	// missing required app_name
	assert.Error(t, validator.Validate(NetworkVungle, json.RawMessage(`{}`)))

	// coppa must be the integer form for bigoads
	assert.Error(t, validator.Validate(NetworkBigoAds, json.RawMessage(`{"app_name":"W","coppa":true}`)))
}

func TestValidateUnknownNetwork(t *testing.T) {
	validator, err := NewParamsValidator(schemaDirectory)
	require.NoError(t, err)

	assert.Error(t, validator.Validate(NetworkName("admob"), json.RawMessage(`{}`)))
}
