package applovin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/schema"
)

func TestNothingSupported(t *testing.T) {
	a, err := Builder(config.Network{})
	require.NoError(t, err)

	assert.False(t, a.SupportsAppCreation())
	assert.False(t, a.SupportsUnitCreation())
	assert.Nil(t, a.AppCreationFields())
	assert.Nil(t, a.UnitCreationFields("rewarded"))

	_, err = a.BuildAppPayloads(schema.FormData{}, nil)
	assert.IsType(t, &errortypes.UnsupportedOperation{}, err)

	_, err = a.BuildUnitPayload(schema.FormData{})
	assert.IsType(t, &errortypes.UnsupportedOperation{}, err)

	assert.IsType(t, &errortypes.UnsupportedOperation{}, a.Validate(schema.FormData{}))
}
