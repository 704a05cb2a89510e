package ironsource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/schema"
)

func TestValidateApp(t *testing.T) {
	a, err := Builder(config.Network{})
	require.NoError(t, err)

	err = a.Validate(schema.FormData{})
	assert.EqualError(t, err, "Missing required field: App Name")

	err = a.Validate(schema.FormData{"app_name": "Wordscapes", "coppa": false})
	assert.EqualError(t, err, "At least one of Android or iOS store URL is required")

	err = a.Validate(schema.FormData{
		"app_name":          "Wordscapes",
		"coppa":             false,
		"android_store_url": "not a url",
	})
	assert.EqualError(t, err, "Android Store URL is not a valid URL")

	err = a.Validate(schema.FormData{
		"app_name":          "Wordscapes",
		"coppa":             false,
		"android_store_url": "https://play.google.com/store/apps/details?id=com.studio.wordscapes",
	})
	assert.NoError(t, err)
}

func TestBuildAppPayloadsPerPlatform(t *testing.T) {
	a, _ := Builder(config.Network{})
	data := schema.FormData{
		"app_name":          "Wordscapes",
		"coppa":             true,
		"taxonomy":          "Gaming",
		"android_store_url": "https://play.google.com/store/apps/details?id=com.studio.wordscapes",
		"ios_store_url":     "https://apps.apple.com/app/id1234567890",
	}

	payloads, err := a.BuildAppPayloads(data, nil)
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "android", payloads[0].Platform)
	assert.Equal(t, "ios", payloads[1].Platform)
	assert.Equal(t, "/v1/apps", payloads[0].Path)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payloads[0].Body, &body))
	assert.Equal(t, "Wordscapes", body["appName"])
	assert.Equal(t, "Android", body["platform"])
	assert.Equal(t, true, body["coppa"])

	require.NoError(t, json.Unmarshal(payloads[1].Body, &body))
	assert.Equal(t, "iOS", body["platform"])
	assert.Equal(t, "https://apps.apple.com/app/id1234567890", body["storeUrl"])
}

func TestBuildAppPayloadsSkipsPlatformWithoutStoreURL(t *testing.T) {
	a, _ := Builder(config.Network{})
	data := schema.FormData{
		"app_name":          "Wordscapes",
		"coppa":             false,
		"android_store_url": "https://play.google.com/store/apps/details?id=com.studio.wordscapes",
	}

	payloads, err := a.BuildAppPayloads(data, nil)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "android", payloads[0].Platform)
}

func TestBuildUnitPayloadRewarded(t *testing.T) {
	a, _ := Builder(config.Network{})
	data := schema.FormData{
		"app_key":       "abc123",
		"unit_name":     "wordscapes_aos_ironsource_rv_bidding",
		"ad_type":       "rewarded",
		"reward_name":   "Coins",
		"reward_amount": 10,
	}
	require.NoError(t, a.Validate(data))

	req, err := a.BuildUnitPayload(data)
	require.NoError(t, err)
	assert.Equal(t, "/v1/instances", req.Path)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "rewardedVideo", body["adUnit"])
	assert.Equal(t, "wordscapes_aos_ironsource_rv_bidding", body["name"])
	assert.Equal(t, "Coins", body["rewardName"])
	assert.Equal(t, float64(10), body["rewardAmount"])
}

func TestUnitCreationFieldsRewardedExtras(t *testing.T) {
	a, _ := Builder(config.Network{})

	assert.Len(t, a.UnitCreationFields("interstitial"), 2)
	assert.Len(t, a.UnitCreationFields("rewarded"), 4)
}
