package networks

import "strings"

// Canonical platform identifiers. Networks report platforms as "Android",
// "ANDROID", "aos", 1, "iOS", "IPHONE", 2 and more, so everything is folded
// into these two values before use.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// Slot-name OS codes per platform.
const (
	OSCodeAndroid = "aos"
	OSCodeIOS     = "ios"
)

// Canonical ad-type codes used in slot names.
const (
	AdTypeRewarded     = "rv"
	AdTypeInterstitial = "is"
	AdTypeBanner       = "bn"
)

// NormalizePlatform folds a heterogeneous platform value into "android" or
// "ios". Unrecognized input defaults to "android". The function is total: it
// never errors.
func NormalizePlatform(v interface{}) string {
	var s string
	switch val := v.(type) {
	case string:
		s = strings.ToLower(strings.TrimSpace(val))
	case int:
		if val == 2 {
			return PlatformIOS
		}
		return PlatformAndroid
	case float64:
		if int(val) == 2 {
			return PlatformIOS
		}
		return PlatformAndroid
	default:
		return PlatformAndroid
	}

	switch s {
	case "ios", "iphone", "itunes", "2":
		return PlatformIOS
	default:
		return PlatformAndroid
	}
}

// OSCode maps a normalized platform to the code embedded in slot names.
func OSCode(platform string) string {
	if NormalizePlatform(platform) == PlatformIOS {
		return OSCodeIOS
	}
	return OSCodeAndroid
}

// NormalizeAdType maps the ad-format spellings used across networks to the
// canonical two-letter code. The second return value is false for formats
// that have no slot-name code (e.g. native, splash).
func NormalizeAdType(adType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(adType)) {
	case "rewarded", "rewarded_video", "rewardedvideo", "rv":
		return AdTypeRewarded, true
	case "interstitial", "is":
		return AdTypeInterstitial, true
	case "banner", "bn":
		return AdTypeBanner, true
	}
	return "", false
}
