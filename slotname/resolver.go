package slotname

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/coocood/freecache"
	"github.com/golang/glog"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/errortypes"
	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
	"github.com/openmediation/mediation-console/session"
)

// Seed carries the identifiers an app is known by. Different networks
// identify the same app by package name, bundle ID, or an opaque app code;
// the first non-empty one, in that priority order, seeds the slot name.
type Seed struct {
	PackageName string
	BundleID    string
	AppCode     string
	DisplayName string
}

// iTunes numeric IDs ("id" + digits) are useless as naming seeds and must
// never leak into a slot name.
var itunesIDPattern = regexp.MustCompile(`^id\d+$`)

// Networks whose slot-name segment is forced to lowercase. A per-network
// quirk of the upstream dashboards, kept table-driven.
var lowercaseSegment = map[networks.NetworkName]bool{
	networks.NetworkIronSource: true,
	networks.NetworkPangle:     true,
}

const cacheExpirySeconds = 0 // session-lifetime entries, no TTL

// Resolver produces canonical ad-unit names of the fixed shape
// {segment}_{os}_{network}_{adType}_bidding. Aside from the one catalog
// lookup for iTunes-ID recovery it is a pure function of its inputs, and the
// lookup result is memoized so repeated calls within a session stay
// deterministic and cheap.
type Resolver struct {
	client           netclient.Client
	sessions         *session.Store
	me               metrics.Engine
	referenceNetwork networks.NetworkName
	cache            *freecache.Cache
}

// NewResolver builds a Resolver backed by the given network client. Catalog
// lookups go through the calling operator's session cache when one exists.
func NewResolver(cfg *config.Configuration, client netclient.Client, sessions *session.Store, me metrics.Engine) *Resolver {
	reference, ok := networks.GetNetworkName(cfg.SlotName.ReferenceNetwork)
	if !ok {
		reference = networks.NetworkIronSource
	}
	size := cfg.SlotName.CacheSizeBytes
	if size <= 0 {
		size = 1024 * 1024
	}
	if me == nil {
		me = metrics.NilEngine{}
	}
	return &Resolver{
		client:           client,
		sessions:         sessions,
		me:               me,
		referenceNetwork: reference,
		cache:            freecache.NewCache(size),
	}
}

// Generate resolves the seed and assembles the slot name. Memoization is
// scoped by sessionID so one operator's catalog state never bleeds into
// another's. It returns "" with a ResolutionError when no usable identifier
// can be recovered; callers must treat that as a validation failure, never
// synthesize a placeholder.
func (r *Resolver) Generate(ctx context.Context, sessionID string, seed Seed, platform, adType string, network networks.NetworkName) (string, error) {
	adTypeCode, ok := networks.NormalizeAdType(adType)
	if !ok {
		return "", &errortypes.BadInput{Message: fmt.Sprintf("unknown ad type %q", adType)}
	}
	plat := networks.NormalizePlatform(platform)

	source := seed.PackageName
	if source == "" {
		source = seed.BundleID
	}
	if source == "" {
		source = seed.AppCode
	}
	if source == "" {
		return "", &errortypes.ResolutionError{Message: "app has no usable identifier"}
	}

	cacheKey := []byte(sessionID + "|" + source + "|" + plat + "|" + adTypeCode + "|" + string(network))
	if cached, err := r.cache.Get(cacheKey); err == nil {
		return string(cached), nil
	}

	identifier := source
	if itunesIDPattern.MatchString(source) {
		recovered, err := r.recoverPackageName(ctx, sessionID, seed, network)
		if err != nil {
			return "", err
		}
		identifier = recovered
	}

	segment := identifier
	if idx := strings.LastIndex(identifier, "."); idx >= 0 {
		segment = identifier[idx+1:]
	}
	if lowercaseSegment[network] {
		segment = strings.ToLower(segment)
	}

	name := fmt.Sprintf("%s_%s_%s_%s_bidding", segment, networks.OSCode(plat), strings.ToLower(string(network)), adTypeCode)
	if err := r.cache.Set(cacheKey, []byte(name), cacheExpirySeconds); err != nil {
		glog.Warningf("slot name cache rejected entry for %s: %v", cacheKey, err)
	}
	return name, nil
}

// recoverPackageName maps an iTunes numeric ID to an Android package name by
// matching display names, case-insensitively, against the reference catalog.
// Silently falling back to the numeric ID would produce a meaningless,
// unstable name, so a miss is a hard failure.
func (r *Resolver) recoverPackageName(ctx context.Context, sessionID string, seed Seed, network networks.NetworkName) (string, error) {
	if network == r.referenceNetwork {
		return "", &errortypes.ResolutionError{
			Message: fmt.Sprintf("iTunes ID cannot be resolved against %s's own catalog", network),
		}
	}
	if seed.DisplayName == "" {
		return "", &errortypes.ResolutionError{Message: "iTunes ID recovery requires the app's display name"}
	}

	var apps []netclient.AppRecord
	var err error
	if sess, ok := r.sessions.Get(sessionID); ok {
		apps, err = session.Catalog{Client: r.client, Session: sess, Metrics: r.me}.GetApps(ctx, r.referenceNetwork)
	} else {
		apps, err = r.client.GetApps(ctx, r.referenceNetwork)
		if err == nil {
			r.me.RecordCatalogLookup(r.referenceNetwork, false)
		}
	}
	if err != nil {
		return "", err
	}
	for _, app := range apps {
		if app.Platform != networks.PlatformAndroid || app.PackageName == "" {
			continue
		}
		if strings.EqualFold(app.Name, seed.DisplayName) {
			return app.PackageName, nil
		}
	}
	return "", &errortypes.ResolutionError{
		Message: fmt.Sprintf("no Android app named %q in the %s catalog", seed.DisplayName, r.referenceNetwork),
	}
}
