package adapters

import "github.com/openmediation/mediation-console/config"

// Builder constructs a network's Adapter with its config. The registry is the
// only caller.
type Builder func(cfg config.Network) (Adapter, error)
