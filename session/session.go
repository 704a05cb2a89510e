package session

import (
	"sync"

	"github.com/gofrs/uuid"

	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
)

// UnitRecord is one created ad unit, kept so the operator's view of a
// network's inventory survives across requests within a session.
type UnitRecord struct {
	Name    string `json:"name"`
	AdType  string `json:"adType"`
	AppCode string `json:"appCode"`
}

type unitKey struct {
	network networks.NetworkName
	appCode string
}

// Session holds one operator's transient app and unit lists, keyed by
// network and app code. The original console was single-user and needed no
// locking; this store serves a multi-tenant HTTP server, so every session
// guards its own maps.
type Session struct {
	ID string

	mu    sync.RWMutex
	apps  map[networks.NetworkName][]netclient.AppRecord
	units map[unitKey][]UnitRecord
}

// Apps returns the cached app list for a network. The second return value is
// false when the list has never been fetched for this session.
func (s *Session) Apps(network networks.NetworkName) ([]netclient.AppRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	apps, ok := s.apps[network]
	return apps, ok
}

// SetApps replaces the cached app list for a network.
func (s *Session) SetApps(network networks.NetworkName, apps []netclient.AppRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[network] = apps
}

// AddApp appends one app to a network's cached list.
func (s *Session) AddApp(network networks.NetworkName, app netclient.AppRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[network] = append(s.apps[network], app)
}

// Units returns the cached unit list for (network, appCode).
func (s *Session) Units(network networks.NetworkName, appCode string) []UnitRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units[unitKey{network, appCode}]
}

// AddUnit appends one created unit for (network, appCode).
func (s *Session) AddUnit(network networks.NetworkName, appCode string, unit UnitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := unitKey{network, appCode}
	s.units[key] = append(s.units[key], unit)
}

// Store hands out isolated sessions keyed by uuid.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns it.
func (st *Store) Create() (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:    id.String(),
		apps:  make(map[networks.NetworkName][]netclient.AppRecord),
		units: make(map[unitKey][]UnitRecord),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns the session for the given ID, or false when it does not exist.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for the given ID, creating a fresh one when
// the ID is empty or unknown.
func (st *Store) GetOrCreate(id string) (*Session, error) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, nil
		}
	}
	return st.Create()
}
