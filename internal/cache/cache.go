package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keys for the read projections served to the dashboard. Mutations
// invalidate these so the next read rebuilds from storage.
const (
	KeyAdmittedPatients = "admitted_patients"
	KeyRecentVisits     = "recent_visits"
	KeyDashboardStats   = "dashboard_stats"
)

// Store is a small in-process cache for dashboard read projections. It is
// a disposable view, never a source of truth.
type Store struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{c: gocache.New(ttl, 2*ttl)}
}

func (s *Store) Get(key string) (interface{}, bool) {
	return s.c.Get(key)
}

func (s *Store) Set(key string, value interface{}) {
	s.c.Set(key, value, gocache.DefaultExpiration)
}

func (s *Store) Invalidate(keys ...string) {
	for _, key := range keys {
		s.c.Delete(key)
	}
}
