package sessionstore

import (
	"fmt"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
)

// sessionStoreImpl implements port.SessionStore on an in-memory TTL cache.
// Every Get refreshes the session's expiration.
type sessionStoreImpl struct {
	cache *cache.Cache
	ttl   time.Duration
}

// New creates a store whose sessions expire after ttl of inactivity.
func New(ttl, cleanupInterval time.Duration) port.SessionStore {
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(string, interface{}) {
		metrics.ActiveSessions.Dec()
	})
	return &sessionStoreImpl{cache: c, ttl: ttl}
}

func (s *sessionStoreImpl) Put(session port.DashboardSession) {
	if _, exists := s.cache.Get(session.ID()); !exists {
		metrics.ActiveSessions.Inc()
	}
	s.cache.Set(session.ID(), session, s.ttl)
}

func (s *sessionStoreImpl) Get(id string) (port.DashboardSession, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}
	session := v.(port.DashboardSession)
	s.cache.Set(id, session, s.ttl)
	return session, nil
}

func (s *sessionStoreImpl) Delete(id string) {
	s.cache.Delete(id)
}

func (s *sessionStoreImpl) Count() int {
	return s.cache.ItemCount()
}
