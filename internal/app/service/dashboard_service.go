package service

import (
	"context"
	"fmt"
	"strings"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/utils"

	"github.com/google/uuid"
)

// dashboardServiceImpl implements port.DashboardService.
type dashboardServiceImpl struct {
	deps     SessionDeps
	registry port.TokenRegistry
	store    port.SessionStore
	logger   port.Logger
}

// NewDashboardService creates the session service. Every session it opens shares deps.
func NewDashboardService(deps SessionDeps, registry port.TokenRegistry, store port.SessionStore, l port.Logger) port.DashboardService {
	return &dashboardServiceImpl{deps: deps, registry: registry, store: store, logger: l}
}

// OpenSession creates a session for wallet, stores it and mounts it.
// An empty wallet is allowed and yields the "no wallet connected" table.
func (s *dashboardServiceImpl) OpenSession(ctx context.Context, wallet string) (port.DashboardSession, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet != "" {
		normalized, err := utils.NormalizeAddress(wallet)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
		wallet = normalized
	}

	session := NewDashboardSession(uuid.NewString(), wallet, s.deps)
	s.store.Put(session)
	session.Mount(ctx)

	s.logger.Info("Dashboard session opened", "session", session.ID(), "wallet", wallet)
	return session, nil
}

// Session returns a live session or an error wrapping entity.ErrSessionNotFound.
func (s *dashboardServiceImpl) Session(id string) (port.DashboardSession, error) {
	return s.store.Get(id)
}

// CloseSession drops a session. Closing an unknown id is not an error.
func (s *dashboardServiceImpl) CloseSession(id string) {
	s.store.Delete(id)
	s.logger.Debug("Dashboard session closed", "session", id)
}

// Tokens lists the registry entries.
func (s *dashboardServiceImpl) Tokens() []entity.TokenInfo {
	return s.registry.List()
}
