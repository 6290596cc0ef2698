package sessionstore_test

import (
	"errors"
	"testing"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/infrastructure/sessionstore"
)

type stubSession struct {
	port.DashboardSession
	id string
}

func (s stubSession) ID() string { return s.id }

func TestStorePutGetDelete(t *testing.T) {
	store := sessionstore.New(time.Minute, time.Minute)

	store.Put(stubSession{id: "a"})
	store.Put(stubSession{id: "b"})
	store.Put(stubSession{id: "a"})
	if store.Count() != 2 {
		t.Fatalf("Count = %d, want 2", store.Count())
	}

	got, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != "a" {
		t.Errorf("ID = %s", got.ID())
	}

	store.Delete("a")
	if _, err := store.Get("a"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
	store.Delete("missing")
	if store.Count() != 1 {
		t.Fatalf("Count = %d, want 1", store.Count())
	}
}

func TestStoreExpiry(t *testing.T) {
	store := sessionstore.New(20*time.Millisecond, time.Hour)
	store.Put(stubSession{id: "short"})

	time.Sleep(60 * time.Millisecond)
	if _, err := store.Get("short"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}
