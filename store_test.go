package authsession

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/crmkit/authsession/storage"
)

// failingBackend errors on every operation past an optional grace count.
type failingBackend struct {
	calls     int
	graceOps  int
	lastError error
}

func (f *failingBackend) op() error {
	f.calls++
	if f.calls <= f.graceOps {
		return nil
	}
	f.lastError = errors.New("disk full")
	return f.lastError
}

func (f *failingBackend) Get(context.Context, string) (string, error) {
	if err := f.op(); err != nil {
		return "", err
	}
	return "", storage.ErrNotFound
}
func (f *failingBackend) Set(context.Context, string, string) error { return f.op() }
func (f *failingBackend) Delete(context.Context, string) error      { return f.op() }
func (f *failingBackend) Close() error                              { return nil }

func TestStorePutSnapshotRoundTrip(t *testing.T) {
	store := NewStore(nil, nil)
	session := Session{
		AccessToken:  "tok-a",
		RefreshToken: "tok-r",
		Role:         "ADMIN",
		UserID:       "u-1",
		Permissions:  []string{"leads:read", "leads:write", "leads:read"},
		Email:        "admin@crm.example",
	}
	store.Put(context.Background(), session)

	got := store.Snapshot()
	if !reflect.DeepEqual(got, session) {
		t.Fatalf("snapshot mismatch:\n got %+v\nwant %+v", got, session)
	}
}

func TestStoreMirrorsToBackend(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	first := NewStore(backend, nil)
	first.Put(ctx, Session{
		AccessToken:  "tok-a",
		RefreshToken: "tok-r",
		Role:         "AGENT",
		UserID:       "u-2",
		Permissions:  []string{"tasks:read"},
		Email:        "agent@crm.example",
	})

	// A fresh store over the same backend simulates a process restart.
	second := NewStore(backend, nil)
	second.Load(ctx)
	got := second.Snapshot()

	if got.AccessToken != "tok-a" || got.RefreshToken != "tok-r" ||
		got.Role != "AGENT" || got.UserID != "u-2" {
		t.Fatalf("restored fields mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Permissions, []string{"tasks:read"}) {
		t.Fatalf("restored permissions mismatch: %v", got.Permissions)
	}
	// Email is derived, never persisted.
	if got.Email != "" {
		t.Fatalf("email must not survive via storage, got %q", got.Email)
	}
}

func TestStoreClearDeletesEveryKey(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	store := NewStore(backend, nil)
	store.Put(ctx, Session{
		AccessToken:  "tok-a",
		RefreshToken: "tok-r",
		Role:         "ADMIN",
		UserID:       "u-1",
		Permissions:  []string{"leads:read"},
	})
	store.Clear(ctx)

	if got := store.Snapshot(); !reflect.DeepEqual(got, Session{}) {
		t.Fatalf("expected empty session after clear, got %+v", got)
	}
	for _, key := range sessionKeys {
		if _, err := backend.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("key %q must be deleted, got %v", key, err)
		}
	}
}

func TestStoreLoadMalformedPermissions(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	if err := backend.Set(ctx, keyAccessToken, "tok-a"); err != nil {
		t.Fatalf("seed backend: %v", err)
	}
	if err := backend.Set(ctx, keyPermissions, "{not json]"); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	store := NewStore(backend, nil)
	store.Load(ctx)

	got := store.Snapshot()
	if got.AccessToken != "tok-a" {
		t.Fatalf("token should load, got %q", got.AccessToken)
	}
	if len(got.Permissions) != 0 {
		t.Fatalf("malformed permissions must decode to empty, got %v", got.Permissions)
	}
}

func TestStorePermissionsKeptVerbatim(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	perms := []string{"b", "a", "b", "b"}
	store := NewStore(backend, nil)
	store.Put(ctx, Session{AccessToken: "tok", Permissions: perms})

	restored := NewStore(backend, nil)
	restored.Load(ctx)
	if got := restored.Snapshot().Permissions; !reflect.DeepEqual(got, perms) {
		t.Fatalf("permissions must survive with order and duplicates: %v", got)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore(nil, nil)
	store.Put(context.Background(), Session{AccessToken: "tok", Permissions: []string{"a", "b"}})

	snapshot := store.Snapshot()
	snapshot.Permissions[0] = "mutated"

	if got := store.Snapshot().Permissions[0]; got != "a" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
}

func TestStoreDegradesOnBackendFailure(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{}
	store := NewStore(backend, nil)

	// Must not panic or surface an error to the caller.
	store.Put(ctx, Session{AccessToken: "tok-a", Role: "ADMIN"})

	if !store.Degraded() {
		t.Fatal("store must latch degraded mode on backend failure")
	}
	if got := store.Snapshot().AccessToken; got != "tok-a" {
		t.Fatalf("in-memory state must survive degradation, got %q", got)
	}

	// Once degraded the backend is left alone.
	callsAfter := backend.calls
	store.Put(ctx, Session{AccessToken: "tok-b"})
	store.Clear(ctx)
	if backend.calls != callsAfter {
		t.Fatalf("degraded store must stop touching the backend (%d -> %d calls)", callsAfter, backend.calls)
	}
}

func TestStoreEmptyFieldsDeleteTheirKeys(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	store := NewStore(backend, nil)
	store.Put(ctx, Session{AccessToken: "tok-a", RefreshToken: "tok-r"})
	store.Put(ctx, Session{AccessToken: "tok-a2"})

	if _, err := backend.Get(ctx, keyRefreshToken); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cleared field must delete its key, got %v", err)
	}
	value, err := backend.Get(ctx, keyAccessToken)
	if err != nil || value != "tok-a2" {
		t.Fatalf("expected tok-a2, got %q (err %v)", value, err)
	}
}
