package role

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeCache struct {
	mu    sync.Mutex
	roles map[string]Role
}

func newFakeCache() *fakeCache {
	return &fakeCache{roles: make(map[string]Role)}
}

func (c *fakeCache) Get(_ context.Context, userID string) (Role, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.roles[userID]
	return r, ok, nil
}

func (c *fakeCache) Set(_ context.Context, userID string, role Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles[userID] = role
	return nil
}

func (c *fakeCache) Del(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.roles, userID)
	return nil
}

type fakeStores struct {
	owns bool
	err  error
}

func (f *fakeStores) OwnerExists(string) (bool, error) { return f.owns, f.err }

type fakeTherapists struct {
	mu     sync.Mutex
	exists bool
	err    error
	calls  int
	gate   chan struct{}
}

func (f *fakeTherapists) ExistsForUser(string) (bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.exists, f.err
}

func (f *fakeTherapists) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestResolver(cache Cache, stores StoreProbe, therapists TherapistProbe, profile ProfileProbe) *Resolver {
	r := NewResolver(stores, therapists, profile, cache)
	r.ReconcileDelay = 0
	r.ProbeTimeout = time.Second
	return r
}

func TestResolveCacheMissProbesInPriorityOrder(t *testing.T) {
	cache := newFakeCache()
	r := newTestResolver(cache,
		&fakeStores{owns: true},
		&fakeTherapists{exists: true},
		ProfileProbeFunc(func(string) (string, error) { return "therapist", nil }),
	)

	if got := r.Resolve(context.Background(), "u1", false); got != Store {
		t.Fatalf("store ownership must win the probe sequence, got %q", got)
	}
	if cached, ok, _ := cache.Get(context.Background(), "u1"); !ok || cached != Store {
		t.Fatalf("resolved role was not cached: %q ok=%v", cached, ok)
	}
}

func TestResolveFallsBackToUser(t *testing.T) {
	r := newTestResolver(newFakeCache(),
		&fakeStores{err: errors.New("store table unavailable")},
		&fakeTherapists{},
		ProfileProbeFunc(func(string) (string, error) { return "", nil }),
	)

	if got := r.Resolve(context.Background(), "u2", false); got != User {
		t.Fatalf("unresolved principal must default to user, got %q", got)
	}
	if got := r.Resolve(context.Background(), "u3", true); got != Customer {
		t.Fatalf("unresolved first signup must default to customer, got %q", got)
	}
}

func TestReconcileOverwritesStaleCachedRole(t *testing.T) {
	cache := newFakeCache()
	_ = cache.Set(context.Background(), "u4", Therapist)

	changed := make(chan Role, 1)
	r := newTestResolver(cache,
		&fakeStores{},
		&fakeTherapists{exists: false}, // therapist row is gone
		ProfileProbeFunc(func(string) (string, error) { return "", nil }),
	)
	r.OnChange = func(_ string, _, updated Role) { changed <- updated }

	// The cached value is trusted immediately.
	if got := r.Resolve(context.Background(), "u4", false); got != Therapist {
		t.Fatalf("cached role must be trusted optimistically, got %q", got)
	}

	// The background pass must notice the stale cache and downgrade it.
	select {
	case updated := <-changed:
		if updated != User {
			t.Fatalf("expected downgrade to user, got %q", updated)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reconciliation never fired")
	}

	if cached, ok, _ := cache.Get(context.Background(), "u4"); !ok || cached != User {
		t.Fatalf("stale cached role was not overwritten: %q ok=%v", cached, ok)
	}
}

func TestReconcileCollapsesOverlappingInvocations(t *testing.T) {
	cache := newFakeCache()
	_ = cache.Set(context.Background(), "u5", Therapist)

	therapists := &fakeTherapists{exists: true, gate: make(chan struct{})}
	r := newTestResolver(cache, &fakeStores{}, therapists,
		ProfileProbeFunc(func(string) (string, error) { return "", nil }),
	)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		r.Reconcile("u5")
		close(done)
	}()

	<-started
	// Give the first pass time to take the in-flight flag and block in the
	// probe, then trigger an overlapping invocation.
	for i := 0; i < 100; i++ {
		if therapists.callCount() > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	r.Reconcile("u5") // must return immediately: a pass is already running

	close(therapists.gate)
	<-done

	if calls := therapists.callCount(); calls != 1 {
		t.Fatalf("overlapping reconciles must collapse into one probe, got %d", calls)
	}
}
