package role

import (
	"context"
	"sync"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"go.uber.org/zap"
)

const (
	defaultProbeTimeout   = 3 * time.Second
	defaultReconcileDelay = 2 * time.Second
)

// Resolver determines a principal's role. A cached value is trusted
// immediately and verified in the background; a cache miss runs the probe
// sequence synchronously under a hard timeout and falls back to a generic
// role when nothing matches.
type Resolver struct {
	Stores     StoreProbe
	Therapists TherapistProbe
	Profiles   ProfileProbe
	Cache      Cache

	// ProbeTimeout bounds one full probe sequence.
	ProbeTimeout time.Duration
	// ReconcileDelay staggers the background verification after a cache hit.
	ReconcileDelay time.Duration
	// OnChange fires when reconciliation overwrites a stale cached role, so
	// dependent views can re-render.
	OnChange func(userID string, old, updated Role)

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewResolver wires a resolver with default timings.
func NewResolver(stores StoreProbe, therapists TherapistProbe, profiles ProfileProbe, cache Cache) *Resolver {
	return &Resolver{
		Stores:         stores,
		Therapists:     therapists,
		Profiles:       profiles,
		Cache:          cache,
		ProbeTimeout:   defaultProbeTimeout,
		ReconcileDelay: defaultReconcileDelay,
		inFlight:       make(map[string]bool),
	}
}

// Resolve returns the principal's role. firstSignup selects the "customer"
// fallback for brand-new accounts that match nothing.
func (r *Resolver) Resolve(ctx context.Context, userID string, firstSignup bool) Role {
	cached, ok, err := r.Cache.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("role cache read failed", zap.String("userID", userID), zap.Error(err))
	}
	if ok && cached != Unknown {
		// Trust optimistically; verify in the background.
		go r.Reconcile(userID)
		return cached
	}

	probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout())
	defer cancel()

	resolved, found := r.probe(probeCtx, userID)
	if !found {
		if firstSignup {
			resolved = Customer
		} else {
			resolved = User
		}
	}
	if err := r.Cache.Set(ctx, userID, resolved); err != nil {
		utils.GetLogger().Warn("role cache write failed", zap.String("userID", userID), zap.Error(err))
	}
	return resolved
}

// Reconcile re-runs the probe sequence and overwrites a stale cached value.
// Overlapping invocations for the same principal collapse into one pass.
func (r *Resolver) Reconcile(userID string) {
	r.mu.Lock()
	if r.inFlight[userID] {
		r.mu.Unlock()
		return
	}
	r.inFlight[userID] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, userID)
		r.mu.Unlock()
	}()

	if r.ReconcileDelay > 0 {
		time.Sleep(r.ReconcileDelay)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.probeTimeout())
	defer cancel()

	resolved, found := r.probe(ctx, userID)
	if !found {
		resolved = User
	}

	cached, ok, err := r.Cache.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("role cache read failed during reconcile", zap.String("userID", userID), zap.Error(err))
		return
	}
	if ok && cached == resolved {
		return
	}

	if err := r.Cache.Set(ctx, userID, resolved); err != nil {
		utils.GetLogger().Warn("role cache update failed", zap.String("userID", userID), zap.Error(err))
		return
	}
	if r.OnChange != nil {
		r.OnChange(userID, cached, resolved)
	}
}

// Invalidate drops the cached role, e.g. on sign-out.
func (r *Resolver) Invalidate(ctx context.Context, userID string) {
	if err := r.Cache.Del(ctx, userID); err != nil {
		utils.GetLogger().Warn("role cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
}

// probe runs the priority sequence: store ownership, then therapist
// membership, then the profile's user_type hint. Probe errors are logged
// and treated as "no match" so resolution degrades instead of failing.
func (r *Resolver) probe(ctx context.Context, userID string) (Role, bool) {
	type result struct {
		role  Role
		found bool
	}
	done := make(chan result, 1)

	go func() {
		if r.Stores != nil {
			if owns, err := r.Stores.OwnerExists(userID); err != nil {
				utils.GetLogger().Warn("store probe failed", zap.String("userID", userID), zap.Error(err))
			} else if owns {
				done <- result{Store, true}
				return
			}
		}
		if r.Therapists != nil {
			if exists, err := r.Therapists.ExistsForUser(userID); err != nil {
				utils.GetLogger().Warn("therapist probe failed", zap.String("userID", userID), zap.Error(err))
			} else if exists {
				done <- result{Therapist, true}
				return
			}
		}
		if r.Profiles != nil {
			userType, err := r.Profiles.UserType(userID)
			if err != nil {
				utils.GetLogger().Warn("profile probe failed", zap.String("userID", userID), zap.Error(err))
			} else if userType != "" {
				done <- result{fromUserType(userType), true}
				return
			}
		}
		done <- result{Unknown, false}
	}()

	select {
	case res := <-done:
		return res.role, res.found
	case <-ctx.Done():
		utils.GetLogger().Warn("role probe timed out", zap.String("userID", userID))
		return Unknown, false
	}
}

func (r *Resolver) probeTimeout() time.Duration {
	if r.ProbeTimeout > 0 {
		return r.ProbeTimeout
	}
	return defaultProbeTimeout
}

func fromUserType(userType string) Role {
	switch userType {
	case models.UserTypeTherapist:
		return Therapist
	case models.UserTypeStore:
		return Store
	case models.UserTypeCustomer:
		return Customer
	default:
		return User
	}
}
