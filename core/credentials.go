package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// CredentialManager owns the single process-wide bearer credential. Readers
// take whatever value is current with no locking; concurrent refreshes race
// benignly and the last writer wins, which is acceptable because refresh is
// idempotent from the caller's perspective.
type CredentialManager struct {
	source  TokenSource
	current atomic.Pointer[Credential]
	now     func() time.Time
}

func NewCredentialManager(source TokenSource) (*CredentialManager, error) {
	if source == nil {
		return nil, fmt.Errorf("core: token source is required")
	}
	return &CredentialManager{
		source: source,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// Current returns the held credential, if any, without touching the network.
func (m *CredentialManager) Current() (Credential, bool) {
	if m == nil {
		return Credential{}, false
	}
	held := m.current.Load()
	if held == nil || held.IsZero() {
		return Credential{}, false
	}
	return *held, true
}

// GetOrRefresh returns the held credential, performing the login exchange on
// first use or when force is set. A failed exchange is not retried here; it
// surfaces as an auth error to the caller.
func (m *CredentialManager) GetOrRefresh(ctx context.Context, force bool) (Credential, error) {
	if m == nil || m.source == nil {
		return Credential{}, newDispatchError(
			"core: credential manager is not configured",
			goerrors.CategoryInternal,
			DispatchErrorInternal,
		)
	}
	if !force {
		if held, ok := m.Current(); ok {
			return held, nil
		}
	}

	credential, err := m.source.Login(ctx)
	if err != nil {
		mapped := goerrors.Wrap(err, goerrors.CategoryAuth, "core: login exchange failed").
			WithTextCode(DispatchErrorAuthFailed)
		return Credential{}, ensureDispatchErrorEnvelope(mapped)
	}
	if credential.IsZero() {
		return Credential{}, newDispatchError(
			"core: login exchange returned an empty token",
			goerrors.CategoryAuth,
			DispatchErrorAuthFailed,
		)
	}
	if credential.IssuedAt.IsZero() {
		credential.IssuedAt = m.now()
	}
	m.current.Store(&credential)
	return credential, nil
}

// Invalidate drops the held credential so the next dispatch re-acquires.
func (m *CredentialManager) Invalidate() {
	if m == nil {
		return
	}
	m.current.Store(nil)
}
