// Package bridge implements the cross-domain session bridge: when a
// subdomain starts without a session, it looks for the shared parent-domain
// cookie, exchanges the embedded identity assertion for a one-time custom
// credential, and redeems it locally. At most one recovery attempt happens
// per app lifetime.
package bridge

import (
	"context"
	"log"
	"sync"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// State is the bridge state machine position
type State int

const (
	StateUnknown State = iota
	StateChecking
	StateRecovered
	StateNotFound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateRecovered:
		return "recovered"
	case StateNotFound:
		return "not-found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CookieStore reads and writes the shared parent-domain cookie
type CookieStore interface {
	Get() (string, bool)
	Set(idToken string)
	Clear()
}

// Exchanger requests a custom credential for an identity assertion
type Exchanger interface {
	ExchangeToken(ctx context.Context, idToken string) (*domain.ExchangeResult, error)
}

// Redeemer establishes a local session from a custom credential
type Redeemer interface {
	RedeemCustomToken(ctx context.Context, customToken string) (*domain.AuthResult, error)
}

// Bridge is safe for concurrent use; the one-shot latch guarantees a single
// in-flight recovery even when re-renders trigger it repeatedly.
type Bridge struct {
	cookies   CookieStore
	exchanger Exchanger
	redeemer  Redeemer

	mu        sync.Mutex
	state     State
	attempted bool
}

// New creates a bridge in the Unknown state
func New(cookies CookieStore, exchanger Exchanger, redeemer Redeemer) *Bridge {
	return &Bridge{
		cookies:   cookies,
		exchanger: exchanger,
		redeemer:  redeemer,
	}
}

// State returns the current state machine position
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// HandleAuthEvent drives the bridge from the auth-state subscription: a
// signed-out report triggers one recovery attempt; a sign-in propagates
// nothing here (PropagateSession carries the token, which events do not).
func (b *Bridge) HandleAuthEvent(ctx context.Context, event domain.AuthEvent) (*domain.AuthResult, error) {
	if event.State != domain.StateSignedOut {
		return nil, nil
	}
	return b.Recover(ctx)
}

// Recover runs the recovery state machine once. Subsequent calls within the
// same app lifetime are no-ops regardless of the first outcome; a nil result
// with nil error means no session was recovered and the caller should show
// the unauthenticated UI.
func (b *Bridge) Recover(ctx context.Context) (*domain.AuthResult, error) {
	b.mu.Lock()
	if b.attempted {
		b.mu.Unlock()
		return nil, nil
	}
	b.attempted = true
	b.state = StateChecking
	b.mu.Unlock()

	idToken, ok := b.cookies.Get()
	if !ok {
		b.setState(StateNotFound)
		return nil, nil
	}

	exchange, err := b.exchanger.ExchangeToken(ctx, idToken)
	if err != nil {
		b.setState(StateFailed)
		log.Printf("%s: stage=exchange error=%v", domain.RecoveryFailedEvent, err)
		return nil, err
	}

	result, err := b.redeemer.RedeemCustomToken(ctx, exchange.CustomToken)
	if err != nil {
		b.setState(StateFailed)
		log.Printf("%s: stage=redeem error=%v", domain.RecoveryFailedEvent, err)
		return nil, err
	}

	// hydration completes through the normal auth-state pipeline; the bridge
	// only records the outcome
	b.setState(StateRecovered)
	log.Printf("%s: subject_id=%s session_id=%s", domain.SessionRecoveredEvent, result.Session.SubjectID, result.Session.ID)
	return result, nil
}

// PropagateSession publishes the session's identity assertion into the shared
// cookie so sibling subdomains can recover it
func (b *Bridge) PropagateSession(idToken string) {
	b.cookies.Set(idToken)
}

// HandleLogout clears the shared cookie and resets the one-shot latch so a
// fresh login on this subdomain can re-propagate
func (b *Bridge) HandleLogout() {
	b.cookies.Clear()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempted = false
	b.state = StateUnknown
}

func (b *Bridge) setState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
}
