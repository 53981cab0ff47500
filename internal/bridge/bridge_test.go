package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

type mockExchanger struct {
	ExchangeTokenFunc func(ctx context.Context, idToken string) (*domain.ExchangeResult, error)
	calls             int
}

func (m *mockExchanger) ExchangeToken(ctx context.Context, idToken string) (*domain.ExchangeResult, error) {
	m.calls++
	if m.ExchangeTokenFunc != nil {
		return m.ExchangeTokenFunc(ctx, idToken)
	}
	return &domain.ExchangeResult{CustomToken: "custom-token", ExpiresIn: 300}, nil
}

type mockRedeemer struct {
	RedeemCustomTokenFunc func(ctx context.Context, customToken string) (*domain.AuthResult, error)
	calls                 int
}

func (m *mockRedeemer) RedeemCustomToken(ctx context.Context, customToken string) (*domain.AuthResult, error) {
	m.calls++
	if m.RedeemCustomTokenFunc != nil {
		return m.RedeemCustomTokenFunc(ctx, customToken)
	}
	return &domain.AuthResult{
		Session: &domain.Session{ID: "sess_recovered", SubjectID: "subject-1"},
		IDToken: "fresh-id-token",
	}, nil
}

func TestBridge_RecoverWithoutCookie(t *testing.T) {
	b := New(NewMemoryCookieStore(), &mockExchanger{}, &mockRedeemer{})

	result, err := b.Recover(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected no session, got %+v", result)
	}
	if b.State() != StateNotFound {
		t.Errorf("expected StateNotFound, got %v", b.State())
	}
}

func TestBridge_RecoverSuccess(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("parent-id-token")
	exchanger := &mockExchanger{}
	redeemer := &mockRedeemer{}
	b := New(cookies, exchanger, redeemer)

	result, err := b.Recover(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.Session.ID != "sess_recovered" {
		t.Fatalf("expected recovered session, got %+v", result)
	}
	if b.State() != StateRecovered {
		t.Errorf("expected StateRecovered, got %v", b.State())
	}
	if exchanger.calls != 1 || redeemer.calls != 1 {
		t.Errorf("expected one exchange and one redeem, got %d/%d", exchanger.calls, redeemer.calls)
	}
}

func TestBridge_RecoverExchangeFailure(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("stale-id-token")
	exchanger := &mockExchanger{
		ExchangeTokenFunc: func(ctx context.Context, idToken string) (*domain.ExchangeResult, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	redeemer := &mockRedeemer{}
	b := New(cookies, exchanger, redeemer)

	_, err := b.Recover(context.Background())
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if b.State() != StateFailed {
		t.Errorf("expected StateFailed, got %v", b.State())
	}
	if redeemer.calls != 0 {
		t.Errorf("redeem attempted after failed exchange")
	}
}

func TestBridge_RecoverRedeemFailure(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("parent-id-token")
	redeemer := &mockRedeemer{
		RedeemCustomTokenFunc: func(ctx context.Context, customToken string) (*domain.AuthResult, error) {
			return nil, domain.ErrCredentialConsumed
		},
	}
	b := New(cookies, &mockExchanger{}, redeemer)

	_, err := b.Recover(context.Background())
	if !errors.Is(err, domain.ErrCredentialConsumed) {
		t.Fatalf("expected ErrCredentialConsumed, got %v", err)
	}
	if b.State() != StateFailed {
		t.Errorf("expected StateFailed, got %v", b.State())
	}
}

func TestBridge_OneShotLatch(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("stale-id-token")
	exchanger := &mockExchanger{
		ExchangeTokenFunc: func(ctx context.Context, idToken string) (*domain.ExchangeResult, error) {
			return nil, errors.New("server down")
		},
	}
	b := New(cookies, exchanger, &mockRedeemer{})

	b.Recover(context.Background())
	// a second trigger within the same lifetime never retries
	result, err := b.Recover(context.Background())
	if result != nil || err != nil {
		t.Fatalf("expected latched no-op, got %+v / %v", result, err)
	}
	if exchanger.calls != 1 {
		t.Errorf("expected a single exchange attempt, got %d", exchanger.calls)
	}
	if b.State() != StateFailed {
		t.Errorf("latched call changed state to %v", b.State())
	}
}

func TestBridge_HandleAuthEvent(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("parent-id-token")
	b := New(cookies, &mockExchanger{}, &mockRedeemer{})

	// sign-in events never trigger recovery
	result, err := b.HandleAuthEvent(context.Background(), domain.AuthEvent{
		State:   domain.StateSignedIn,
		Session: &domain.Session{ID: "sess_1"},
	})
	if result != nil || err != nil {
		t.Fatalf("sign-in triggered recovery: %+v / %v", result, err)
	}
	if b.State() != StateUnknown {
		t.Errorf("expected StateUnknown, got %v", b.State())
	}

	// a signed-out report does
	result, err = b.HandleAuthEvent(context.Background(), domain.AuthEvent{State: domain.StateSignedOut})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected recovered session")
	}
}

func TestBridge_LogoutResetsLatchAndClearsCookie(t *testing.T) {
	cookies := NewMemoryCookieStore()
	cookies.Set("parent-id-token")
	b := New(cookies, &mockExchanger{}, &mockRedeemer{})

	if _, err := b.Recover(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.HandleLogout()
	if _, ok := cookies.Get(); ok {
		t.Error("expected shared cookie cleared")
	}
	if b.State() != StateUnknown {
		t.Errorf("expected StateUnknown after logout, got %v", b.State())
	}

	// the latch re-arms, but with no cookie recovery reports not-found
	result, err := b.Recover(context.Background())
	if err != nil || result != nil {
		t.Fatalf("expected clean not-found pass, got %+v / %v", result, err)
	}
	if b.State() != StateNotFound {
		t.Errorf("expected StateNotFound, got %v", b.State())
	}
}

func TestBridge_PropagateSession(t *testing.T) {
	cookies := NewMemoryCookieStore()
	b := New(cookies, &mockExchanger{}, &mockRedeemer{})

	b.PropagateSession("fresh-id-token")
	got, ok := cookies.Get()
	if !ok || got != "fresh-id-token" {
		t.Errorf("expected propagated token, got %q/%v", got, ok)
	}
}
