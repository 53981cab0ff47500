package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

func newTestJWTService() domain.TokenService {
	return NewJWTService("test-secret", "studyauth-test", time.Hour, 5*time.Minute, 24*time.Hour)
}

func testSession() *domain.Session {
	return &domain.Session{
		ID:            "sess_1",
		SubjectID:     "subject-1",
		Email:         "student@example.com",
		EmailVerified: true,
		Provider:      domain.ProviderPassword,
	}
}

func TestJWTService_IDTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateIDToken(testSession())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateIDToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.SubjectID != "subject-1" {
		t.Errorf("expected subject-1, got %s", claims.SubjectID)
	}
	if claims.SessionID != "sess_1" {
		t.Errorf("expected sess_1, got %s", claims.SessionID)
	}
	if claims.Email != "student@example.com" || !claims.EmailVerified {
		t.Errorf("email claims lost: %+v", claims)
	}
	if claims.Provider != domain.ProviderPassword {
		t.Errorf("provider claim lost: %s", claims.Provider)
	}
}

func TestJWTService_CustomTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateCustomToken("subject-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateCustomToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.SubjectID != "subject-1" {
		t.Errorf("expected subject-1, got %s", claims.SubjectID)
	}
	if claims.JTI == "" {
		t.Error("custom tokens need a jti for the redemption latch")
	}
}

func TestJWTService_CustomTokensGetUniqueJTI(t *testing.T) {
	svc := newTestJWTService()

	first, _ := svc.GenerateCustomToken("subject-1")
	second, _ := svc.GenerateCustomToken("subject-1")

	a, err := svc.ValidateCustomToken(first)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	b, err := svc.ValidateCustomToken(second)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if a.JTI == b.JTI {
		t.Error("two credentials share a jti")
	}
}

func TestJWTService_RejectsWrongKind(t *testing.T) {
	svc := newTestJWTService()

	idToken, _ := svc.GenerateIDToken(testSession())
	customToken, _ := svc.GenerateCustomToken("subject-1")
	verifyToken, _ := svc.GenerateVerificationToken("subject-1", "student@example.com")

	tests := []struct {
		name     string
		validate func(string) (*domain.TokenClaims, error)
		token    string
	}{
		{name: "id token as custom", validate: svc.ValidateCustomToken, token: idToken},
		{name: "custom token as id", validate: svc.ValidateIDToken, token: customToken},
		{name: "verification token as id", validate: svc.ValidateIDToken, token: verifyToken},
		{name: "id token as verification", validate: svc.ValidateVerificationToken, token: idToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.validate(tt.token); !errors.Is(err, domain.ErrTokenMalformed) {
				t.Errorf("expected ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", "studyauth-test", -time.Minute, -time.Minute, -time.Minute)

	token, err := svc.GenerateIDToken(testSession())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ValidateIDToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	if _, err := svc.ValidateIDToken("not.a.jwt"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := svc.ValidateIDToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService("other-secret", "studyauth-test", time.Hour, time.Hour, time.Hour)

	token, _ := other.GenerateIDToken(testSession())
	if _, err := svc.ValidateIDToken(token); err == nil {
		t.Error("expected rejection of token signed with a different key")
	}
}

func TestJWTService_VerificationTokenCarriesEmail(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateVerificationToken("subject-1", "student@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := svc.ValidateVerificationToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Email != "student@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
}
