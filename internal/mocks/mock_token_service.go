package mocks

import (
	"time"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateIDTokenFunc           func(session *domain.Session) (string, error)
	GenerateCustomTokenFunc       func(subjectID string) (string, error)
	GenerateVerificationTokenFunc func(subjectID, email string) (string, error)
	ValidateIDTokenFunc           func(token string) (*domain.TokenClaims, error)
	ValidateCustomTokenFunc       func(token string) (*domain.TokenClaims, error)
	ValidateVerificationTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateIDToken generates an ID token for the session
func (m *MockTokenService) GenerateIDToken(session *domain.Session) (string, error) {
	if m.GenerateIDTokenFunc != nil {
		return m.GenerateIDTokenFunc(session)
	}
	// Default behavior: return a mock ID token
	return "id_token_" + session.SubjectID, nil
}

// GenerateCustomToken generates a one-time custom token for the subject
func (m *MockTokenService) GenerateCustomToken(subjectID string) (string, error) {
	if m.GenerateCustomTokenFunc != nil {
		return m.GenerateCustomTokenFunc(subjectID)
	}
	// Default behavior: return a mock custom token
	return "custom_token_" + subjectID, nil
}

// GenerateVerificationToken generates an email verification token
func (m *MockTokenService) GenerateVerificationToken(subjectID, email string) (string, error) {
	if m.GenerateVerificationTokenFunc != nil {
		return m.GenerateVerificationTokenFunc(subjectID, email)
	}
	// Default behavior: return a mock verification token
	return "verify_token_" + subjectID, nil
}

// ValidateIDToken validates an ID token and returns claims
func (m *MockTokenService) ValidateIDToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateIDTokenFunc != nil {
		return m.ValidateIDTokenFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		SubjectID: "subject-1",
		SessionID: "sess_1",
		IssuedAt:  now,
		ExpiresAt: now + 3600,
	}, nil
}

// ValidateCustomToken validates a custom token and returns claims
func (m *MockTokenService) ValidateCustomToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateCustomTokenFunc != nil {
		return m.ValidateCustomTokenFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		SubjectID: "subject-1",
		JTI:       "jti-1",
		IssuedAt:  now,
		ExpiresAt: now + 300,
	}, nil
}

// ValidateVerificationToken validates a verification token and returns claims
func (m *MockTokenService) ValidateVerificationToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateVerificationTokenFunc != nil {
		return m.ValidateVerificationTokenFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		SubjectID: "subject-1",
		Email:     "user@example.com",
		IssuedAt:  now,
		ExpiresAt: now + 86400,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
