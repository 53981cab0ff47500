package mocks

import (
	"context"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// MockCredentialRepository implements domain.CredentialRepository interface for testing
type MockCredentialRepository struct {
	MarkRedeemedFunc func(ctx context.Context, jti string) (bool, error)
}

// NewMockCredentialRepository creates a new MockCredentialRepository with default behaviors
func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{}
}

// MarkRedeemed records jti as redeemed and reports whether this call was first
func (m *MockCredentialRepository) MarkRedeemed(ctx context.Context, jti string) (bool, error) {
	if m.MarkRedeemedFunc != nil {
		return m.MarkRedeemedFunc(ctx, jti)
	}
	// Default behavior: first redemption
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.CredentialRepository = (*MockCredentialRepository)(nil)
