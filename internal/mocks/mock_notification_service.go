package mocks

import "github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendVerificationEmailFunc func(to, verifyLink string) error

	// Sent records every delivery for assertion convenience
	Sent []SentEmail
}

// SentEmail records one delivery attempt
type SentEmail struct {
	To         string
	VerifyLink string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendVerificationEmail sends a verification email
func (m *MockNotificationService) SendVerificationEmail(to, verifyLink string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, VerifyLink: verifyLink})
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(to, verifyLink)
	}
	// Default behavior: success (no actual email sent in tests)
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
