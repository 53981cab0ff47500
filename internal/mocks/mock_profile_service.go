package mocks

import (
	"context"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	MergedProfileFunc     func(ctx context.Context, session *domain.Session) (*domain.MergedProfile, error)
	ChangeDisplayNameFunc func(ctx context.Context, subjectID, displayName string) error
	UpdateAvatarFunc      func(ctx context.Context, subjectID string, avatar domain.Avatar) error
	ChangePasswordFunc    func(ctx context.Context, subjectID, currentPassword, newPassword string) error
	DeleteAccountFunc     func(ctx context.Context, subjectID, currentPassword string) error
	SyncProgressFunc      func(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error
}

// NewMockProfileService creates a new MockProfileService with default behaviors
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

// MergedProfile returns the merged profile read model
func (m *MockProfileService) MergedProfile(ctx context.Context, session *domain.Session) (*domain.MergedProfile, error) {
	if m.MergedProfileFunc != nil {
		return m.MergedProfileFunc(ctx, session)
	}
	// Default behavior: minimal read model derived from the session
	return &domain.MergedProfile{
		SubjectID:   session.SubjectID,
		Email:       session.Email,
		DisplayName: domain.DisplayNameFor(nil, session),
	}, nil
}

// ChangeDisplayName renames the subject
func (m *MockProfileService) ChangeDisplayName(ctx context.Context, subjectID, displayName string) error {
	if m.ChangeDisplayNameFunc != nil {
		return m.ChangeDisplayNameFunc(ctx, subjectID, displayName)
	}
	// Default behavior: success
	return nil
}

// UpdateAvatar replaces the subject's avatar
func (m *MockProfileService) UpdateAvatar(ctx context.Context, subjectID string, avatar domain.Avatar) error {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, subjectID, avatar)
	}
	// Default behavior: success
	return nil
}

// ChangePassword rotates the subject's password
func (m *MockProfileService) ChangePassword(ctx context.Context, subjectID, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, subjectID, currentPassword, newPassword)
	}
	// Default behavior: success
	return nil
}

// DeleteAccount removes the subject's profile and identity
func (m *MockProfileService) DeleteAccount(ctx context.Context, subjectID, currentPassword string) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, subjectID, currentPassword)
	}
	// Default behavior: success
	return nil
}

// SyncProgress merges client stats into the server copy
func (m *MockProfileService) SyncProgress(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error {
	if m.SyncProgressFunc != nil {
		return m.SyncProgressFunc(ctx, subjectID, certID, stats)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProfileService = (*MockProfileService)(nil)
