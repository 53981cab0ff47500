package mocks

import (
	"context"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// MockProfileRepository implements domain.ProfileRepository interface for testing
type MockProfileRepository struct {
	CreateFunc        func(ctx context.Context, profile *domain.Profile) error
	FindBySubjectFunc func(ctx context.Context, subjectID string) (*domain.Profile, error)
	UpdateFunc        func(ctx context.Context, profile *domain.Profile) error
	DeleteFunc        func(ctx context.Context, subjectID string) error
	SaveProgressFunc  func(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error
}

// NewMockProfileRepository creates a new MockProfileRepository with default behaviors
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

// Create creates a new profile document
func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	// Default behavior: success
	return nil
}

// FindBySubject finds a profile by subject ID
func (m *MockProfileRepository) FindBySubject(ctx context.Context, subjectID string) (*domain.Profile, error) {
	if m.FindBySubjectFunc != nil {
		return m.FindBySubjectFunc(ctx, subjectID)
	}
	// Default behavior: not found
	return nil, domain.ErrProfileNotFound
}

// Update updates a profile document
func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	// Default behavior: success
	return nil
}

// Delete deletes a profile document
func (m *MockProfileRepository) Delete(ctx context.Context, subjectID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, subjectID)
	}
	// Default behavior: success
	return nil
}

// SaveProgress saves one certification's progress stats
func (m *MockProfileRepository) SaveProgress(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error {
	if m.SaveProgressFunc != nil {
		return m.SaveProgressFunc(ctx, subjectID, certID, stats)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProfileRepository = (*MockProfileRepository)(nil)
