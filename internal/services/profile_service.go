package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/progress"
)

// ProfileServiceImpl implements domain.ProfileService. Mutations run
// provider-first: the identity-level step (re-auth, password update, account
// delete) happens before any document write, so a provider failure leaves no
// partial state.
type ProfileServiceImpl struct {
	accountRepo domain.AccountRepository
	profileRepo domain.ProfileRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
}

// NewProfileService creates a new profile service
func NewProfileService(
	accountRepo domain.AccountRepository,
	profileRepo domain.ProfileRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
) domain.ProfileService {
	return &ProfileServiceImpl{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
	}
}

// MergedProfile implements domain.ProfileService. A missing profile document
// (a race with registration) is not an error; the fallback chain covers it.
func (s *ProfileServiceImpl) MergedProfile(ctx context.Context, session *domain.Session) (*domain.MergedProfile, error) {
	profile, err := s.profileRepo.FindBySubject(ctx, session.SubjectID)
	if err != nil && err != domain.ErrProfileNotFound {
		return nil, err
	}

	displayName := domain.DisplayNameFor(profile, session)
	merged := &domain.MergedProfile{
		SubjectID:     session.SubjectID,
		Email:         session.Email,
		EmailVerified: session.EmailVerified,
		DisplayName:   displayName,
		Avatar:        domain.AvatarFor(profile, displayName),
	}
	if profile != nil {
		merged.IsGuest = profile.IsGuest
	}
	return merged, nil
}

// ChangeDisplayName implements domain.ProfileService
func (s *ProfileServiceImpl) ChangeDisplayName(ctx context.Context, subjectID, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.ErrEmptyName
	}

	profile, err := s.profileRepo.FindBySubject(ctx, subjectID)
	if err != nil {
		return err
	}
	profile.DisplayName = displayName
	return s.profileRepo.Update(ctx, profile)
}

// UpdateAvatar implements domain.ProfileService
func (s *ProfileServiceImpl) UpdateAvatar(ctx context.Context, subjectID string, avatar domain.Avatar) error {
	if err := avatar.Validate(); err != nil {
		return err
	}

	profile, err := s.profileRepo.FindBySubject(ctx, subjectID)
	if err != nil {
		return err
	}
	profile.Avatar = avatar
	return s.profileRepo.Update(ctx, profile)
}

// ChangePassword implements domain.ProfileService. Re-authentication with the
// current password is required before any mutation.
func (s *ProfileServiceImpl) ChangePassword(ctx context.Context, subjectID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}
	if newPassword == currentPassword {
		return domain.ErrSamePassword
	}

	account, err := s.accountRepo.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if !s.passwordSvc.Verify(account.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hashed
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("%s: subject_id=%s", domain.PasswordChangedEvent, subjectID)
	return nil
}

// DeleteAccount implements domain.ProfileService. Password accounts must
// re-authenticate; social and anonymous accounts need no proof. The profile
// document goes first, then the identity; a failure in either step reports
// failure rather than assuming success.
func (s *ProfileServiceImpl) DeleteAccount(ctx context.Context, subjectID, currentPassword string) error {
	account, err := s.accountRepo.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}

	if account.Provider == domain.ProviderPassword {
		if !s.passwordSvc.Verify(account.PasswordHash, currentPassword) {
			return domain.ErrInvalidCredentials
		}
	}

	if err := s.profileRepo.Delete(ctx, subjectID); err != nil && err != domain.ErrProfileNotFound {
		return fmt.Errorf("failed to delete profile document: %w", err)
	}
	if err := s.accountRepo.Delete(ctx, subjectID); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	// revoke every live session for the subject
	if err := s.sessionRepo.DeleteBySubject(ctx, subjectID); err != nil {
		log.Printf("SESSION_REVOKE_FAILED: subject_id=%s error=%v", subjectID, err)
	}

	log.Printf("%s: subject_id=%s", domain.AccountDeletedEvent, subjectID)
	return nil
}

// SyncProgress implements domain.ProfileService using merge-by-maximum: the
// stored copy never loses an achievement or a best score to a stale client.
func (s *ProfileServiceImpl) SyncProgress(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error {
	profile, err := s.profileRepo.FindBySubject(ctx, subjectID)
	if err != nil {
		return err
	}

	merged := stats
	if existing, ok := profile.Certifications[certID]; ok {
		merged = progress.Merge(existing.Stats, stats)
	}
	return s.profileRepo.SaveProgress(ctx, subjectID, certID, merged)
}
