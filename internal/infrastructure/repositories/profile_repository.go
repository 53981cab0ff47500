package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using GORM. The
// profile is stored document-style: avatar and per-certification progress are
// JSON columns keyed by subject id.
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// DBProfile represents the database model for Profile
type DBProfile struct {
	SubjectID      string    `gorm:"primaryKey;size:64"`
	DisplayName    string    `gorm:"size:255"`
	Avatar         []byte    `gorm:"type:jsonb"`
	IsGuest        bool      `gorm:"index"`
	Certifications []byte    `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBProfile) TableName() string {
	return "profiles"
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// Create implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	dbProfile, err := r.domainToDB(profile)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(dbProfile).Error
}

// FindBySubject implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindBySubject(ctx context.Context, subjectID string) (*domain.Profile, error) {
	var dbProfile DBProfile
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&dbProfile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProfile)
}

// Update implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	dbProfile, err := r.domainToDB(profile)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(dbProfile).Error
}

// Delete implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Delete(ctx context.Context, subjectID string) error {
	result := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Delete(&DBProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// SaveProgress implements domain.ProfileRepository. It replaces the stored
// stats for one certification; merge policy is the caller's concern.
func (r *ProfileRepositoryImpl) SaveProgress(ctx context.Context, subjectID, certID string, stats domain.ProgressStats) error {
	profile, err := r.FindBySubject(ctx, subjectID)
	if err != nil {
		return err
	}

	if profile.Certifications == nil {
		profile.Certifications = make(map[string]domain.CertificationProgress)
	}
	profile.Certifications[certID] = domain.CertificationProgress{
		Stats:     stats,
		UpdatedAt: time.Now().UTC(),
	}

	return r.Update(ctx, profile)
}

// domainToDB converts domain profile to database profile
func (r *ProfileRepositoryImpl) domainToDB(profile *domain.Profile) (*DBProfile, error) {
	avatar, err := json.Marshal(profile.Avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal avatar: %w", err)
	}

	certs := profile.Certifications
	if certs == nil {
		certs = make(map[string]domain.CertificationProgress)
	}
	certifications, err := json.Marshal(certs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal certifications: %w", err)
	}

	return &DBProfile{
		SubjectID:      profile.SubjectID,
		DisplayName:    profile.DisplayName,
		Avatar:         avatar,
		IsGuest:        profile.IsGuest,
		Certifications: certifications,
	}, nil
}

// dbToDomain converts database profile to domain profile
func (r *ProfileRepositoryImpl) dbToDomain(dbProfile *DBProfile) (*domain.Profile, error) {
	profile := &domain.Profile{
		SubjectID:      dbProfile.SubjectID,
		DisplayName:    dbProfile.DisplayName,
		IsGuest:        dbProfile.IsGuest,
		CreatedAt:      dbProfile.CreatedAt,
		Certifications: make(map[string]domain.CertificationProgress),
	}

	if len(dbProfile.Avatar) > 0 {
		if err := json.Unmarshal(dbProfile.Avatar, &profile.Avatar); err != nil {
			return nil, fmt.Errorf("failed to unmarshal avatar: %w", err)
		}
	}
	if len(dbProfile.Certifications) > 0 {
		if err := json.Unmarshal(dbProfile.Certifications, &profile.Certifications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal certifications: %w", err)
		}
	}

	return profile, nil
}
