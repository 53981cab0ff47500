package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID            string         `gorm:"primaryKey;size:64"`
	Email         string         `gorm:"uniqueIndex;size:255"`
	PasswordHash  string         `gorm:"column:password"`
	Provider      string         `gorm:"index;size:32"`
	Role          string         `gorm:"size:32;default:user"`
	EmailVerified bool           `gorm:"index"`
	IsAnonymous   bool           `gorm:"index"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time      `gorm:"index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(account)).Error
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAccount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(account)).Error
}

// Delete implements domain.AccountRepository
func (r *AccountRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// MarkEmailVerified implements domain.AccountRepository
func (r *AccountRepositoryImpl) MarkEmailVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("email_verified", true).Error
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:            account.ID,
		Email:         account.Email,
		PasswordHash:  account.PasswordHash,
		Provider:      string(account.Provider),
		Role:          account.Role,
		EmailVerified: account.EmailVerified,
		IsAnonymous:   account.IsAnonymous,
	}
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:            dbAccount.ID,
		Email:         dbAccount.Email,
		PasswordHash:  dbAccount.PasswordHash,
		Provider:      domain.Provider(dbAccount.Provider),
		Role:          dbAccount.Role,
		EmailVerified: dbAccount.EmailVerified,
		IsAnonymous:   dbAccount.IsAnonymous,
		CreatedAt:     dbAccount.CreatedAt,
		UpdatedAt:     dbAccount.UpdatedAt,
	}
}
