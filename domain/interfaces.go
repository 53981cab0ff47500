package domain

import "context"

// AccountRepository defines identity record data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
	MarkEmailVerified(ctx context.Context, id string) error
}

// ProfileRepository defines profile document data access operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	FindBySubject(ctx context.Context, subjectID string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, subjectID string) error
	SaveProgress(ctx context.Context, subjectID, certID string, stats ProgressStats) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteBySubject(ctx context.Context, subjectID string) error
}

// CredentialRepository tracks one-time redemption of custom credentials
type CredentialRepository interface {
	// MarkRedeemed records jti as redeemed and reports whether this call was
	// the first redemption.
	MarkRedeemed(ctx context.Context, jti string) (bool, error)
}

// IdentityService defines the identity provider operations
type IdentityService interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, assertion GoogleAssertion) (*AuthResult, error)
	LoginAsGuest(ctx context.Context) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	ResendVerificationEmail(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
	Subscribe() (<-chan AuthEvent, func())
}

// GoogleAssertion is a verified social-login assertion. Verification of the
// upstream signature happens before this value is constructed.
type GoogleAssertion struct {
	SubjectID string
	Email     string
}

// ExchangeService defines the cross-domain token exchange operations
type ExchangeService interface {
	ExchangeToken(ctx context.Context, idToken string) (*ExchangeResult, error)
	RedeemCustomToken(ctx context.Context, customToken string) (*AuthResult, error)
}

// ProfileService defines the session/profile store operations
type ProfileService interface {
	MergedProfile(ctx context.Context, session *Session) (*MergedProfile, error)
	ChangeDisplayName(ctx context.Context, subjectID, displayName string) error
	UpdateAvatar(ctx context.Context, subjectID string, avatar Avatar) error
	ChangePassword(ctx context.Context, subjectID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, subjectID, currentPassword string) error
	SyncProgress(ctx context.Context, subjectID, certID string, stats ProgressStats) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateIDToken(session *Session) (string, error)
	GenerateCustomToken(subjectID string) (string, error)
	GenerateVerificationToken(subjectID, email string) (string, error)
	ValidateIDToken(token string) (*TokenClaims, error)
	ValidateCustomToken(token string) (*TokenClaims, error)
	ValidateVerificationToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	SubjectID     string   `json:"sub"`
	Email         string   `json:"email,omitempty"`
	EmailVerified bool     `json:"email_verified"`
	IsAnonymous   bool     `json:"is_anonymous"`
	Provider      Provider `json:"provider,omitempty"`
	SessionID     string   `json:"session_id,omitempty"`
	JTI           string   `json:"jti,omitempty"`
	IssuedAt      int64    `json:"iat"`
	ExpiresAt     int64    `json:"exp"`
}

// NotificationService defines outbound notification operations
type NotificationService interface {
	SendVerificationEmail(to, verifyLink string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() ([][]string, error)
}

// CasbinEnforcer defines the methods we need from the Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// ProgressStore defines client-local durable persistence for study progress
type ProgressStore interface {
	LoadStats(certID string) ProgressStats
	SaveStats(certID string, stats ProgressStats) error
	LoadFlashcards(certID string) FlashcardProgress
	SaveFlashcards(certID string, progress FlashcardProgress) error
	AnalyticsOptOut() bool
	SetAnalyticsOptOut(optOut bool) error
}
