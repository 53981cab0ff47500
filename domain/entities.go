package domain

import (
	"strings"
	"time"
)

// Provider identifies how an account authenticates
type Provider string

const (
	ProviderPassword  Provider = "password"
	ProviderGoogle    Provider = "google"
	ProviderAnonymous Provider = "anonymous"
)

// Account roles. Admin is granted operationally, never through a signup path.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleAnonymous = "anonymous"
)

// Account represents an identity record in the system of record
type Account struct {
	ID            string // subject id, uuid
	Email         string
	PasswordHash  string `gorm:"column:password"`
	Provider      Provider
	Role          string
	EmailVerified bool
	IsAnonymous   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionRole returns the authorization role sessions of this account carry
func (a *Account) SessionRole() string {
	if a.Role != "" {
		return a.Role
	}
	if a.IsAnonymous {
		return RoleAnonymous
	}
	return RoleUser
}

// Session represents an authenticated session on one subdomain
type Session struct {
	ID            string    `json:"id"`
	SubjectID     string    `json:"subject_id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	IsAnonymous   bool      `json:"is_anonymous"`
	Provider      Provider  `json:"provider"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	Session   *Session
	IDToken   string
	IsNewUser bool
	ExpiresIn int64
}

// ExchangeResult carries the one-time credential minted by the token exchange
type ExchangeResult struct {
	CustomToken string
	ExpiresIn   int64
}

// AvatarKind discriminates the avatar variants
type AvatarKind string

const (
	AvatarEmoji    AvatarKind = "emoji"
	AvatarPattern  AvatarKind = "pattern"
	AvatarImage    AvatarKind = "image"
	AvatarInitials AvatarKind = "initials"
)

// Avatar is a tagged union over the supported avatar variants. Value carries
// the emoji rune, pattern name, image URL, or initials string depending on Kind.
type Avatar struct {
	Kind            AvatarKind `json:"kind"`
	Value           string     `json:"value,omitempty"`
	BackgroundColor string     `json:"background_color,omitempty"`
}

// Validate checks the union invariants for each variant
func (a Avatar) Validate() error {
	switch a.Kind {
	case AvatarEmoji, AvatarPattern, AvatarImage:
		if a.Value == "" {
			return ErrInvalidAvatar
		}
		return nil
	case AvatarInitials:
		// initials are re-derivable from the display name, empty is allowed
		return nil
	default:
		return ErrInvalidAvatar
	}
}

// InitialsAvatar derives an initials avatar from a display name
func InitialsAvatar(displayName string) Avatar {
	var initials strings.Builder
	for _, part := range strings.Fields(displayName) {
		if initials.Len() >= 2 {
			break
		}
		initials.WriteString(strings.ToUpper(part[:1]))
	}
	if initials.Len() == 0 {
		initials.WriteString("?")
	}
	return Avatar{Kind: AvatarInitials, Value: initials.String()}
}

// DefaultAvatar is the last fallback in the avatar resolution chain
func DefaultAvatar() Avatar {
	return Avatar{Kind: AvatarInitials, Value: "?"}
}

// Profile represents the per-subject profile document
type Profile struct {
	SubjectID      string
	DisplayName    string
	Avatar         Avatar
	IsGuest        bool
	CreatedAt      time.Time
	Certifications map[string]CertificationProgress
}

// CertificationProgress is the server copy of progress for one certification track
type CertificationProgress struct {
	Stats     ProgressStats `json:"stats"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DomainProgress tracks completion for one exam domain within a certification
type DomainProgress struct {
	Completed int     `json:"completed"`
	BestScore float64 `json:"best_score"`
}

// ProgressStats is the per-device, per-certification study progress state.
// Invariants: Level == XP/100 + 1, MaxStreak >= CurrentStreak, best scores
// in [0,1], UnlockedAchievements only grows.
type ProgressStats struct {
	TotalAnswered        int                       `json:"total_answered"`
	TotalCorrect         int                       `json:"total_correct"`
	CurrentStreak        int                       `json:"current_streak"`
	MaxStreak            int                       `json:"max_streak"`
	XP                   int                       `json:"xp"`
	Level                int                       `json:"level"`
	DomainProgress       map[string]DomainProgress `json:"domain_progress"`
	UnlockedAchievements []string                  `json:"unlocked_achievements"`
	TotalSessions        int                       `json:"total_sessions"`
	FastAnswers          int                       `json:"fast_answers"`
	PerfectDomains       int                       `json:"perfect_domains"`
}

// HasAchievement reports whether id is already unlocked
func (s ProgressStats) HasAchievement(id string) bool {
	for _, got := range s.UnlockedAchievements {
		if got == id {
			return true
		}
	}
	return false
}

// FlashcardProgress is the flashcard-specific local progress blob
type FlashcardProgress struct {
	CardsStudied  int                `json:"cards_studied"`
	CardsKnown    []string           `json:"cards_known"`
	CardsLearning []string           `json:"cards_learning"`
	DeckProgress  map[string]float64 `json:"deck_progress"`
}

// MergedProfile is the unified read model exposed to the UI layer: session
// identity plus profile document, with fallbacks already resolved.
type MergedProfile struct {
	SubjectID     string
	Email         string
	EmailVerified bool
	IsGuest       bool
	DisplayName   string
	Avatar        Avatar
}

// DisplayNameFor resolves the display-name fallback chain: profile name,
// email-derived name, generic placeholder.
func DisplayNameFor(profile *Profile, session *Session) string {
	if profile != nil && profile.DisplayName != "" {
		return profile.DisplayName
	}
	if session != nil && session.Email != "" {
		if at := strings.IndexByte(session.Email, '@'); at > 0 {
			return session.Email[:at]
		}
		return session.Email
	}
	return "Student"
}

// AvatarFor resolves the avatar fallback chain: explicit config, derived
// initials, default.
func AvatarFor(profile *Profile, displayName string) Avatar {
	if profile != nil && profile.Avatar.Validate() == nil {
		if profile.Avatar.Kind != AvatarInitials || profile.Avatar.Value != "" {
			return profile.Avatar
		}
	}
	if displayName != "" && displayName != "Student" {
		return InitialsAvatar(displayName)
	}
	return DefaultAvatar()
}
