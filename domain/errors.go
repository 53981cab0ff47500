package domain

import "errors"

// Authentication errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrSamePassword       = errors.New("new password must differ from current password")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrInvalidEmail       = errors.New("malformed email address")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Token exchange errors
var (
	ErrExchangeDenied     = errors.New("subject not eligible for cross-domain exchange")
	ErrCredentialConsumed = errors.New("custom credential already redeemed")
	ErrOriginNotAllowed   = errors.New("origin not in allow-list")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidAvatar   = errors.New("invalid avatar configuration")
	ErrEmptyName       = errors.New("display name must not be empty")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// ErrorKind is the structured error code surfaced on the wire
type ErrorKind string

const (
	KindInvalidArgument  ErrorKind = "invalid-argument"
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindPermissionDenied ErrorKind = "permission-denied"
	KindNotFound         ErrorKind = "not-found"
	KindConflict         ErrorKind = "conflict"
	KindInternal         ErrorKind = "internal"
)

// KindOf normalizes a sentinel error to its wire kind. Unknown errors map to
// internal so provider faults never leak detail to clients.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrCredentialConsumed),
		errors.Is(err, ErrTokenInvalid):
		return KindUnauthenticated
	case errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrSamePassword),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidAvatar),
		errors.Is(err, ErrEmptyName):
		return KindInvalidArgument
	case errors.Is(err, ErrExchangeDenied),
		errors.Is(err, ErrEmailNotVerified),
		errors.Is(err, ErrOriginNotAllowed),
		errors.Is(err, ErrInsufficientRole),
		errors.Is(err, ErrUnauthorized):
		return KindPermissionDenied
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrProfileNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmailAlreadyInUse):
		return KindConflict
	default:
		return KindInternal
	}
}
