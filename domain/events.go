package domain

import "time"

// AuthState is the coarse session state carried by auth events
type AuthState string

const (
	StateSignedIn  AuthState = "SIGNED_IN"
	StateSignedOut AuthState = "SIGNED_OUT"
)

// AuthEvent is delivered to auth-state subscribers in the order the identity
// service observed the transitions. Session is nil when State is SIGNED_OUT.
type AuthEvent struct {
	State   AuthState
	Session *Session
}

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Registration and verification events
	UserRegisteredEvent     AuditEventType = "USER_REGISTERED"
	EmailVerifiedEvent      AuditEventType = "EMAIL_VERIFIED"
	VerificationResentEvent AuditEventType = "VERIFICATION_RESENT"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	GuestLoginEvent       AuditEventType = "GUEST_LOGIN"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Cross-domain events
	TokenExchangedEvent      AuditEventType = "TOKEN_EXCHANGED"
	TokenExchangeDeniedEvent AuditEventType = "TOKEN_EXCHANGE_DENIED"
	CredentialRedeemedEvent  AuditEventType = "CREDENTIAL_REDEEMED"
	SessionRecoveredEvent    AuditEventType = "SESSION_RECOVERED"
	RecoveryFailedEvent      AuditEventType = "RECOVERY_FAILED"

	// Account lifecycle events
	AccountDeletedEvent  AuditEventType = "ACCOUNT_DELETED"
	PasswordChangedEvent AuditEventType = "PASSWORD_CHANGED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	SubjectID string                 `json:"subject_id"`
	Email     string                 `json:"email,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, subjectID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithSession sets the session field
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
