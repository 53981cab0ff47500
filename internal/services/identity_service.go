package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IdentityConfig carries identity service tunables
type IdentityConfig struct {
	SessionTTL    time.Duration
	VerifyBaseURL string
}

// IdentityServiceImpl implements domain.IdentityService
type IdentityServiceImpl struct {
	accountRepo domain.AccountRepository
	profileRepo domain.ProfileRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	notifySvc   domain.NotificationService
	config      IdentityConfig

	mu          sync.Mutex
	subscribers map[int]chan domain.AuthEvent
	nextSubID   int
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	accountRepo domain.AccountRepository,
	profileRepo domain.ProfileRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notifySvc domain.NotificationService,
	config IdentityConfig,
) domain.IdentityService {
	return &IdentityServiceImpl{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		notifySvc:   notifySvc,
		config:      config,
		subscribers: make(map[int]chan domain.AuthEvent),
	}
}

// Register implements domain.IdentityService
func (s *IdentityServiceImpl) Register(ctx context.Context, email, password, displayName string) (*domain.AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyInUse
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Provider:     domain.ProviderPassword,
		Role:         domain.RoleUser,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	avatarName := displayName
	if avatarName == "" {
		avatarName = domain.DisplayNameFor(nil, &domain.Session{Email: email})
	}
	profile := &domain.Profile{
		SubjectID:   account.ID,
		DisplayName: displayName,
		Avatar:      domain.InitialsAvatar(avatarName),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.sendVerification(account); err != nil {
		// the account exists; the user can request a resend
		log.Printf("VERIFICATION_SEND_FAILED: subject_id=%s email=%s error=%v", account.ID, email, err)
	}

	result, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	s.audit(domain.NewAuditEvent(domain.UserRegisteredEvent, account.ID).WithEmail(email))
	return result, nil
}

// Login implements domain.IdentityService
func (s *IdentityServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.audit(domain.NewAuditEvent(domain.UserLoginFailureEvent, account.ID).WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	// password accounts must verify their email before getting a session;
	// social and anonymous accounts are exempt
	if account.Provider == domain.ProviderPassword && !account.EmailVerified && !account.IsAnonymous {
		return nil, domain.ErrEmailNotVerified
	}

	result, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	s.audit(domain.NewAuditEvent(domain.UserLoginEvent, account.ID).WithEmail(email).WithSession(result.Session.ID))
	return result, nil
}

// LoginWithGoogle implements domain.IdentityService. The assertion has already
// been verified against the upstream provider.
func (s *IdentityServiceImpl) LoginWithGoogle(ctx context.Context, assertion domain.GoogleAssertion) (*domain.AuthResult, error) {
	if !emailPattern.MatchString(assertion.Email) {
		return nil, domain.ErrInvalidEmail
	}

	isNewUser := false
	account, err := s.accountRepo.FindByEmail(ctx, assertion.Email)
	if err != nil {
		account = &domain.Account{
			ID:            uuid.NewString(),
			Email:         assertion.Email,
			Provider:      domain.ProviderGoogle,
			Role:          domain.RoleUser,
			EmailVerified: true, // Google accounts arrive verified
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		profile := &domain.Profile{
			SubjectID:   account.ID,
			DisplayName: domain.DisplayNameFor(nil, &domain.Session{Email: assertion.Email}),
		}
		profile.Avatar = domain.InitialsAvatar(profile.DisplayName)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		isNewUser = true
	}

	result, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	result.IsNewUser = isNewUser

	s.audit(domain.NewAuditEvent(domain.UserLoginEvent, account.ID).WithEmail(account.Email).WithSession(result.Session.ID).WithMetadata("provider", "google"))
	return result, nil
}

// LoginAsGuest implements domain.IdentityService
func (s *IdentityServiceImpl) LoginAsGuest(ctx context.Context) (*domain.AuthResult, error) {
	account := &domain.Account{
		ID:          uuid.NewString(),
		Provider:    domain.ProviderAnonymous,
		Role:        domain.RoleAnonymous,
		IsAnonymous: true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create guest account: %w", err)
	}

	profile := &domain.Profile{
		SubjectID:   account.ID,
		DisplayName: "Guest-" + account.ID[:8],
		IsGuest:     true,
		Avatar:      domain.DefaultAvatar(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create guest profile: %w", err)
	}

	result, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	s.audit(domain.NewAuditEvent(domain.GuestLoginEvent, account.ID).WithSession(result.Session.ID))
	return result, nil
}

// Logout implements domain.IdentityService
func (s *IdentityServiceImpl) Logout(ctx context.Context, sessionID string) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.audit(domain.NewAuditEvent(domain.UserLogoutEvent, session.SubjectID).WithSession(sessionID))
	s.publish(domain.AuthEvent{State: domain.StateSignedOut})
	return nil
}

// ResendVerificationEmail implements domain.IdentityService
func (s *IdentityServiceImpl) ResendVerificationEmail(ctx context.Context, email string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return nil
	}

	if err := s.sendVerification(account); err != nil {
		return err
	}
	s.audit(domain.NewAuditEvent(domain.VerificationResentEvent, account.ID).WithEmail(email))
	return nil
}

// VerifyEmail implements domain.IdentityService
func (s *IdentityServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokenSvc.ValidateVerificationToken(token)
	if err != nil {
		return err
	}

	if err := s.accountRepo.MarkEmailVerified(ctx, claims.SubjectID); err != nil {
		return err
	}
	s.audit(domain.NewAuditEvent(domain.EmailVerifiedEvent, claims.SubjectID).WithEmail(claims.Email))
	return nil
}

// Subscribe implements domain.IdentityService. Events arrive in the order the
// service observed them; the returned func unregisters the subscriber.
func (s *IdentityServiceImpl) Subscribe() (<-chan domain.AuthEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.AuthEvent, 16)
	s.subscribers[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// issueSession creates a session, its ID token, and broadcasts the sign-in
func (s *IdentityServiceImpl) issueSession(ctx context.Context, account *domain.Account) (*domain.AuthResult, error) {
	now := time.Now()
	session := &domain.Session{
		ID:            "sess_" + uuid.NewString(),
		SubjectID:     account.ID,
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
		IsAnonymous:   account.IsAnonymous,
		Provider:      account.Provider,
		Role:          account.SessionRole(),
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.config.SessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	idToken, err := s.tokenSvc.GenerateIDToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID token: %w", err)
	}

	s.publish(domain.AuthEvent{State: domain.StateSignedIn, Session: session})

	return &domain.AuthResult{
		Session:   session,
		IDToken:   idToken,
		ExpiresIn: int64(s.config.SessionTTL.Seconds()),
	}, nil
}

func (s *IdentityServiceImpl) sendVerification(account *domain.Account) error {
	token, err := s.tokenSvc.GenerateVerificationToken(account.ID, account.Email)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	link := fmt.Sprintf("%s?token=%s", s.config.VerifyBaseURL, token)
	return s.notifySvc.SendVerificationEmail(account.Email, link)
}

// publish delivers an event to every subscriber without blocking the caller.
// A subscriber that stops draining loses events rather than stalling logins.
func (s *IdentityServiceImpl) publish(event domain.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("AUTH_EVENT_DROPPED: subscriber=%d state=%s", id, event.State)
		}
	}
}

func (s *IdentityServiceImpl) audit(event *domain.AuditEvent) {
	log.Printf("%s: subject_id=%s email=%s session_id=%s success=%t error=%q",
		event.EventType, event.SubjectID, event.Email, event.SessionID, event.Success, event.ErrorMsg)
}
