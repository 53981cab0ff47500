package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// ExchangeServiceImpl implements domain.ExchangeService. Every call is
// validated independently; the service keeps no state between calls.
type ExchangeServiceImpl struct {
	accountRepo    domain.AccountRepository
	sessionRepo    domain.SessionRepository
	credentialRepo domain.CredentialRepository
	tokenSvc       domain.TokenService
	sessionTTL     time.Duration
	customTTL      time.Duration
}

// NewExchangeService creates a new token exchange service
func NewExchangeService(
	accountRepo domain.AccountRepository,
	sessionRepo domain.SessionRepository,
	credentialRepo domain.CredentialRepository,
	tokenSvc domain.TokenService,
	sessionTTL, customTTL time.Duration,
) domain.ExchangeService {
	return &ExchangeServiceImpl{
		accountRepo:    accountRepo,
		sessionRepo:    sessionRepo,
		credentialRepo: credentialRepo,
		tokenSvc:       tokenSvc,
		sessionTTL:     sessionTTL,
		customTTL:      customTTL,
	}
}

// ExchangeToken implements domain.ExchangeService. It verifies the identity
// assertion and mints a short-lived one-time custom credential for the same
// subject. The subject's email must be verified, or the account anonymous.
// The original precondition had an operator-precedence bug that made the
// anonymous exemption unreachable; here the exemption is explicit.
func (s *ExchangeServiceImpl) ExchangeToken(ctx context.Context, idToken string) (*domain.ExchangeResult, error) {
	claims, err := s.tokenSvc.ValidateIDToken(idToken)
	if err != nil {
		return nil, err
	}

	// revocation check: the session embedded in the assertion must still live
	if claims.SessionID != "" {
		if _, err := s.sessionRepo.FindByID(ctx, claims.SessionID); err != nil {
			return nil, domain.ErrTokenRevoked
		}
	}

	account, err := s.accountRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, domain.ErrTokenRevoked
	}

	if !account.EmailVerified && !account.IsAnonymous {
		s.audit(domain.NewAuditEvent(domain.TokenExchangeDeniedEvent, account.ID).WithEmail(account.Email).WithError(domain.ErrExchangeDenied))
		return nil, domain.ErrExchangeDenied
	}

	customToken, err := s.tokenSvc.GenerateCustomToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mint custom token: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.TokenExchangedEvent, account.ID).WithSession(claims.SessionID))
	return &domain.ExchangeResult{
		CustomToken: customToken,
		ExpiresIn:   int64(s.customTTL.Seconds()),
	}, nil
}

// RedeemCustomToken implements domain.ExchangeService. Redemption is
// exactly-once: a second presentation of the same credential fails even if
// the token itself has not yet expired.
func (s *ExchangeServiceImpl) RedeemCustomToken(ctx context.Context, customToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateCustomToken(customToken)
	if err != nil {
		return nil, err
	}

	first, err := s.credentialRepo.MarkRedeemed(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}
	if !first {
		return nil, domain.ErrCredentialConsumed
	}

	account, err := s.accountRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, domain.ErrTokenRevoked
	}

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
		ExpiresAt:     now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	idToken, err := s.tokenSvc.GenerateIDToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID token: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.CredentialRedeemedEvent, account.ID).WithSession(session.ID).WithMetadata("jti", claims.JTI))
	return &domain.AuthResult{
		Session:   session,
		IDToken:   idToken,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

func (s *ExchangeServiceImpl) audit(event *domain.AuditEvent) {
	log.Printf("%s: subject_id=%s session_id=%s success=%t error=%q",
		event.EventType, event.SubjectID, event.SessionID, event.Success, event.ErrorMsg)
}
