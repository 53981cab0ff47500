package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// Token kinds carried in the "kind" claim. Validation rejects a token
// presented for a purpose it was not minted for.
const (
	tokenKindID           = "id"
	tokenKindCustom       = "custom"
	tokenKindVerification = "verify"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	idTokenTTL      time.Duration
	customTokenTTL  time.Duration
	verificationTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, idTTL, customTTL, verifyTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		idTokenTTL:      idTTL,
		customTokenTTL:  customTTL,
		verificationTTL: verifyTTL,
	}
}

// GenerateIDToken implements domain.TokenService. The ID token doubles as the
// identity assertion embedded in the shared parent-domain cookie.
func (j *JWTServiceImpl) GenerateIDToken(session *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"kind":           tokenKindID,
		"sub":            session.SubjectID,
		"email":          session.Email,
		"email_verified": session.EmailVerified,
		"is_anonymous":   session.IsAnonymous,
		"provider":       string(session.Provider),
		"session_id":     session.ID,
		"iss":            j.issuer,
		"iat":            now.Unix(),
		"exp":            now.Add(j.idTokenTTL).Unix(),
		"jti":            uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateCustomToken implements domain.TokenService. Custom tokens are
// short-lived and single-use; the jti is the redemption latch key.
func (j *JWTServiceImpl) GenerateCustomToken(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"kind": tokenKindCustom,
		"sub":  subjectID,
		"iss":  j.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(j.customTokenTTL).Unix(),
		"jti":  uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateVerificationToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateVerificationToken(subjectID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"kind":  tokenKindVerification,
		"sub":   subjectID,
		"email": email,
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(j.verificationTTL).Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateIDToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateIDToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenKindID)
}

// ValidateCustomToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateCustomToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenKindCustom)
}

// ValidateVerificationToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateVerificationToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenKindVerification)
}

// validateToken validates a JWT token and returns claims
func (j *JWTServiceImpl) validateToken(tokenString, wantKind string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	kind, _ := claims["kind"].(string)
	if kind != wantKind {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	iat, _ := claims["iat"].(float64)

	tokenClaims := &domain.TokenClaims{
		SubjectID: sub,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		tokenClaims.EmailVerified = verified
	}
	if anon, ok := claims["is_anonymous"].(bool); ok {
		tokenClaims.IsAnonymous = anon
	}
	if provider, ok := claims["provider"].(string); ok {
		tokenClaims.Provider = domain.Provider(provider)
	}
	if sessionID, ok := claims["session_id"].(string); ok {
		tokenClaims.SessionID = sessionID
	}
	if jti, ok := claims["jti"].(string); ok {
		tokenClaims.JTI = jti
	}

	return tokenClaims, nil
}
