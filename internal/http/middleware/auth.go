package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// AuthMW wraps the token service and session repository for middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
	}
}

// WithIDToken validates the bearer ID token, confirms the embedded session is
// still live, and stores the subject identity in the request context
func (mw *AuthMW) WithIDToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Authorization header required"))
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := mw.tokenSvc.ValidateIDToken(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Token expired"))
			default:
				c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Invalid token"))
			}
			c.Abort()
			return
		}

		// a deleted or logged-out session invalidates the token immediately
		session, err := mw.sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || session == nil {
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Session invalid or expired"))
			c.Abort()
			return
		}
		if session.SubjectID != claims.SubjectID {
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Session subject mismatch"))
			c.Abort()
			return
		}

		c.Set("subject_id", claims.SubjectID)
		c.Set("session_id", claims.SessionID)
		c.Set("session", session)

		// the role is fixed at session issue time from the account record;
		// older sessions without one fall back to the anonymous/user split
		role := session.Role
		if role == "" {
			role = domain.RoleUser
			if session.IsAnonymous {
				role = domain.RoleAnonymous
			}
		}
		c.Set("user_role", role)

		c.Next()
	}
}

func errorBody(kind domain.ErrorKind, message string) gin.H {
	return gin.H{"error": gin.H{"code": string(kind), "message": message}}
}
