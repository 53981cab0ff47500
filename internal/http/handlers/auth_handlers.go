package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/bridge"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	identitySvc  domain.IdentityService
	sharedCookie bridge.SharedCookie
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(identitySvc domain.IdentityService, sharedCookie bridge.SharedCookie) *AuthHandlers {
	return &AuthHandlers{
		identitySvc:  identitySvc,
		sharedCookie: sharedCookie,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a verified social-login assertion
type GoogleLoginRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// ResendRequest represents a verification resend request
type ResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailRequest represents an email verification request
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	result, err := h.identitySvc.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch err {
		case domain.ErrEmailAlreadyInUse:
			c.JSON(http.StatusConflict, errorBody(domain.KindConflict, "Email already in use"))
		case domain.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Password must be at least 6 characters"))
		case domain.ErrInvalidEmail:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Malformed email address"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to register"))
		}
		return
	}

	h.propagate(c, result)
	c.JSON(http.StatusCreated, sessionBody(result, "Registered. Please verify your email address."))
}

// Login handles email/password login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	result, err := h.identitySvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Invalid credentials"))
		case domain.ErrEmailNotVerified:
			// the client routes this to the "check your email" state
			c.JSON(http.StatusForbidden, errorBody(domain.KindPermissionDenied, "Email address not verified"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Login failed"))
		}
		return
	}

	h.propagate(c, result)
	c.JSON(http.StatusOK, sessionBody(result, ""))
}

// LoginWithGoogle handles social login with a verified assertion
func (h *AuthHandlers) LoginWithGoogle(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	result, err := h.identitySvc.LoginWithGoogle(c.Request.Context(), domain.GoogleAssertion{
		SubjectID: req.SubjectID,
		Email:     req.Email,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Social login failed"))
		return
	}

	h.propagate(c, result)
	c.JSON(http.StatusOK, sessionBody(result, ""))
}

// LoginAsGuest handles anonymous login
func (h *AuthHandlers) LoginAsGuest(c *gin.Context) {
	result, err := h.identitySvc.LoginAsGuest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Guest login failed"))
		return
	}

	h.propagate(c, result)
	c.JSON(http.StatusOK, sessionBody(result, ""))
}

// ResendVerification handles verification email resend
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	if err := h.identitySvc.ResendVerificationEmail(c.Request.Context(), req.Email); err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, errorBody(domain.KindNotFound, "Account not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to resend verification email"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Verification email sent"}})
}

// VerifyEmail handles email verification
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	if err := h.identitySvc.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		switch err {
		case domain.ErrTokenExpired:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Verification link expired"))
		case domain.ErrTokenInvalid, domain.ErrTokenMalformed:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Invalid verification token"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Verification failed"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Email verified"}})
}

// Me returns the authenticated session (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	session, exists := c.Get("session")
	if !exists {
		c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Session not found in context"))
		return
	}

	s := session.(*domain.Session)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"subject_id":     s.SubjectID,
		"email":          s.Email,
		"email_verified": s.EmailVerified,
		"is_anonymous":   s.IsAnonymous,
		"provider":       s.Provider,
	}})
}

// Logout handles user logout (requires authentication). The shared cookie is
// cleared so sibling subdomains stop auto-recovering this session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Session ID not found"))
		return
	}

	if err := h.identitySvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Logout failed"))
		return
	}

	http.SetCookie(c.Writer, h.sharedCookie.Expire())
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
}

// propagate publishes the fresh identity assertion into the shared
// parent-domain cookie
func (h *AuthHandlers) propagate(c *gin.Context, result *domain.AuthResult) {
	http.SetCookie(c.Writer, h.sharedCookie.Build(result.IDToken))
}

func sessionBody(result *domain.AuthResult, message string) gin.H {
	data := gin.H{
		"id_token":   result.IDToken,
		"token_type": "Bearer",
		"expires_in": result.ExpiresIn,
		"session": gin.H{
			"id":             result.Session.ID,
			"subject_id":     result.Session.SubjectID,
			"email":          result.Session.Email,
			"email_verified": result.Session.EmailVerified,
			"is_anonymous":   result.Session.IsAnonymous,
			"provider":       result.Session.Provider,
		},
	}
	if result.IsNewUser {
		data["is_new_user"] = true
	}
	if message != "" {
		data["message"] = message
	}
	return gin.H{"data": data}
}

func errorBody(kind domain.ErrorKind, message string) gin.H {
	return gin.H{"error": gin.H{"code": string(kind), "message": message}}
}
