package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// ExchangeHandlers handles the cross-domain token exchange surface. The
// endpoints are unauthenticated; every request is independently validated.
type ExchangeHandlers struct {
	exchangeSvc domain.ExchangeService
}

// NewExchangeHandlers creates new exchange handlers
func NewExchangeHandlers(exchangeSvc domain.ExchangeService) *ExchangeHandlers {
	return &ExchangeHandlers{exchangeSvc: exchangeSvc}
}

// ExchangeRequest represents the token exchange input
type ExchangeRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// RedeemRequest represents the credential redemption input
type RedeemRequest struct {
	CustomToken string `json:"custom_token" binding:"required"`
}

// Exchange verifies an identity assertion and mints a one-time custom token
func (h *ExchangeHandlers) Exchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	result, err := h.exchangeSvc.ExchangeToken(c.Request.Context(), req.IDToken)
	if err != nil {
		switch err {
		case domain.ErrTokenMalformed:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Malformed identity token"))
		case domain.ErrTokenExpired, domain.ErrTokenRevoked, domain.ErrTokenInvalid:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Identity token expired or revoked"))
		case domain.ErrExchangeDenied:
			c.JSON(http.StatusForbidden, errorBody(domain.KindPermissionDenied, "Email must be verified for cross-domain sign-in"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Token exchange failed"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"custom_token": result.CustomToken,
		"expires_in":   result.ExpiresIn,
	})
}

// Redeem establishes a session from a custom token, exactly once per token
func (h *ExchangeHandlers) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	result, err := h.exchangeSvc.RedeemCustomToken(c.Request.Context(), req.CustomToken)
	if err != nil {
		switch err {
		case domain.ErrTokenMalformed:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Malformed custom token"))
		case domain.ErrTokenExpired, domain.ErrTokenInvalid, domain.ErrTokenRevoked, domain.ErrCredentialConsumed:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Custom token expired or already redeemed"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Redemption failed"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id_token":   result.IDToken,
		"expires_in": result.ExpiresIn,
		"session": gin.H{
			"id":             result.Session.ID,
			"subject_id":     result.Session.SubjectID,
			"email":          result.Session.Email,
			"email_verified": result.Session.EmailVerified,
			"is_anonymous":   result.Session.IsAnonymous,
			"provider":       result.Session.Provider,
		},
	})
}
