package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// ProfileHandlers handles profile and progress HTTP requests
type ProfileHandlers struct {
	profileSvc domain.ProfileService
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(profileSvc domain.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

// DisplayNameRequest represents a rename request
type DisplayNameRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// AvatarRequest represents an avatar update request
type AvatarRequest struct {
	Kind            string `json:"kind" binding:"required"`
	Value           string `json:"value,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// PasswordChangeRequest represents a password change request
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// DeleteAccountRequest represents an account deletion request. Password is
// optional for social and anonymous accounts.
type DeleteAccountRequest struct {
	Password string `json:"password,omitempty"`
}

// ProgressSyncRequest represents a progress sync request
type ProgressSyncRequest struct {
	CertID string               `json:"cert_id" binding:"required"`
	Stats  domain.ProgressStats `json:"stats" binding:"required"`
}

// Me returns the merged profile read model for the authenticated session
func (h *ProfileHandlers) Me(c *gin.Context) {
	session := c.MustGet("session").(*domain.Session)

	merged, err := h.profileSvc.MergedProfile(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to load profile"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"subject_id":     merged.SubjectID,
		"email":          merged.Email,
		"email_verified": merged.EmailVerified,
		"is_guest":       merged.IsGuest,
		"display_name":   merged.DisplayName,
		"avatar":         merged.Avatar,
	}})
}

// ChangeDisplayName renames the authenticated subject
func (h *ProfileHandlers) ChangeDisplayName(c *gin.Context) {
	var req DisplayNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	subjectID := c.MustGet("subject_id").(string)
	if err := h.profileSvc.ChangeDisplayName(c.Request.Context(), subjectID, req.DisplayName); err != nil {
		switch err {
		case domain.ErrEmptyName:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Display name must not be empty"))
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, errorBody(domain.KindNotFound, "Profile not found"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to change display name"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Display name updated"}})
}

// UpdateAvatar replaces the authenticated subject's avatar
func (h *ProfileHandlers) UpdateAvatar(c *gin.Context) {
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	subjectID := c.MustGet("subject_id").(string)
	avatar := domain.Avatar{
		Kind:            domain.AvatarKind(req.Kind),
		Value:           req.Value,
		BackgroundColor: req.BackgroundColor,
	}
	if err := h.profileSvc.UpdateAvatar(c.Request.Context(), subjectID, avatar); err != nil {
		switch err {
		case domain.ErrInvalidAvatar:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Invalid avatar configuration"))
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, errorBody(domain.KindNotFound, "Profile not found"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to update avatar"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Avatar updated"}})
}

// ChangePassword rotates the authenticated subject's password after re-auth
func (h *ProfileHandlers) ChangePassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	subjectID := c.MustGet("subject_id").(string)
	if err := h.profileSvc.ChangePassword(c.Request.Context(), subjectID, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case domain.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "Password must be at least 6 characters"))
		case domain.ErrSamePassword:
			c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, "New password must differ from current password"))
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Current password incorrect"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to change password"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password changed"}})
}

// DeleteAccount removes the subject's profile document and identity
func (h *ProfileHandlers) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	subjectID := c.MustGet("subject_id").(string)
	if err := h.profileSvc.DeleteAccount(c.Request.Context(), subjectID, req.Password); err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Password incorrect"))
		case domain.ErrAccountNotFound:
			c.JSON(http.StatusNotFound, errorBody(domain.KindNotFound, "Account not found"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to delete account"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Account deleted"}})
}

// SyncProgress merges client stats into the server copy by per-field maximum
func (h *ProfileHandlers) SyncProgress(c *gin.Context) {
	var req ProgressSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	subjectID := c.MustGet("subject_id").(string)
	if err := h.profileSvc.SyncProgress(c.Request.Context(), subjectID, req.CertID, req.Stats); err != nil {
		switch err {
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, errorBody(domain.KindNotFound, "Profile not found"))
		default:
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to sync progress"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Progress synced"}})
}
