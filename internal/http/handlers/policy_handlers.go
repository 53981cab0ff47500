package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// PolicyHandlers exposes the authorization policy admin surface
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

// PolicyRequest represents a policy add/remove request
type PolicyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List returns every policy rule
func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policySvc.GetPolicies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to load policies"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"policies": policies}})
}

// Add inserts a policy rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to add policy"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"message": "Policy added"}})
}

// Remove deletes a policy rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(domain.KindInvalidArgument, err.Error()))
		return
	}

	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Failed to remove policy"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Policy removed"}})
}
