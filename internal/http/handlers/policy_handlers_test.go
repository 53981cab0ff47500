package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/mocks"
)

func newPolicyTestRouter(policySvc *mocks.MockPolicyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPolicyHandlers(policySvc)
	r := gin.New()
	r.GET("/admin/policies", h.List)
	r.POST("/admin/policies", h.Add)
	r.DELETE("/admin/policies", h.Remove)
	return r
}

func TestPolicyHandlers_List(t *testing.T) {
	r := newPolicyTestRouter(mocks.NewMockPolicyService())

	req := httptest.NewRequest(http.MethodGet, "/admin/policies", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Data struct {
			Policies [][]string `json:"policies"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Data.Policies) != 3 {
		t.Errorf("expected 3 policies, got %v", body.Data.Policies)
	}
}

func TestPolicyHandlers_ListEnforcerFailure(t *testing.T) {
	policySvc := mocks.NewMockPolicyService()
	policySvc.GetPoliciesFunc = func() ([][]string, error) {
		return nil, errors.New("adapter down")
	}
	r := newPolicyTestRouter(policySvc)

	req := httptest.NewRequest(http.MethodGet, "/admin/policies", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if got := wireErrorCode(t, w); got != "internal" {
		t.Errorf("expected internal error code, got %q", got)
	}
}

func TestPolicyHandlers_AddAndRemove(t *testing.T) {
	var added, removed [3]string
	policySvc := mocks.NewMockPolicyService()
	policySvc.AddPolicyFunc = func(role, resource, action string) error {
		added = [3]string{role, resource, action}
		return nil
	}
	policySvc.RemovePolicyFunc = func(role, resource, action string) error {
		removed = [3]string{role, resource, action}
		return nil
	}
	r := newPolicyTestRouter(policySvc)

	w := postJSON(t, r, "/admin/policies", map[string]string{
		"role":     "role_admin",
		"resource": "/admin/reports",
		"action":   "GET",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if added != [3]string{"role_admin", "/admin/reports", "GET"} {
		t.Errorf("unexpected add arguments %v", added)
	}

	payload, _ := json.Marshal(map[string]string{
		"role":     "role_admin",
		"resource": "/admin/reports",
		"action":   "GET",
	})
	req := httptest.NewRequest(http.MethodDelete, "/admin/policies", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if removed != [3]string{"role_admin", "/admin/reports", "GET"} {
		t.Errorf("unexpected remove arguments %v", removed)
	}
}

func TestPolicyHandlers_AddRejectsIncompleteRule(t *testing.T) {
	r := newPolicyTestRouter(mocks.NewMockPolicyService())

	w := postJSON(t, r, "/admin/policies", map[string]string{"role": "role_admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := wireErrorCode(t, w); got != "invalid-argument" {
		t.Errorf("expected invalid-argument error code, got %q", got)
	}
}
