package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

func TestClient_ExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token/exchange" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Origin"); got != "https://quiz.example.com" {
			t.Errorf("missing origin header, got %q", got)
		}
		var req exchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.IDToken != "parent-id-token" {
			t.Errorf("unexpected id token %q", req.IDToken)
		}
		json.NewEncoder(w).Encode(exchangeResponse{CustomToken: "custom-token", ExpiresIn: 300})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://quiz.example.com", time.Second)
	result, err := client.ExchangeToken(context.Background(), "parent-id-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CustomToken != "custom-token" || result.ExpiresIn != 300 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestClient_RedeemCustomToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token/redeem" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(redeemResponse{
			IDToken:   "fresh-id-token",
			ExpiresIn: 3600,
			Session:   &domain.Session{ID: "sess_1", SubjectID: "subject-1"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	result, err := client.RedeemCustomToken(context.Background(), "custom-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IDToken != "fresh-id-token" || result.Session.ID != "sess_1" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestClient_MapsWireErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     string
		expected error
	}{
		{name: "permission denied", status: http.StatusForbidden, code: "permission-denied", expected: domain.ErrExchangeDenied},
		{name: "unauthenticated", status: http.StatusUnauthorized, code: "unauthenticated", expected: domain.ErrTokenExpired},
		{name: "invalid argument", status: http.StatusBadRequest, code: "invalid-argument", expected: domain.ErrTokenMalformed},
		{name: "not found", status: http.StatusNotFound, code: "not-found", expected: domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				var body errorResponse
				body.Error.Code = tt.code
				body.Error.Message = "denied"
				json.NewEncoder(w).Encode(body)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "", time.Second)
			_, err := client.ExchangeToken(context.Background(), "whatever")
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestClient_UnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond)
	if _, err := client.ExchangeToken(context.Background(), "token"); err == nil {
		t.Fatal("expected transport error")
	}
}
