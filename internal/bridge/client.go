package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// Client talks to the token-exchange endpoints over HTTP. It satisfies both
// Exchanger and Redeemer, so a bridge on one subdomain can recover a session
// issued on another.
type Client struct {
	baseURL string
	origin  string
	http    *http.Client
}

// NewClient creates an exchange client. origin is sent as the Origin header
// and must be in the server's allow-list.
func NewClient(baseURL, origin string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		origin:  origin,
		http:    &http.Client{Timeout: timeout},
	}
}

type exchangeRequest struct {
	IDToken string `json:"id_token"`
}

type exchangeResponse struct {
	CustomToken string `json:"custom_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type redeemRequest struct {
	CustomToken string `json:"custom_token"`
}

type redeemResponse struct {
	IDToken   string          `json:"id_token"`
	ExpiresIn int64           `json:"expires_in"`
	Session   *domain.Session `json:"session"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExchangeToken implements Exchanger
func (c *Client) ExchangeToken(ctx context.Context, idToken string) (*domain.ExchangeResult, error) {
	var resp exchangeResponse
	if err := c.post(ctx, "/auth/token/exchange", exchangeRequest{IDToken: idToken}, &resp); err != nil {
		return nil, err
	}
	return &domain.ExchangeResult{CustomToken: resp.CustomToken, ExpiresIn: resp.ExpiresIn}, nil
}

// RedeemCustomToken implements Redeemer
func (c *Client) RedeemCustomToken(ctx context.Context, customToken string) (*domain.AuthResult, error) {
	var resp redeemResponse
	if err := c.post(ctx, "/auth/token/redeem", redeemRequest{CustomToken: customToken}, &resp); err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		Session:   resp.Session,
		IDToken:   resp.IDToken,
		ExpiresIn: resp.ExpiresIn,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("exchange endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Code != "" {
			return kindToError(domain.ErrorKind(errResp.Error.Code))
		}
		return fmt.Errorf("exchange endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// kindToError maps a wire error kind back onto the nearest sentinel so bridge
// callers can branch the same way in-process callers do
func kindToError(kind domain.ErrorKind) error {
	switch kind {
	case domain.KindInvalidArgument:
		return domain.ErrTokenMalformed
	case domain.KindUnauthenticated:
		return domain.ErrTokenExpired
	case domain.KindPermissionDenied:
		return domain.ErrExchangeDenied
	case domain.KindNotFound:
		return domain.ErrAccountNotFound
	default:
		return fmt.Errorf("exchange failed with kind %q", kind)
	}
}
