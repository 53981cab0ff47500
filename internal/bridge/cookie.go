package bridge

import (
	"net/http"
	"sync"
	"time"
)

// SharedCookie describes the parent-domain cookie carrying the identity
// assertion. The leading-dot domain makes it visible to every subdomain.
type SharedCookie struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

// Build returns the Set-Cookie value propagating an identity assertion
func (c SharedCookie) Build(idToken string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    idToken,
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		Secure:   c.Secure,
		HttpOnly: false, // client scripts on sibling subdomains must read it
		SameSite: http.SameSiteLaxMode,
	}
}

// Expire returns the Set-Cookie value clearing the shared cookie on logout
func (c SharedCookie) Expire() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   -1,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromRequest extracts the assertion from an incoming request, if present
func (c SharedCookie) FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// MemoryCookieStore is the in-process CookieStore used by the bridge runtime
// and tests. It mirrors what the browser keeps for the parent domain.
type MemoryCookieStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryCookieStore creates an empty store
func NewMemoryCookieStore() *MemoryCookieStore {
	return &MemoryCookieStore{}
}

// Get implements CookieStore
func (m *MemoryCookieStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.set
}

// Set implements CookieStore
func (m *MemoryCookieStore) Set(idToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = idToken
	m.set = true
}

// Clear implements CookieStore
func (m *MemoryCookieStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
}

var _ CookieStore = (*MemoryCookieStore)(nil)
