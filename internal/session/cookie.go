package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieCodec signs session ids into the sid cookie so a client cannot
// guess other sessions.
type CookieCodec struct {
	name   string
	maxAge time.Duration
	secure bool
	sc     *securecookie.SecureCookie
}

// NewCookieCodec creates a codec. hashKey authenticates the value and should
// be 32 or 64 bytes; an empty hashKey gets a random key, which invalidates
// every cookie on restart.
func NewCookieCodec(name string, hashKey []byte, maxAge time.Duration, secure bool) *CookieCodec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(maxAge.Seconds()))

	return &CookieCodec{name: name, maxAge: maxAge, secure: secure, sc: sc}
}

// Name returns the cookie name.
func (c *CookieCodec) Name() string {
	return c.name
}

// Cookie returns the cookie carrying session id.
func (c *CookieCodec) Cookie(id string) (*http.Cookie, error) {
	value, err := c.sc.Encode(c.name, id)
	if err != nil {
		return nil, fmt.Errorf("encode session cookie: %w", err)
	}
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Expired returns a cookie that deletes the session cookie in the browser.
func (c *CookieCodec) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Decode verifies a cookie value and returns the session id.
func (c *CookieCodec) Decode(value string) (string, error) {
	var id string
	if err := c.sc.Decode(c.name, value, &id); err != nil {
		return "", fmt.Errorf("decode session cookie: %w", err)
	}
	return id, nil
}
