package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// Manager issues and revokes browser sessions: a Store entry plus the signed
// sid cookie pointing at it.
type Manager struct {
	store   Store
	cookies *CookieCodec
	logger  *slog.Logger
}

// NewManager creates a session manager.
func NewManager(store Store, cookies *CookieCodec, logger *slog.Logger) *Manager {
	return &Manager{store: store, cookies: cookies, logger: logger}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookies.Name()
}

// Lookup resolves a raw cookie value to the gateway token of its session.
// Cookies that fail verification resolve to no token.
func (m *Manager) Lookup(ctx context.Context, cookieValue string) (string, error) {
	id, err := m.cookies.Decode(cookieValue)
	if err != nil {
		m.logger.DebugContext(ctx, "ignoring invalid session cookie", slog.String("error", err.Error()))
		return "", nil
	}
	return m.store.Lookup(ctx, id)
}

// Start saves a session for token and sets its cookie on w.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, token string) (*Session, error) {
	s := New(token)
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	cookie, err := m.cookies.Cookie(s.ID)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, cookie)
	return s, nil
}

// End revokes the session named by cookieValue and expires the cookie on w.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, cookieValue string) error {
	http.SetCookie(w, m.cookies.Expired())
	return m.Revoke(ctx, cookieValue)
}

// Revoke deletes the session named by cookieValue, if it is valid. Revoking
// a missing session is not an error.
func (m *Manager) Revoke(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}
	id, err := m.cookies.Decode(cookieValue)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
