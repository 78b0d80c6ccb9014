package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cardvault/internal/model"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "vault_session"
	// SessionTTL is how long a session stays valid without a logout.
	SessionTTL = 24 * time.Hour
)

// ErrNoSession is returned when a token is missing, invalid, expired, or
// its server-side session has been destroyed.
var ErrNoSession = errors.New("no active session")

// Principal is the authenticated actor for one session: identity plus role,
// resolved from the session store on every request. It is the only source
// authorization decisions trust; nothing is read from client-supplied data.
type Principal struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// SessionClaims are the JWT claims embedded in the session cookie. The
// session id points at the authoritative principal in the session store.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionManager issues, resolves, and destroys login sessions. Tokens are
// HMAC-signed; liveness and the principal itself live server-side so logout
// revokes immediately.
type SessionManager struct {
	secret []byte
	store  SessionStore
}

// NewSessionManager creates a session manager from the signing secret and a
// session store.
func NewSessionManager(secret string, store SessionStore) *SessionManager {
	return &SessionManager{secret: []byte(secret), store: store}
}

// Secret exposes the signing key for middleware that validates the cookie.
func (m *SessionManager) Secret() []byte {
	return m.secret
}

// Issue creates a session for a freshly authenticated principal and returns
// the signed cookie token. Only a successful credential check may call this.
func (m *SessionManager) Issue(ctx context.Context, p Principal) (string, error) {
	sid := uuid.New().String()
	if err := m.store.Save(ctx, sid, p, SessionTTL); err != nil {
		return "", err
	}

	now := time.Now()
	claims := &SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve validates a cookie token and returns the live principal, or
// ErrNoSession if the token is bad or the session has been destroyed.
func (m *SessionManager) Resolve(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.Lookup(ctx, claims.SessionID)
}

// Lookup fetches the principal for an already-validated session id.
func (m *SessionManager) Lookup(ctx context.Context, sessionID string) (*Principal, error) {
	p, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoSession
	}
	return p, nil
}

// Destroy invalidates the session behind a cookie token. Destroying an
// already-dead session is not an error.
func (m *SessionManager) Destroy(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}

func (m *SessionManager) parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
