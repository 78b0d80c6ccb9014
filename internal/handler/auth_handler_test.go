package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"cardvault/internal/auth"
	"cardvault/internal/model"
)

// brokenSessionStore accepts saves but refuses deletes, standing in for a
// session store that goes down between login and logout.
type brokenSessionStore struct {
	deleteErr error
}

func (s *brokenSessionStore) Save(ctx context.Context, sessionID string, p auth.Principal, ttl time.Duration) error {
	return nil
}

func (s *brokenSessionStore) Get(ctx context.Context, sessionID string) (*auth.Principal, error) {
	return nil, nil
}

func (s *brokenSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.deleteErr
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("clears the cookie even when the session store fails", func(t *testing.T) {
		store := &brokenSessionStore{deleteErr: errors.New("store down")}
		sessions := auth.NewSessionManager("test-secret", store)
		h := NewAuthHandler(nil, sessions)

		token, err := sessions.Issue(context.Background(), auth.Principal{UserID: 3, Username: "alice", Role: model.RoleCustomer})
		assert.NoError(t, err)

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
		rec := httptest.NewRecorder()

		assert.NoError(t, h.Logout(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		cleared := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == auth.SessionCookieName {
				cleared = cookie.Value == "" && cookie.MaxAge < 0
			}
		}
		assert.True(t, cleared, "session cookie must be expired in the response")
	})

	t.Run("logout without a cookie still succeeds", func(t *testing.T) {
		sessions := auth.NewSessionManager("test-secret", &brokenSessionStore{})
		h := NewAuthHandler(nil, sessions)

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.Logout(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
