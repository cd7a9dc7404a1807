package session_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pingmap/internal/session"
	sessionstore "pingmap/internal/session/store"
	"pingmap/internal/web/sessioncookie"
	id "pingmap/pkg/domain"
	"pingmap/pkg/requestcontext"
)

type MiddlewareSuite struct {
	suite.Suite
	manager *session.Manager
	logger  *slog.Logger
}

func (s *MiddlewareSuite) SetupTest() {
	s.manager = session.NewManager(sessionstore.NewInMemory(), time.Hour)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) login(t *testing.T) (id.UserID, string) {
	t.Helper()
	userID := id.UserID(uuid.New())
	token, err := s.manager.Establish(context.Background(), userID, "Ana")
	require.NoError(t, err)
	return userID, token
}

func (s *MiddlewareSuite) TestRequireAuthRejectsWithoutCookie() {
	handler := session.RequireAuth(s.manager, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Fail("guarded handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_pings", nil))

	s.Equal(http.StatusUnauthorized, rec.Code)

	var body map[string]string
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Equal("unauthorized", body["error"])
}

func (s *MiddlewareSuite) TestRequireAuthInjectsIdentity() {
	userID, token := s.login(s.T())

	var gotUser id.UserID
	var gotName string
	handler := session.RequireAuth(s.manager, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = requestcontext.UserID(r.Context())
		gotName = requestcontext.DisplayName(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/get_pings", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	s.Equal(userID, gotUser)
	s.Equal("Ana", gotName)
}

func (s *MiddlewareSuite) TestRequireAuthAfterLogout() {
	_, token := s.login(s.T())
	s.Require().NoError(s.manager.Terminate(context.Background(), token))

	handler := session.RequireAuth(s.manager, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Fail("guarded handler must not run after logout")
	}))

	req := httptest.NewRequest(http.MethodGet, "/get_pings", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *MiddlewareSuite) TestRequireAuthWebRedirectsToLogin() {
	handler := session.RequireAuthWeb(s.manager, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Fail("guarded handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))

	// A flash notice rides along for the login page to render.
	cookies := rec.Result().Cookies()
	var foundFlash bool
	for _, c := range cookies {
		if c.Name == "pingmap_flash" && c.Value != "" {
			foundFlash = true
		}
	}
	s.True(foundFlash, "expected a flash cookie on redirect")
}

func (s *MiddlewareSuite) TestRequireAuthWebPassesThrough() {
	_, token := s.login(s.T())

	var ran bool
	handler := session.RequireAuthWeb(s.manager, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	s.True(ran)
}
