package web

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"pingmap/internal/account/password"
	accountservice "pingmap/internal/account/service"
	accountstore "pingmap/internal/account/store"
	"pingmap/internal/session"
	sessionstore "pingmap/internal/session/store"
	"pingmap/internal/web/flash"
	"pingmap/internal/web/sessioncookie"
	"pingmap/pkg/testutil"
)

type WebHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *WebHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := accountservice.New(accountstore.NewInMemory(), password.NewHasher(bcrypt.MinCost), nil)
	sessions := session.NewManager(sessionstore.NewInMemory(), time.Hour)

	s.router = chi.NewRouter()
	h := New(accounts, sessions, logger)
	h.Routes(s.router, session.RequireAuthWeb(sessions, logger))
}

func TestWebHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebHandlerSuite))
}

func (s *WebHandlerSuite) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := testutil.NewFormRequest(s.T(), path, form)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *WebHandlerSuite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *WebHandlerSuite) flashNotice(rec *httptest.ResponseRecorder) flash.Notice {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 && c.Value != "" {
			raw, err := base64.RawURLEncoding.DecodeString(c.Value)
			s.Require().NoError(err)
			var notice flash.Notice
			s.Require().NoError(json.Unmarshal(raw, &notice))
			return notice
		}
	}
	s.FailNow("no flash notice set")
	return flash.Notice{}
}

func (s *WebHandlerSuite) sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.Name && c.MaxAge >= 0 && c.Value != "" {
			return c
		}
	}
	s.FailNow("no session cookie set")
	return nil
}

func validRegistration() url.Values {
	return url.Values{
		"nombre":               {"Ana"},
		"apellido":             {"Pérez"},
		"cedula":               {"8-123-456"},
		"telefono":             {"6000-0000"},
		"region":               {"Panamá"},
		"correo":               {"ana@example.com"},
		"contrasena":           {"Segura123"},
		"confirmar_contrasena": {"Segura123"},
	}
}

func (s *WebHandlerSuite) register() {
	rec := s.postForm("/registro", validRegistration())
	s.Require().Equal(http.StatusSeeOther, rec.Code)
}

func (s *WebHandlerSuite) login() *http.Cookie {
	rec := s.postForm("/login", url.Values{
		"correo":     {"ana@example.com"},
		"contrasena": {"Segura123"},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Require().Equal("/", rec.Header().Get("Location"))
	return s.sessionCookie(rec)
}

func (s *WebHandlerSuite) TestRegistration() {
	s.Run("form page renders", func() {
		rec := s.get("/registro")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `name="confirmar_contrasena"`)
	})

	s.Run("valid submission redirects to login with a success notice", func() {
		rec := s.postForm("/registro", validRegistration())
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/login", rec.Header().Get("Location"))

		notice := s.flashNotice(rec)
		s.Equal(flash.KindSuccess, notice.Kind)
		s.Equal("Registro exitoso. Por favor inicie sesión.", notice.Message)
	})

	s.Run("invalid submission redirects back with the failure reason", func() {
		form := validRegistration()
		form.Set("confirmar_contrasena", "Distinta123")

		rec := s.postForm("/registro", form)
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/registro", rec.Header().Get("Location"))

		notice := s.flashNotice(rec)
		s.Equal(flash.KindDanger, notice.Kind)
		s.Equal("Las contraseñas no coinciden", notice.Message)
	})

	s.Run("duplicate email redirects back with the conflict notice", func() {
		rec := s.postForm("/registro", validRegistration())
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("El correo electrónico ya está registrado", s.flashNotice(rec).Message)
	})
}

func (s *WebHandlerSuite) TestLogin() {
	s.register()

	s.Run("wrong credentials redirect back with the generic notice", func() {
		rec := s.postForm("/login", url.Values{
			"correo":     {"ana@example.com"},
			"contrasena": {"Incorrecta1"},
		})
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/login", rec.Header().Get("Location"))
		s.Equal("Correo o contraseña incorrectos", s.flashNotice(rec).Message)
	})

	s.Run("valid credentials set the session cookie and land on the map", func() {
		cookie := s.login()
		s.True(cookie.HttpOnly)
		s.Equal(http.SameSiteLaxMode, cookie.SameSite)
	})
}

func (s *WebHandlerSuite) TestMapPage() {
	s.Run("unauthenticated request is redirected to login", func() {
		rec := s.get("/")
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/login", rec.Header().Get("Location"))
		s.Equal("Por favor inicie sesión", s.flashNotice(rec).Message)
	})

	s.Run("authenticated request renders the map with the display name", func() {
		s.register()
		cookie := s.login()

		rec := s.get("/", cookie)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Ana")
		s.Contains(rec.Body.String(), `id="mapa"`)
	})
}

func (s *WebHandlerSuite) TestLogout() {
	s.register()
	cookie := s.login()

	rec := s.get("/logout", cookie)
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))
	s.Equal("Sesión cerrada exitosamente", s.flashNotice(rec).Message)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	s.True(cleared)

	s.Run("the old session no longer opens the map", func() {
		rec := s.get("/", cookie)
		s.Require().Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/login", rec.Header().Get("Location"))
	})
}
