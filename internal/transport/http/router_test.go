package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"pingmap/internal/account/password"
	accountservice "pingmap/internal/account/service"
	accountstore "pingmap/internal/account/store"
	pinghandler "pingmap/internal/ping/handler"
	pingservice "pingmap/internal/ping/service"
	pingstore "pingmap/internal/ping/store"
	"pingmap/internal/session"
	sessionstore "pingmap/internal/session/store"
	"pingmap/internal/web"
	"pingmap/internal/web/sessioncookie"
)

type RouterSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := accountservice.New(accountstore.NewInMemory(), password.NewHasher(bcrypt.MinCost), nil)
	sessions := session.NewManager(sessionstore.NewInMemory(), time.Hour)
	pings := pingservice.New(pingstore.NewInMemory(), nil)

	router := NewRouter(Deps{
		Logger:   logger,
		Web:      web.New(accounts, sessions, logger),
		Pings:    pinghandler.New(pings, logger),
		Sessions: sessions,
	})

	s.server = httptest.NewServer(router)
	s.client = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *RouterSuite) TearDownTest() {
	s.server.Close()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

// signUpAndLogin registers a fresh user through the forms and returns the
// session cookie from the login response.
func (s *RouterSuite) signUpAndLogin() *http.Cookie {
	form := url.Values{
		"nombre":               {"Luis"},
		"apellido":             {"Gómez"},
		"cedula":               {"4-567-890"},
		"telefono":             {"6111-1111"},
		"region":               {"Chiriquí"},
		"correo":               {"luis@example.com"},
		"contrasena":           {"Clave1234"},
		"confirmar_contrasena": {"Clave1234"},
	}
	resp, err := s.client.PostForm(s.server.URL+"/registro", form)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	resp, err = s.client.PostForm(s.server.URL+"/login", url.Values{
		"correo":     {"luis@example.com"},
		"contrasena": {"Clave1234"},
	})
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == sessioncookie.Name && c.Value != "" {
			return c
		}
	}
	s.Require().FailNow("login did not set a session cookie")
	return nil
}

func (s *RouterSuite) TestPingAPIRequiresSession() {
	resp, err := s.client.Get(s.server.URL + "/get_pings")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("unauthorized", body["error"])
	s.Equal("Por favor inicie sesión", body["error_description"])
}

func (s *RouterSuite) TestFullPingFlow() {
	cookie := s.signUpAndLogin()

	payload, err := json.Marshal(map[string]any{"lat": 8.43, "lng": -82.43, "info": "sismo"})
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/add_ping", bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var created map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&created))
	s.Equal(true, created["success"])

	req, err = http.NewRequest(http.MethodGet, s.server.URL+"/get_pings", nil)
	s.Require().NoError(err)
	req.AddCookie(cookie)

	resp, err = s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listed []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listed))
	s.Require().Len(listed, 1)
	s.Equal("sismo", listed[0]["info"])
	s.Equal(created["id"], listed[0]["id"])
}

func (s *RouterSuite) TestHealthz() {
	resp, err := s.client.Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("ok", body["status"])
}

func (s *RouterSuite) TestMetricsExposed() {
	resp, err := s.client.Get(s.server.URL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(strings.Contains(string(raw), "go_goroutines"))
}

func (s *RouterSuite) TestRequestIDEchoed() {
	resp, err := s.client.Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	resp.Body.Close()

	s.NotEmpty(resp.Header.Get("X-Request-ID"))
}
