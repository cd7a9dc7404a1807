// Package web serves the browser-facing pages: registration and login
// forms, the map view, and logout.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	accountservice "pingmap/internal/account/service"
	"pingmap/internal/session"
	"pingmap/internal/web/flash"
	"pingmap/internal/web/sessioncookie"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/requestcontext"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler renders the HTML surface. Form handlers never render directly:
// every POST ends in a flash notice plus a redirect, so refreshing the
// target page cannot resubmit the form.
type Handler struct {
	accounts *accountservice.AccountService
	sessions *session.Manager
	logger   *slog.Logger

	mapView      *template.Template
	loginView    *template.Template
	registerView *template.Template
}

// New creates the web handler and parses the embedded views.
func New(accounts *accountservice.AccountService, sessions *session.Manager, logger *slog.Logger) *Handler {
	return &Handler{
		accounts:     accounts,
		sessions:     sessions,
		logger:       logger,
		mapView:      parseView("mapa.html"),
		loginView:    parseView("login.html"),
		registerView: parseView("registro.html"),
	}
}

func parseView(page string) *template.Template {
	return template.Must(template.ParseFS(templateFS,
		"templates/layout.html", "templates/"+page))
}

// Routes registers the web surface. gate is the session middleware applied
// to pages that require a logged-in user.
func (h *Handler) Routes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Get("/registro", h.registerForm)
	r.Post("/registro", h.register)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Get("/", h.mapPage)
	})
}

// viewData is what every page template receives.
type viewData struct {
	Title       string
	DisplayName string
	Notice      flash.Notice
	HasNotice   bool
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, view *template.Template, data viewData) {
	data.Notice, data.HasNotice = flash.ReadAndClear(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"path", r.URL.Path, "error", err)
	}
}

func (h *Handler) mapPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.mapView, viewData{
		Title:       "Mapa",
		DisplayName: requestcontext.DisplayName(r.Context()),
	})
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.registerView, viewData{Title: "Registro"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/registro", dErrors.New(dErrors.CodeBadRequest, "Solicitud inválida"))
		return
	}

	req := accountservice.RegisterRequest{
		GivenName:       r.PostFormValue("nombre"),
		Surname:         r.PostFormValue("apellido"),
		NationalID:      r.PostFormValue("cedula"),
		Phone:           r.PostFormValue("telefono"),
		Region:          r.PostFormValue("region"),
		Email:           r.PostFormValue("correo"),
		Password:        r.PostFormValue("contrasena"),
		PasswordConfirm: r.PostFormValue("confirmar_contrasena"),
	}

	if _, err := h.accounts.Register(r.Context(), req); err != nil {
		h.redirectWithError(w, r, "/registro", err)
		return
	}

	flash.Write(w, flash.Success("Registro exitoso. Por favor inicie sesión."))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.loginView, viewData{Title: "Iniciar sesión"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/login", dErrors.New(dErrors.CodeBadRequest, "Solicitud inválida"))
		return
	}

	user, err := h.accounts.Login(r.Context(), r.PostFormValue("correo"), r.PostFormValue("contrasena"))
	if err != nil {
		h.redirectWithError(w, r, "/login", err)
		return
	}

	token, err := h.sessions.Establish(r.Context(), user.ID, user.DisplayName())
	if err != nil {
		h.redirectWithError(w, r, "/login", err)
		return
	}

	sessioncookie.Write(w, token)
	flash.Write(w, flash.Success("Inicio de sesión exitoso"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok {
		if err := h.sessions.Terminate(r.Context(), token); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to terminate session", "error", err)
		}
	}

	sessioncookie.Clear(w)
	flash.Write(w, flash.Success("Sesión cerrada exitosamente"))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// redirectWithError turns a failed form submission into a flash notice on
// the origin page. Internal failures get a generic notice and a log line.
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	message := dErrors.MessageOf(err)
	if dErrors.CodeOf(err) == dErrors.CodeInternal || message == "" {
		h.logger.ErrorContext(r.Context(), "form submission failed",
			"path", r.URL.Path, "error", err)
		message = "Error interno, intente nuevamente"
	}

	flash.Write(w, flash.Danger(message))
	http.Redirect(w, r, target, http.StatusSeeOther)
}
