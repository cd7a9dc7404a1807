package session

import (
	"context"
	"log/slog"
	"net/http"

	"pingmap/internal/web/flash"
	"pingmap/internal/web/sessioncookie"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/platform/httputil"
	"pingmap/pkg/requestcontext"
)

// RequireAuth gates JSON endpoints. Requests without a live session get an
// explicit 401 error body; the guarded handler is never invoked. On success
// the identity is injected into the request context.
func RequireAuth(manager *Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, token, ok := resolve(manager, logger, r)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Por favor inicie sesión"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r, sess, token)))
		})
	}
}

// RequireAuthWeb gates HTML pages. Unauthenticated requests are redirected
// to the login form with a flash notice, matching the form flow's tone.
func RequireAuthWeb(manager *Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, token, ok := resolve(manager, logger, r)
			if !ok {
				flash.Write(w, flash.Danger("Por favor inicie sesión"))
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r, sess, token)))
		})
	}
}

func resolve(manager *Manager, logger *slog.Logger, r *http.Request) (*Session, string, bool) {
	token, ok := sessioncookie.Read(r)
	if !ok {
		return nil, "", false
	}

	sess, err := manager.Current(r.Context(), token)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			logger.ErrorContext(r.Context(), "session lookup failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"error", err,
			)
		}
		return nil, "", false
	}
	return sess, token, true
}

func withIdentity(r *http.Request, sess *Session, token string) context.Context {
	ctx := requestcontext.WithUserID(r.Context(), sess.UserID)
	ctx = requestcontext.WithSessionToken(ctx, token)
	ctx = requestcontext.WithDisplayName(ctx, sess.DisplayName)
	return ctx
}
