package testutil

import (
	"net/http"

	id "pingmap/pkg/domain"
	"pingmap/pkg/requestcontext"
)

// AsUser injects an authenticated identity into the request context,
// simulating what the session middleware does for logged-in requests.
func AsUser(req *http.Request, userID id.UserID, displayName string) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithDisplayName(ctx, displayName)
	return req.WithContext(ctx)
}
