package testutil

import (
	"net/http"

	"bordereau/pkg/requestcontext"
)

// WithEditor puts an editor in the request context, as the auth middleware
// does for a valid token. Use it when testing handlers without the router.
func WithEditor(req *http.Request, userID string, sirets ...string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), requestcontext.Editor{UserID: userID, Sirets: sirets})
	return req.WithContext(ctx)
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
