package restapi

import (
	"context"
	"net/http"
)

type contextKey string

const userIDContextKey = contextKey("user_id")

func (api *RestAPI) contextSetUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), userIDContextKey, userID)
	return r.WithContext(ctx)
}

// contextGetUserID retrieves the authenticated user id. It panics when called
// from a handler that is not behind requireAuth; that is a routing bug, not a
// runtime condition.
func (api *RestAPI) contextGetUserID(r *http.Request) int64 {
	userID, ok := r.Context().Value(userIDContextKey).(int64)
	if !ok {
		panic("missing user id in request context")
	}
	return userID
}
