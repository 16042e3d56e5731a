package restapi

import (
	"net/http"
	"strings"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

// requireAuth wraps a handler so it only runs with a valid bearer token. The
// authenticated user id lands in the request context.
func (api *RestAPI) requireAuth(next handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			api.unauthorizedResponse(w, r, "missing authorization header")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			api.unauthorizedResponse(w, r, "malformed authorization header")
			return
		}

		userID, err := api.Tokens.DecodeToken(token)
		if err != nil {
			api.unauthorizedResponse(w, r, "invalid or expired token")
			return
		}

		next(w, api.contextSetUserID(r, userID))
	})
}
