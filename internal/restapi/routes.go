package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler builds the full middleware-wrapped router.
//
// Order matters: request logging runs first so every request gets a request
// id, then security headers (which also answer CORS preflights), then the
// rate limiter, then compression around the routed handlers.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/api/health", api.healthHandler)

	router.HandlerFunc(http.MethodPost, "/api/signup", api.signupHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", api.loginHandler)

	router.HandlerFunc(http.MethodGet, "/api/routes", api.listRoutesHandler)
	router.HandlerFunc(http.MethodGet, "/api/routes/:id/trips", api.tripsForRouteHandler)
	router.HandlerFunc(http.MethodGet, "/api/trips/:id/stop-times", api.stopTimesForTripHandler)

	router.Handler(http.MethodGet, "/api/user/routes", api.requireAuth(api.listUserRoutesHandler))
	router.Handler(http.MethodPost, "/api/user/routes", api.requireAuth(api.createUserRouteHandler))
	router.Handler(http.MethodDelete, "/api/user/routes/:id", api.requireAuth(api.deleteUserRouteHandler))

	router.Handler(http.MethodGet, "/api/connect/users", api.requireAuth(api.connectUsersHandler))

	router.Handler(http.MethodGet, "/api/chats", api.requireAuth(api.listChatsHandler))
	router.Handler(http.MethodPost, "/api/chats", api.requireAuth(api.createChatHandler))
	router.Handler(http.MethodGet, "/api/chats/:id", api.requireAuth(api.getChatHandler))
	router.Handler(http.MethodGet, "/api/chats/:id/messages", api.requireAuth(api.listMessagesHandler))
	router.Handler(http.MethodPost, "/api/chats/:id/messages", api.requireAuth(api.createMessageHandler))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.notFoundResponse(w, r, "resource not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.errorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = api.withSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
