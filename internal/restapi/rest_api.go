// Package restapi implements the HTTP surface of the server.
package restapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"fellowgoer.app/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
	validate    *validator.Validate
}

// NewRestAPI creates a new RestAPI instance with an initialized rate limiter
// and request validator.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit),
		validate:    validator.New(),
	}
}
