// Package utils holds small helpers shared by HTTP handlers.
package utils

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a named path parameter from the request
// context.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName(paramName)
}

// ExtractInt64FromParams retrieves a numeric path parameter. The boolean is
// false when the segment is not a valid integer.
func ExtractInt64FromParams(r *http.Request, paramName string) (int64, bool) {
	value, err := strconv.ParseInt(ExtractIDFromParams(r, paramName), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
