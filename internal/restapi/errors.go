package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// errorResponse sends a JSON error body with the given status. Every error
// the API produces has the shape {"error": "..."}.
func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}

	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode error response", "error", err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusBadRequest, message)
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusNotFound, message)
}

func (api *RestAPI) unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	api.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (api *RestAPI) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusForbidden, message)
}

func (api *RestAPI) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusConflict, message)
}

// validationErrorResponse sends a 400 with field-specific validation errors.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fieldError.Tag()
	}

	response := struct {
		Error       string            `json:"error"`
		FieldErrors map[string]string `json:"field_errors"`
	}{
		Error:       "validation failed",
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		api.Logger.Error("failed to encode validation error response", "error", encodeErr)
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields and
// trailing garbage.
func (api *RestAPI) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
