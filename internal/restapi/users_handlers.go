package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/auth"
	"fellowgoer.app/internal/models"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (api *RestAPI) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input signupRequest
	if err := api.readJSON(w, r, &input); err != nil {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}
	if err := api.validate.Struct(input); err != nil {
		api.validationErrorResponse(w, r, err)
		return
	}

	queries := api.GtfsDB.Queries
	ctx := r.Context()

	if _, err := queries.GetUserByUsername(ctx, input.Username); err == nil {
		api.conflictResponse(w, r, "username already taken")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		api.serverErrorResponse(w, r, err)
		return
	}
	if _, err := queries.GetUserByEmail(ctx, input.Email); err == nil {
		api.conflictResponse(w, r, "email already registered")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		api.serverErrorResponse(w, r, err)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	userID, err := queries.CreateUser(ctx, gtfsdb.CreateUserParams{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	token, err := api.Tokens.GenerateToken(userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.Logger.Info("user registered", "user_id", userID, "username", input.Username)
	api.sendJSON(w, r, http.StatusCreated, authResponse{
		Token: token,
		User: models.User{
			ID:       userID,
			Username: input.Username,
			Email:    input.Email,
		},
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (api *RestAPI) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := api.readJSON(w, r, &input); err != nil {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}
	if err := api.validate.Struct(input); err != nil {
		api.validationErrorResponse(w, r, err)
		return
	}

	user, err := api.GtfsDB.Queries.GetUserByUsername(r.Context(), input.Username)
	if errors.Is(err, sql.ErrNoRows) {
		// Same response as a wrong password so usernames cannot be probed.
		api.unauthorizedResponse(w, r, "invalid credentials")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	ok, err := auth.CheckPassword(user.PasswordHash, input.Password)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		api.unauthorizedResponse(w, r, "invalid credentials")
		return
	}

	token, err := api.Tokens.GenerateToken(user.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, http.StatusOK, authResponse{
		Token: token,
		User:  models.NewUser(user),
	})
}
