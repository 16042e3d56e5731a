package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"fellowgoer.app/internal/models"
	"fellowgoer.app/internal/utils"
)

func (api *RestAPI) listUserRoutesHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	rows, err := api.GtfsDB.Queries.ListUserRoutes(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, models.NewUserRoutes(rows))
}

type createUserRouteRequest struct {
	RouteID string `json:"route_id" validate:"required"`
}

func (api *RestAPI) createUserRouteHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	var input createUserRouteRequest
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

	if _, err := queries.GetRoute(ctx, input.RouteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r, "route not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	exists, err := queries.UserRouteExists(ctx, userID, input.RouteID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if exists {
		api.conflictResponse(w, r, "route already bookmarked")
		return
	}

	bookmarkID, err := queries.CreateUserRoute(ctx, userID, input.RouteID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	row, err := queries.GetUserRoute(ctx, bookmarkID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, models.NewUserRoute(row))
}

func (api *RestAPI) deleteUserRouteHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	bookmarkID, ok := utils.ExtractInt64FromParams(r, "id")
	if !ok {
		api.badRequestResponse(w, r, "invalid bookmark id")
		return
	}

	deleted, err := api.GtfsDB.Queries.DeleteUserRoute(r.Context(), bookmarkID, userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !deleted {
		api.notFoundResponse(w, r, "bookmark not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
