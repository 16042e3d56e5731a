package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"fellowgoer.app/internal/models"
	"fellowgoer.app/internal/utils"
)

func (api *RestAPI) listRoutesHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := api.GtfsDB.Queries.ListRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, models.NewRoutes(routes))
}

func (api *RestAPI) tripsForRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID := utils.ExtractIDFromParams(r, "id")

	if _, err := api.GtfsDB.Queries.GetRoute(r.Context(), routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r, "route not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	trips, err := api.GtfsDB.Queries.ListTripsForRoute(r.Context(), routeID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, models.NewTrips(trips))
}

func (api *RestAPI) stopTimesForTripHandler(w http.ResponseWriter, r *http.Request) {
	tripID := utils.ExtractIDFromParams(r, "id")

	if _, err := api.GtfsDB.Queries.GetTrip(r.Context(), tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r, "trip not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	stopTimes, err := api.GtfsDB.Queries.ListStopTimesWithStopsForTrip(r.Context(), tripID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, models.NewStopTimes(stopTimes))
}
