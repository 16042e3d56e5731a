package restapi

import (
	"net/http"
)

// healthHandler reports liveness plus whether schedule data is loaded.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := api.GtfsDB.Queries.CountRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := struct {
		Status string `json:"status"`
		Env    string `json:"env"`
		Routes int64  `json:"routes"`
	}{
		Status: "healthy",
		Env:    api.Config.Environment().String(),
		Routes: routes,
	}
	api.sendJSON(w, r, http.StatusOK, response)
}
