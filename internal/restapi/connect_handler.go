package restapi

import (
	"net/http"

	"fellowgoer.app/internal/models"
)

// connectUsersHandler lists other users who bookmark at least one of the
// requester's routes, best matches first.
func (api *RestAPI) connectUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	matches, err := api.Matcher.FindMatches(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := struct {
		Users []models.MatchedUser `json:"users"`
	}{
		Users: matches,
	}
	api.sendJSON(w, r, http.StatusOK, response)
}
