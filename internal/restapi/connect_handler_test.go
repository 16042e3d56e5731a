package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectUsers(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)

	_, aliceToken := signupUser(t, api, "alice")
	bobID, bobToken := signupUser(t, api, "bob")
	_, carolToken := signupUser(t, api, "carol")

	bookmarkRoute(t, api, aliceToken, "LW")
	bookmarkRoute(t, api, aliceToken, "21")
	bookmarkRoute(t, api, bobToken, "LW")
	bookmarkRoute(t, api, carolToken, "21")

	recorder := doRequest(t, api, http.MethodGet, "/api/connect/users", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Users []struct {
			UserID            int64  `json:"user_id"`
			Username          string `json:"username"`
			SharedRoutesCount int64  `json:"shared_routes_count"`
			SharedRoutes      []struct {
				RouteID string `json:"route_id"`
			} `json:"shared_routes"`
		} `json:"users"`
	}
	decodeBody(t, recorder, &response)
	matches := response.Users
	require.Len(t, matches, 2)

	// Both share one route; ties break by user id ascending.
	assert.Equal(t, bobID, matches[0].UserID)
	assert.Equal(t, "bob", matches[0].Username)
	assert.Equal(t, int64(1), matches[0].SharedRoutesCount)
	require.Len(t, matches[0].SharedRoutes, 1)
	assert.Equal(t, "LW", matches[0].SharedRoutes[0].RouteID)
	assert.Equal(t, "carol", matches[1].Username)
}

func TestConnectUsersNoBookmarks(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, token := signupUser(t, api, "alice")

	recorder := doRequest(t, api, http.MethodGet, "/api/connect/users", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"users": []}`, recorder.Body.String())
}

func TestConnectUsersRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	recorder := doRequest(t, api, http.MethodGet, "/api/connect/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
