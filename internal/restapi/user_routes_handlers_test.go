package restapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookmarkRoute(t *testing.T, api *RestAPI, token, routeID string) int64 {
	t.Helper()

	recorder := doRequest(t, api, http.MethodPost, "/api/user/routes", token, map[string]string{
		"route_id": routeID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, recorder, &response)
	return response.ID
}

func TestCreateUserRoute(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	userID, token := signupUser(t, api, "alice")

	recorder := doRequest(t, api, http.MethodPost, "/api/user/routes", token, map[string]string{
		"route_id": "LW",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		ID      int64  `json:"id"`
		UserID  int64  `json:"user_id"`
		RouteID string `json:"route_id"`
		Route   struct {
			RouteLongName string `json:"route_long_name"`
			RouteType     string `json:"route_type"`
		} `json:"route"`
	}
	decodeBody(t, recorder, &response)
	assert.NotZero(t, response.ID)
	assert.Equal(t, userID, response.UserID)
	assert.Equal(t, "LW", response.RouteID)
	assert.Equal(t, "Lakeshore West", response.Route.RouteLongName)
	assert.Equal(t, "train", response.Route.RouteType)
}

func TestCreateUserRouteDuplicate(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, token := signupUser(t, api, "alice")
	bookmarkRoute(t, api, token, "LW")

	recorder := doRequest(t, api, http.MethodPost, "/api/user/routes", token, map[string]string{
		"route_id": "LW",
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCreateUserRouteUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, token := signupUser(t, api, "alice")

	recorder := doRequest(t, api, http.MethodPost, "/api/user/routes", token, map[string]string{
		"route_id": "NOPE",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListUserRoutes(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, token := signupUser(t, api, "alice")
	bookmarkRoute(t, api, token, "LW")
	bookmarkRoute(t, api, token, "21")

	recorder := doRequest(t, api, http.MethodGet, "/api/user/routes", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var bookmarks []struct {
		RouteID string `json:"route_id"`
	}
	decodeBody(t, recorder, &bookmarks)
	require.Len(t, bookmarks, 2)
	// Ordered by route short name.
	assert.Equal(t, "21", bookmarks[0].RouteID)
	assert.Equal(t, "LW", bookmarks[1].RouteID)
}

func TestDeleteUserRoute(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, token := signupUser(t, api, "alice")
	bookmarkID := bookmarkRoute(t, api, token, "LW")

	recorder := doRequest(t, api, http.MethodDelete,
		fmt.Sprintf("/api/user/routes/%d", bookmarkID), token, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(t, api, http.MethodGet, "/api/user/routes", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestDeleteUserRouteScopedToOwner(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)
	_, aliceToken := signupUser(t, api, "alice")
	_, bobToken := signupUser(t, api, "bob")
	bookmarkID := bookmarkRoute(t, api, aliceToken, "LW")

	recorder := doRequest(t, api, http.MethodDelete,
		fmt.Sprintf("/api/user/routes/%d", bookmarkID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Alice's bookmark is untouched.
	recorder = doRequest(t, api, http.MethodGet, "/api/user/routes", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var bookmarks []struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, recorder, &bookmarks)
	assert.Len(t, bookmarks, 1)
}

func TestUserRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t)
	seedSchedule(t, api)

	t.Run("missing token", func(t *testing.T) {
		recorder := doRequest(t, api, http.MethodGet, "/api/user/routes", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		recorder := doRequest(t, api, http.MethodGet, "/api/user/routes", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
