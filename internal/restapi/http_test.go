package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/app"
	"fellowgoer.app/internal/appconf"
	"fellowgoer.app/internal/config"
	"fellowgoer.app/internal/logging"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Env = "test"
	cfg.DBPath = ":memory:"
	cfg.JWTSecret = "test-secret-signing-key"
	cfg.RateLimit.Enabled = false
	return cfg
}

// newTestAPI builds a RestAPI over a fresh in-memory database.
func newTestAPI(t *testing.T) *RestAPI {
	t.Helper()

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() }) // nolint:errcheck

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	return NewRestAPI(app.NewApplication(testConfig(), logger, client))
}

// seedSchedule loads one rail route with a single two-stop trip.
func seedSchedule(t *testing.T, api *RestAPI) {
	t.Helper()
	ctx := context.Background()
	q := api.GtfsDB.Queries

	require.NoError(t, q.CreateRoute(ctx, gtfsdb.CreateRouteParams{
		ID: "LW", AgencyID: "GO", ShortName: "LW", LongName: "Lakeshore West",
		Type: 2, Color: "00A94F", TextColor: "FFFFFF",
	}))
	require.NoError(t, q.CreateRoute(ctx, gtfsdb.CreateRouteParams{
		ID: "21", AgencyID: "GO", ShortName: "21", LongName: "Milton Bus",
		Type: 3,
	}))
	require.NoError(t, q.CreateStop(ctx, gtfsdb.CreateStopParams{
		ID: "UN", Name: "Union Station", Lat: 43.6453, Lon: -79.3806,
	}))
	require.NoError(t, q.CreateStop(ctx, gtfsdb.CreateStopParams{
		ID: "EX", Name: "Exhibition GO", Lat: 43.6355, Lon: -79.4192,
	}))
	require.NoError(t, q.CreateTrip(ctx, gtfsdb.CreateTripParams{
		ID: "T1", RouteID: "LW", ServiceID: "WEEKDAY",
		Headsign: "Aldershot GO", DirectionID: gtfsdb.ToNullInt64(0),
	}))
	require.NoError(t, q.CreateStopTime(ctx, gtfsdb.CreateStopTimeParams{
		TripID: "T1", StopID: "UN", StopSequence: 1,
		ArrivalTime: 8 * 3600, DepartureTime: 8*3600 + 120,
	}))
	require.NoError(t, q.CreateStopTime(ctx, gtfsdb.CreateStopTimeParams{
		TripID: "T1", StopID: "EX", StopSequence: 2,
		ArrivalTime: 8*3600 + 600, DepartureTime: 8*3600 + 660,
	}))
}

// doRequest runs one request through the full middleware-wrapped handler.
func doRequest(t *testing.T, api *RestAPI, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	api.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), dst))
}

// signupUser registers an account through the API and returns its id and
// bearer token.
func signupUser(t *testing.T, api *RestAPI, username string) (int64, string) {
	t.Helper()

	recorder := doRequest(t, api, http.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "a sturdy passphrase",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, recorder, &response)
	require.NotEmpty(t, response.Token)
	return response.User.ID, response.Token
}
