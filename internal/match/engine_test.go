package match

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/appconf"
	"fellowgoer.app/internal/logging"
)

type fixture struct {
	client *gtfsdb.Client
	engine *Engine
	users  map[string]int64
}

// newFixture seeds three routes and four users:
//
//	alice:   LW, LE, MI
//	bob:     LW, LE
//	carol:   MI
//	dave:    (no bookmarks)
func newFixture(t *testing.T) *fixture {
	t.Helper()

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() }) // nolint:errcheck

	ctx := context.Background()
	q := client.Queries

	for _, r := range []gtfsdb.CreateRouteParams{
		{ID: "LW", ShortName: "LW", LongName: "Lakeshore West", Type: 2, Color: "00A94F"},
		{ID: "LE", ShortName: "LE", LongName: "Lakeshore East", Type: 2},
		{ID: "MI", ShortName: "MI", LongName: "Milton", Type: 3},
	} {
		require.NoError(t, q.CreateRoute(ctx, r))
	}

	users := make(map[string]int64)
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		id, err := q.CreateUser(ctx, gtfsdb.CreateUserParams{
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "x",
		})
		require.NoError(t, err)
		users[name] = id
	}

	bookmarks := map[string][]string{
		"alice": {"LW", "LE", "MI"},
		"bob":   {"LW", "LE"},
		"carol": {"MI"},
	}
	for name, routes := range bookmarks {
		for _, routeID := range routes {
			_, err := q.CreateUserRoute(ctx, users[name], routeID)
			require.NoError(t, err)
		}
	}

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	return &fixture{
		client: client,
		engine: NewEngine(q, logger),
		users:  users,
	}
}

func TestFindMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	matches, err := f.engine.FindMatches(ctx, f.users["alice"])
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Ordered by shared count descending, then user id ascending.
	assert.Equal(t, f.users["bob"], matches[0].UserID)
	assert.Equal(t, int64(2), matches[0].SharedRoutesCount)
	assert.Equal(t, f.users["carol"], matches[1].UserID)
	assert.Equal(t, int64(1), matches[1].SharedRoutesCount)

	// Count and intersection cardinality agree for every match.
	for _, m := range matches {
		assert.Equal(t, int(m.SharedRoutesCount), len(m.SharedRoutes), "user %d", m.UserID)
	}

	// Full route records come back, with the route_type label applied.
	require.Len(t, matches[0].SharedRoutes, 2)
	assert.Equal(t, "LE", matches[0].SharedRoutes[0].RouteID)
	assert.Equal(t, "LW", matches[0].SharedRoutes[1].RouteID)
	assert.Equal(t, "train", matches[0].SharedRoutes[1].RouteType)
	assert.Equal(t, "Lakeshore West", matches[0].SharedRoutes[1].RouteLongName)
	assert.Equal(t, "00A94F", matches[0].SharedRoutes[1].RouteColor)

	assert.Equal(t, "bus", matches[1].SharedRoutes[0].RouteType)
	assert.Equal(t, "carol@example.com", matches[1].Email)
}

func TestFindMatchesNeverIncludesRequester(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		matches, err := f.engine.FindMatches(context.Background(), f.users[name])
		require.NoError(t, err)
		for _, m := range matches {
			assert.NotEqual(t, f.users[name], m.UserID)
		}
	}
}

func TestFindMatchesEmptyBookmarks(t *testing.T) {
	f := newFixture(t)

	matches, err := f.engine.FindMatches(context.Background(), f.users["dave"])
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFindMatchesIsSymmetricOnSharedSets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fromBob, err := f.engine.FindMatches(ctx, f.users["bob"])
	require.NoError(t, err)

	var aliceEntry *int
	for i, m := range fromBob {
		if m.UserID == f.users["alice"] {
			aliceEntry = &i
			break
		}
	}
	require.NotNil(t, aliceEntry)
	assert.Equal(t, int64(2), fromBob[*aliceEntry].SharedRoutesCount)
}
