// Package match finds other users who bookmark at least one of the same
// routes as the requester.
package match

import (
	"context"
	"fmt"
	"log/slog"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/models"
)

// Engine composes the bookmark relation's two primitives: the requester's
// bookmarked set, and the grouped count of other users bookmarking into it.
type Engine struct {
	queries *gtfsdb.Queries
	logger  *slog.Logger
}

func NewEngine(queries *gtfsdb.Queries, logger *slog.Logger) *Engine {
	return &Engine{
		queries: queries,
		logger:  logger,
	}
}

// FindMatches returns every other user sharing at least one bookmarked route
// with userID, each annotated with the shared count and full route records.
//
// Results are ordered by shared count descending, then user id ascending;
// that ordering is part of the API contract. A user with no bookmarks gets
// an empty list, not an error. There is no partial-failure mode: any store
// error fails the whole call.
func (e *Engine) FindMatches(ctx context.Context, userID int64) ([]models.MatchedUser, error) {
	bookmarked, err := e.queries.ListRouteIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarked routes for user %d: %w", userID, err)
	}
	if len(bookmarked) == 0 {
		return []models.MatchedUser{}, nil
	}

	candidates, err := e.queries.ListUsersSharingRoutes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding users sharing routes with user %d: %w", userID, err)
	}

	matches := make([]models.MatchedUser, 0, len(candidates))
	for _, candidate := range candidates {
		shared, err := e.queries.ListSharedRoutes(ctx, userID, candidate.UserID)
		if err != nil {
			return nil, fmt.Errorf("error listing shared routes between users %d and %d: %w",
				userID, candidate.UserID, err)
		}

		// The grouped count and the intersection are two views of the same
		// set; a mismatch means bookmarks changed between the two queries.
		if int64(len(shared)) != candidate.SharedRouteCount {
			e.logger.Warn("shared route count drifted between queries",
				slog.Int64("user_id", userID),
				slog.Int64("candidate_id", candidate.UserID),
				slog.Int64("counted", candidate.SharedRouteCount),
				slog.Int("fetched", len(shared)))
			candidate.SharedRouteCount = int64(len(shared))
		}

		matches = append(matches, models.MatchedUser{
			UserID:            candidate.UserID,
			Username:          candidate.Username,
			Email:             candidate.Email,
			SharedRoutesCount: candidate.SharedRouteCount,
			SharedRoutes:      models.NewRoutes(shared),
		})
	}

	return matches, nil
}
