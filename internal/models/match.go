package models

// MatchedUser is one entry in the connect listing: another user who shares
// at least one bookmarked route with the requester.
type MatchedUser struct {
	UserID            int64   `json:"user_id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	SharedRoutesCount int64   `json:"shared_routes_count"`
	SharedRoutes      []Route `json:"shared_routes"`
}
