package gtfsdb

import (
	"context"
)

// CreateUserParams holds the fields for a new account.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

const createUser = `
INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?);
`

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createUser,
		params.Username, params.Email, params.PasswordHash)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getUserColumns = `SELECT id, username, email, password_hash, created_at FROM users`

func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserColumns+` WHERE id = ?;`, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserColumns+` WHERE username = ?;`, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserColumns+` WHERE email = ?;`, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
