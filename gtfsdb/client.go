// Package gtfsdb is the SQLite persistence layer: the GTFS schedule tables
// populated by the import pipeline, and the companion tables (users,
// bookmarks, chats) that reference them.
package gtfsdb

import (
	"database/sql"
	"fmt"
)

// Client is the main entry point for the database layer.
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
}

// NewClient opens (and migrates) the database described by config.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("error creating database: %w", err)
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
