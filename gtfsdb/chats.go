package gtfsdb

import (
	"context"
	"database/sql"
	"errors"
)

func (q *Queries) CreateChat(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, `INSERT INTO chats DEFAULT VALUES;`)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) GetChat(ctx context.Context, id int64) (Chat, error) {
	var c Chat
	err := q.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM chats WHERE id = ?;`, id).Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// TouchChat bumps a chat's updated_at so it sorts to the top of the list.
func (q *Queries) TouchChat(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE chats SET updated_at = datetime('now') WHERE id = ?;`, id)
	return err
}

func (q *Queries) CreateChatParticipant(ctx context.Context, chatID, userID int64) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO chat_participants (chat_id, user_id) VALUES (?, ?);`, chatID, userID)
	return err
}

func (q *Queries) IsChatParticipant(ctx context.Context, chatID, userID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_participants WHERE chat_id = ? AND user_id = ?;`,
		chatID, userID).Scan(&count)
	return count > 0, err
}

// ListChatParticipantsRow is a participant with their display name.
type ListChatParticipantsRow struct {
	UserID   int64
	Username string
	JoinedAt string
}

const listChatParticipants = `
SELECT p.user_id, u.username, p.joined_at
FROM chat_participants p
JOIN users u ON u.id = p.user_id
WHERE p.chat_id = ?
ORDER BY p.id;
`

func (q *Queries) ListChatParticipants(ctx context.Context, chatID int64) ([]ListChatParticipantsRow, error) {
	rows, err := q.db.QueryContext(ctx, listChatParticipants, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var result []ListChatParticipantsRow
	for rows.Next() {
		var row ListChatParticipantsRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

const listChatsForUser = `
SELECT c.id, c.created_at, c.updated_at
FROM chats c
JOIN chat_participants p ON p.chat_id = c.id
WHERE p.user_id = ?
ORDER BY c.updated_at DESC, c.id DESC;
`

func (q *Queries) ListChatsForUser(ctx context.Context, userID int64) ([]Chat, error) {
	rows, err := q.db.QueryContext(ctx, listChatsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// FindChatBetween returns the id of an existing chat both users participate
// in, or 0 when none exists.
const findChatBetween = `
SELECT c.id
FROM chats c
JOIN chat_participants p1 ON p1.chat_id = c.id AND p1.user_id = ?1
JOIN chat_participants p2 ON p2.chat_id = c.id AND p2.user_id = ?2
LIMIT 1;
`

func (q *Queries) FindChatBetween(ctx context.Context, userA, userB int64) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, findChatBetween, userA, userB).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// MessageRow is a message joined with its sender's username.
type MessageRow struct {
	Message
	SenderUsername string
}

const messageColumns = `
SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at, u.username
FROM messages m
JOIN users u ON u.id = m.sender_id
`

func (q *Queries) ListMessages(ctx context.Context, chatID int64) ([]MessageRow, error) {
	rows, err := q.db.QueryContext(ctx,
		messageColumns+`WHERE m.chat_id = ? ORDER BY m.created_at, m.id;`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var messages []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt, &m.SenderUsername); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (q *Queries) GetMessage(ctx context.Context, id int64) (MessageRow, error) {
	var m MessageRow
	err := q.db.QueryRowContext(ctx,
		messageColumns+`WHERE m.id = ?;`, id).Scan(
		&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt, &m.SenderUsername)
	return m, err
}

// GetLastMessage returns the most recent message in a chat, or sql.ErrNoRows.
func (q *Queries) GetLastMessage(ctx context.Context, chatID int64) (MessageRow, error) {
	var m MessageRow
	err := q.db.QueryRowContext(ctx,
		messageColumns+`WHERE m.chat_id = ? ORDER BY m.created_at DESC, m.id DESC LIMIT 1;`, chatID).Scan(
		&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt, &m.SenderUsername)
	return m, err
}

func (q *Queries) CreateMessage(ctx context.Context, chatID, senderID int64, content string) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO messages (chat_id, sender_id, content) VALUES (?, ?, ?);`,
		chatID, senderID, content)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
