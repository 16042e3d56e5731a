package models

import "fellowgoer.app/gtfsdb"

// ChatParticipant is a user within a chat.
type ChatParticipant struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	JoinedAt string `json:"joined_at"`
}

// Message is one chat message with its sender's display name.
type Message struct {
	ID             int64  `json:"id"`
	ChatID         int64  `json:"chat_id"`
	SenderID       int64  `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// Chat is a conversation as seen by one participant: the other side is
// surfaced separately so the UI can label the conversation.
type Chat struct {
	ID               int64             `json:"id"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
	Participants     []ChatParticipant `json:"participants"`
	OtherParticipant *ChatParticipant  `json:"other_participant"`
	LastMessage      *Message          `json:"last_message"`
}

func NewChatParticipant(row gtfsdb.ListChatParticipantsRow) ChatParticipant {
	return ChatParticipant{
		UserID:   row.UserID,
		Username: row.Username,
		JoinedAt: row.JoinedAt,
	}
}

func NewMessage(row gtfsdb.MessageRow) Message {
	return Message{
		ID:             row.ID,
		ChatID:         row.ChatID,
		SenderID:       row.SenderID,
		SenderUsername: row.SenderUsername,
		Content:        row.Content,
		CreatedAt:      row.CreatedAt,
	}
}

func NewMessages(rows []gtfsdb.MessageRow) []Message {
	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, NewMessage(row))
	}
	return messages
}

// NewChat assembles a chat view for currentUserID from its pieces.
func NewChat(chat gtfsdb.Chat, participants []gtfsdb.ListChatParticipantsRow, lastMessage *gtfsdb.MessageRow, currentUserID int64) Chat {
	view := Chat{
		ID:           chat.ID,
		CreatedAt:    chat.CreatedAt,
		UpdatedAt:    chat.UpdatedAt,
		Participants: make([]ChatParticipant, 0, len(participants)),
	}
	for _, p := range participants {
		participant := NewChatParticipant(p)
		view.Participants = append(view.Participants, participant)
		if participant.UserID != currentUserID && view.OtherParticipant == nil {
			other := participant
			view.OtherParticipant = &other
		}
	}
	if lastMessage != nil {
		message := NewMessage(*lastMessage)
		view.LastMessage = &message
	}
	return view
}
