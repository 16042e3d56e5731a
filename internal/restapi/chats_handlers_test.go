package restapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatResponse struct {
	ID           int64 `json:"id"`
	Participants []struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	} `json:"participants"`
	OtherParticipant *struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	} `json:"other_participant"`
	LastMessage *struct {
		Content string `json:"content"`
	} `json:"last_message"`
}

func startChat(t *testing.T, api *RestAPI, token string, withUserID int64) chatResponse {
	t.Helper()

	recorder := doRequest(t, api, http.MethodPost, "/api/chats", token, map[string]int64{
		"other_user_id": withUserID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var chat chatResponse
	decodeBody(t, recorder, &chat)
	return chat
}

func TestCreateChat(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := signupUser(t, api, "alice")
	bobID, _ := signupUser(t, api, "bob")

	chat := startChat(t, api, aliceToken, bobID)
	assert.NotZero(t, chat.ID)
	require.Len(t, chat.Participants, 2)
	assert.Equal(t, aliceID, chat.Participants[0].UserID)
	assert.Equal(t, bobID, chat.Participants[1].UserID)
	require.NotNil(t, chat.OtherParticipant)
	assert.Equal(t, "bob", chat.OtherParticipant.Username)
	assert.Nil(t, chat.LastMessage)
}

func TestCreateChatIsIdempotentPerPair(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")
	bobID, _ := signupUser(t, api, "bob")

	first := startChat(t, api, aliceToken, bobID)

	recorder := doRequest(t, api, http.MethodPost, "/api/chats", aliceToken, map[string]int64{
		"other_user_id": bobID,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var second chatResponse
	decodeBody(t, recorder, &second)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateChatWithSelf(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := signupUser(t, api, "alice")

	recorder := doRequest(t, api, http.MethodPost, "/api/chats", aliceToken, map[string]int64{
		"other_user_id": aliceID,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateChatWithUnknownUser(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")

	recorder := doRequest(t, api, http.MethodPost, "/api/chats", aliceToken, map[string]int64{
		"other_user_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMessagesRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")
	bobID, bobToken := signupUser(t, api, "bob")
	chat := startChat(t, api, aliceToken, bobID)

	recorder := doRequest(t, api, http.MethodPost,
		fmt.Sprintf("/api/chats/%d/messages", chat.ID), aliceToken, map[string]string{
			"content": "taking the 8am tomorrow?",
		})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var sent struct {
		ID             int64  `json:"id"`
		ChatID         int64  `json:"chat_id"`
		SenderUsername string `json:"sender_username"`
		Content        string `json:"content"`
	}
	decodeBody(t, recorder, &sent)
	assert.Equal(t, chat.ID, sent.ChatID)
	assert.Equal(t, "alice", sent.SenderUsername)
	assert.Equal(t, "taking the 8am tomorrow?", sent.Content)

	// The other participant sees it.
	recorder = doRequest(t, api, http.MethodGet,
		fmt.Sprintf("/api/chats/%d/messages", chat.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var messages []struct {
		Content string `json:"content"`
	}
	decodeBody(t, recorder, &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "taking the 8am tomorrow?", messages[0].Content)

	// And it surfaces as the chat's last message.
	recorder = doRequest(t, api, http.MethodGet,
		fmt.Sprintf("/api/chats/%d", chat.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var view chatResponse
	decodeBody(t, recorder, &view)
	require.NotNil(t, view.LastMessage)
	assert.Equal(t, "taking the 8am tomorrow?", view.LastMessage.Content)
}

func TestEmptyMessageRejected(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")
	bobID, _ := signupUser(t, api, "bob")
	chat := startChat(t, api, aliceToken, bobID)

	recorder := doRequest(t, api, http.MethodPost,
		fmt.Sprintf("/api/chats/%d/messages", chat.ID), aliceToken, map[string]string{
			"content": "",
		})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestChatHiddenFromNonParticipants(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")
	bobID, _ := signupUser(t, api, "bob")
	_, carolToken := signupUser(t, api, "carol")
	chat := startChat(t, api, aliceToken, bobID)

	for _, path := range []string{
		fmt.Sprintf("/api/chats/%d", chat.ID),
		fmt.Sprintf("/api/chats/%d/messages", chat.ID),
	} {
		recorder := doRequest(t, api, http.MethodGet, path, carolToken, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code, path)
	}

	recorder := doRequest(t, api, http.MethodPost,
		fmt.Sprintf("/api/chats/%d/messages", chat.ID), carolToken, map[string]string{
			"content": "let me in",
		})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListChatsOrderedByActivity(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := signupUser(t, api, "alice")
	bobID, _ := signupUser(t, api, "bob")
	carolID, _ := signupUser(t, api, "carol")

	bobChat := startChat(t, api, aliceToken, bobID)
	carolChat := startChat(t, api, aliceToken, carolID)

	recorder := doRequest(t, api, http.MethodGet, "/api/chats", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var chats []chatResponse
	decodeBody(t, recorder, &chats)
	require.Len(t, chats, 2)
	// Most recently created first when nothing has been posted yet.
	assert.Equal(t, carolChat.ID, chats[0].ID)
	assert.Equal(t, bobChat.ID, chats[1].ID)
	require.NotNil(t, chats[0].OtherParticipant)
	assert.Equal(t, "carol", chats[0].OtherParticipant.Username)
}
