package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"fellowgoer.app/internal/logging"
	"fellowgoer.app/internal/models"
	"fellowgoer.app/internal/utils"
)

// chatView assembles the full chat representation for one participant.
func (api *RestAPI) chatView(r *http.Request, chat int64, currentUserID int64) (models.Chat, error) {
	queries := api.GtfsDB.Queries
	ctx := r.Context()

	record, err := queries.GetChat(ctx, chat)
	if err != nil {
		return models.Chat{}, err
	}
	participants, err := queries.ListChatParticipants(ctx, chat)
	if err != nil {
		return models.Chat{}, err
	}

	last, err := queries.GetLastMessage(ctx, chat)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewChat(record, participants, nil, currentUserID), nil
	}
	if err != nil {
		return models.Chat{}, err
	}
	return models.NewChat(record, participants, &last, currentUserID), nil
}

func (api *RestAPI) listChatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	chats, err := api.GtfsDB.Queries.ListChatsForUser(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	views := make([]models.Chat, 0, len(chats))
	for _, chat := range chats {
		view, err := api.chatView(r, chat.ID, userID)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		views = append(views, view)
	}
	api.sendJSON(w, r, http.StatusOK, views)
}

type createChatRequest struct {
	OtherUserID int64 `json:"other_user_id" validate:"required,gt=0"`
}

// createChatHandler starts a conversation with another user. Creating a chat
// that already exists returns the existing one rather than a duplicate.
func (api *RestAPI) createChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	var input createChatRequest
	if err := api.readJSON(w, r, &input); err != nil {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}
	if err := api.validate.Struct(input); err != nil {
		api.validationErrorResponse(w, r, err)
		return
	}
	if input.OtherUserID == userID {
		api.badRequestResponse(w, r, "cannot start a chat with yourself")
		return
	}

	queries := api.GtfsDB.Queries
	ctx := r.Context()

	if _, err := queries.GetUser(ctx, input.OtherUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r, "user not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	existing, err := queries.FindChatBetween(ctx, userID, input.OtherUserID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if existing != 0 {
		view, err := api.chatView(r, existing, userID)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		api.sendJSON(w, r, http.StatusOK, view)
		return
	}

	tx, err := api.GtfsDB.DB.BeginTx(ctx, nil)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	defer logging.SafeRollbackWithLogging(tx, api.Logger, "create_chat")

	qtx := queries.WithTx(tx)
	chatID, err := qtx.CreateChat(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	for _, participant := range []int64{userID, input.OtherUserID} {
		if err := qtx.CreateChatParticipant(ctx, chatID, participant); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	view, err := api.chatView(r, chatID, userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, view)
}

// requireChatAccess resolves the chat id path parameter and confirms the
// requester is a participant. A chat the user cannot see reads as missing.
func (api *RestAPI) requireChatAccess(w http.ResponseWriter, r *http.Request, userID int64) (int64, bool) {
	chatID, ok := utils.ExtractInt64FromParams(r, "id")
	if !ok {
		api.badRequestResponse(w, r, "invalid chat id")
		return 0, false
	}

	member, err := api.GtfsDB.Queries.IsChatParticipant(r.Context(), chatID, userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return 0, false
	}
	if !member {
		api.notFoundResponse(w, r, "chat not found")
		return 0, false
	}
	return chatID, true
}

func (api *RestAPI) getChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	chatID, ok := api.requireChatAccess(w, r, userID)
	if !ok {
		return
	}

	view, err := api.chatView(r, chatID, userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, view)
}

func (api *RestAPI) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	chatID, ok := api.requireChatAccess(w, r, userID)
	if !ok {
		return
	}

	messages, err := api.GtfsDB.Queries.ListMessages(r.Context(), chatID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, models.NewMessages(messages))
}

type createMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (api *RestAPI) createMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.contextGetUserID(r)

	chatID, ok := api.requireChatAccess(w, r, userID)
	if !ok {
		return
	}

	var input createMessageRequest
	if err := api.readJSON(w, r, &input); err != nil {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}
	if err := api.validate.Struct(input); err != nil {
		api.validationErrorResponse(w, r, err)
		return
	}

	queries := api.GtfsDB.Queries
	ctx := r.Context()

	messageID, err := queries.CreateMessage(ctx, chatID, userID, input.Content)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if err := queries.TouchChat(ctx, chatID); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	message, err := queries.GetMessage(ctx, messageID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, models.NewMessage(message))
}
