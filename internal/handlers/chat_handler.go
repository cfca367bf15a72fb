// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wellpath/health-advisor/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// CreateConversation starts a new advisor session.
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID uint   `json:"userId"`
		Title  string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	conv, err := h.ChatService.CreateConversation(r.Context(), req.UserID, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "对话创建成功",
		"conversation": map[string]interface{}{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
		},
	})
}

// GetUserConversations lists a user's sessions, most recent activity first.
func (h *ChatHandler) GetUserConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
	if err != nil {
		writeError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	conversations, err := h.ChatService.GetUserConversations(r.Context(), uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

// GetConversationMessages returns the ordered history for a conversation.
func (h *ChatHandler) GetConversationMessages(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid conversation ID", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.GetConversationMessages(r.Context(), uint(conversationID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// SendMessage appends a user turn and returns it together with the
// assistant turn (genuine or error-flagged).
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid conversation ID", http.StatusBadRequest)
		return
	}

	var req struct {
		UserID    uint   `json:"userId"`
		Content   string `json:"content"`
		ModelType string `json:"modelType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	result, err := h.ChatService.SendMessage(r.Context(), uint(conversationID), req.UserID, req.Content, req.ModelType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UpdateTitle renames a conversation.
func (h *ChatHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid conversation ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	conv, err := h.ChatService.UpdateTitle(r.Context(), uint(conversationID), req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "对话标题更新成功",
		"conversation": conv,
	})
}

// DeleteConversation removes a conversation and all its messages.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid conversation ID", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.DeleteConversation(r.Context(), uint(conversationID)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "对话删除成功"})
}

// ListModels returns the configured AI providers, credentials omitted.
func (h *ChatHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.ChatService.ListProviders()})
}
