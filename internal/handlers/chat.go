package handlers

import (
	"net/http"
	"time"

	"PolicyDesk/internal/service"

	"go.uber.org/zap"
)

// ChatHandler - запросы к документам и история.
type ChatHandler struct {
	Service *service.ChatService
	Logger  *zap.SugaredLogger
}

func NewChatHandler(svc *service.ChatService, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{Service: svc, Logger: logger}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req service.ChatRequest
	if !decode(w, r, &req) {
		return
	}
	ans, err := h.Service.Ask(r.Context(), req)
	if err != nil {
		fail(w, h.Logger, "Chat", err, "Chat failed")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		service.ChatAnswer
		DurationS float64 `json:"duration_s"`
	}{ans, seconds(start)})
}

type historyResponse struct {
	History   []service.HistoryView `json:"history"`
	DurationS float64               `json:"duration_s"`
}

// History: ?user_id= - своя история, ?is_admin=true - общая.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	list, err := h.Service.History(r.Context(), queryInt(r, "user_id"), queryBool(r, "is_admin"))
	if err != nil {
		fail(w, h.Logger, "History", err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{History: list, DurationS: seconds(start)})
}

func (h *ChatHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := h.Service.UserHistory(r.Context(), id)
	if err != nil {
		fail(w, h.Logger, "UserHistory", err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{History: list, DurationS: seconds(start)})
}

func (h *ChatHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.Service.DeleteHistory(r.Context(), queryInt(r, "user_id"), id, queryBool(r, "is_admin"))
	if err != nil {
		fail(w, h.Logger, "DeleteHistory", err, "Failed to delete history")
		return
	}
	writeMessage(w, http.StatusOK, "History deleted successfully")
}
