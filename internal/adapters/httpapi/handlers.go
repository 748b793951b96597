package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/example/barter/internal/ctxutil"
	"github.com/example/barter/internal/logger"
	"github.com/example/barter/internal/ports/primary"
)

type sendMessageBody struct {
	RecipientID int64  `json:"recipient_id"`
	Text        string `json:"text"`
	OfferID     *int64 `json:"offer_id,omitempty"`
}

type markReadBody struct {
	IDs []int64 `json:"ids"`
}

// decodeBody reads a size-capped JSON body into v and reports a 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// POST /api/messages
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request, userID int64) {
	var body sendMessageBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	msg, err := s.messages.Send(r.Context(), primary.SendMessageRequest{
		SenderID:    userID,
		RecipientID: body.RecipientID,
		Text:        body.Text,
		OfferID:     body.OfferID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// POST /api/messages/read
func (s *Server) markRead(w http.ResponseWriter, r *http.Request, userID int64) {
	var body markReadBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	updated, err := s.messages.MarkRead(r.Context(), body.IDs, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// DELETE /api/messages/{id}
func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request, userID int64) {
	messageID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.messages.DeleteMessage(r.Context(), messageID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/conversations/{partnerID}?page=&page_size=
func (s *Server) viewConversation(w http.ResponseWriter, r *http.Request, userID int64) {
	partnerID, ok := pathID(w, r, "partnerID")
	if !ok {
		return
	}
	page, ok := queryInt(w, r, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(w, r, "page_size", 0)
	if !ok {
		return
	}

	result, err := s.messages.ViewConversation(r.Context(), primary.HistoryRequest{
		UserA:    userID,
		UserB:    partnerID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/conversations/{partnerID}/new?after=
func (s *Server) pollConversation(w http.ResponseWriter, r *http.Request, userID int64) {
	partnerID, ok := pathID(w, r, "partnerID")
	if !ok {
		return
	}
	after, ok := queryInt(w, r, "after", 0)
	if !ok {
		return
	}

	messages, err := s.messages.PollConversation(r.Context(), userID, partnerID, int64(after))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []*primary.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// DELETE /api/conversations/{partnerID}
func (s *Server) clearConversation(w http.ResponseWriter, r *http.Request, userID int64) {
	partnerID, ok := pathID(w, r, "partnerID")
	if !ok {
		return
	}

	removed, err := s.messages.ClearConversation(r.Context(), primary.ClearConversationRequest{
		UserA:       userID,
		UserB:       partnerID,
		RequesterID: userID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": removed})
}

// GET /api/dialogs
func (s *Server) listDialogs(w http.ResponseWriter, r *http.Request, userID int64) {
	dialogs, err := s.messages.ListDialogs(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if dialogs == nil {
		dialogs = []*primary.DialogSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"dialogs": dialogs})
}

// GET /api/unread_count answers anonymous callers with zero.
func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]int{"count": 0})
		return
	}

	count, err := s.messages.UnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
