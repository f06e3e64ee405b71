package handler

import (
	"net/http"

	"github.com/mcoot/batepapo/internal/api/middleware"
	"github.com/mcoot/batepapo/internal/api/request"
	"github.com/mcoot/batepapo/internal/api/response"
	"github.com/mcoot/batepapo/internal/services/exchange"
	"github.com/mcoot/batepapo/internal/validation"
)

// MessageHandler handles message endpoints
type MessageHandler struct {
	exchange *exchange.Service
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(exchange *exchange.Service) *MessageHandler {
	return &MessageHandler{
		exchange: exchange,
	}
}

// Post handles POST /messages. The sender comes from the User header.
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	values, mistyped, err := decodeFields(r, "to", "text", "type")
	if err != nil {
		WriteError(w, err)
		return
	}

	req := request.PostMessageRequest{To: values["to"], Text: values["text"], Type: values["type"]}
	from := middleware.GetUser(r.Context())
	if len(mistyped) > 0 {
		schema := validation.MessageSchema{From: from, To: req.To, Text: req.Text, Type: req.Type}
		WriteError(w, validation.Check(schema, mistyped...))
		return
	}

	if err := h.exchange.Post(r.Context(), from, req.To, req.Text, req.Type); err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w)
}

// History handles GET /messages?limit=N
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	var limit *string
	query := r.URL.Query()
	if query.Has("limit") {
		raw := query.Get("limit")
		limit = &raw
	}

	messages, err := h.exchange.History(r.Context(), middleware.GetUser(r.Context()), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessagesFromModel(messages))
}
