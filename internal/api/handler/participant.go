package handler

import (
	"net/http"

	"github.com/mcoot/batepapo/internal/api/request"
	"github.com/mcoot/batepapo/internal/api/response"
	"github.com/mcoot/batepapo/internal/services/registry"
	"github.com/mcoot/batepapo/internal/validation"
)

// ParticipantHandler handles participant endpoints
type ParticipantHandler struct {
	registry *registry.Service
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(registry *registry.Service) *ParticipantHandler {
	return &ParticipantHandler{
		registry: registry,
	}
}

// Register handles POST /participants
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	values, mistyped, err := decodeFields(r, "name")
	if err != nil {
		WriteError(w, err)
		return
	}

	req := request.RegisterParticipantRequest{Name: values["name"]}
	if len(mistyped) > 0 {
		WriteError(w, validation.Check(validation.ParticipantSchema{Name: req.Name}, mistyped...))
		return
	}

	if err := h.registry.Register(r.Context(), req.Name); err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w)
}

// List handles GET /participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.registry.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantsFromModel(participants))
}
