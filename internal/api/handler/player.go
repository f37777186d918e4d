package handler

import (
	"encoding/json"
	"net/http"

	"github.com/promoarcade/snakesladders/internal/api/apierr"
	"github.com/promoarcade/snakesladders/internal/api/request"
	"github.com/promoarcade/snakesladders/internal/api/response"
	"github.com/promoarcade/snakesladders/internal/services/game"
)

// PlayerHandler handles player-facing endpoints
type PlayerHandler struct {
	controller *game.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *game.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}
	if req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area is required"))
		return
	}

	player, err := h.controller.Register(r.Context(), req.Email, req.Area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Login handles POST /api/v1/players/login
//
// There is no player password; login is a lookup that tells the frontend
// whether the email is registered in the area.
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}
	if req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area is required"))
		return
	}

	player, err := h.controller.GetState(r.Context(), req.Email, req.Area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// State handles GET /api/v1/players/state
func (h *PlayerHandler) State(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	area := r.URL.Query().Get("area")

	if email == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email query parameter is required"))
		return
	}
	if area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area query parameter is required"))
		return
	}

	player, err := h.controller.GetState(r.Context(), email, area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Roll handles POST /api/v1/players/roll
func (h *PlayerHandler) Roll(w http.ResponseWriter, r *http.Request) {
	var req request.RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}
	if req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area is required"))
		return
	}

	outcome, err := h.controller.Roll(r.Context(), req.Email, req.Area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RollFromOutcome(outcome))
}
