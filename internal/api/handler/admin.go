package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/promoarcade/snakesladders/internal/api/apierr"
	"github.com/promoarcade/snakesladders/internal/api/request"
	"github.com/promoarcade/snakesladders/internal/api/response"
	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/services/game"
	"github.com/promoarcade/snakesladders/internal/services/grants"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// AdminHandler handles the admin endpoints
type AdminHandler struct {
	controller *game.Controller
	grants     *grants.Service
	auth       *adminauth.Service
	storage    storage.Storage
	clock      clock.Clock
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	controller *game.Controller,
	grantsService *grants.Service,
	authService *adminauth.Service,
	store storage.Storage,
	clk clock.Clock,
) *AdminHandler {
	return &AdminHandler{
		controller: controller,
		grants:     grantsService,
		auth:       authService,
		storage:    store,
		clock:      clk,
	}
}

// Login handles POST /api/v1/admin/login. The endpoint exists so the
// admin frontend can validate credentials before storing them for Basic
// auth on the other admin routes.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username and password are required"))
		return
	}

	if err := h.auth.Login(r.Context(), req.Username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChangePassword handles POST /api/v1/admin/change-password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("current_password and new_password are required"))
		return
	}

	if err := h.auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListPlayers handles GET /api/v1/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")
	if area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area query parameter is required"))
		return
	}

	players, err := h.controller.ListByArea(r.Context(), area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModels(model.NormalizeArea(area), players))
}

// ResetPlayer handles POST /api/v1/admin/players/reset
func (h *AdminHandler) ResetPlayer(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" || req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and area are required"))
		return
	}

	player, err := h.controller.Reset(r.Context(), req.Email, req.Area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// DeletePlayer handles DELETE /api/v1/admin/players
func (h *AdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	area := r.URL.Query().Get("area")

	if email == "" || area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and area query parameters are required"))
		return
	}

	if err := h.controller.Delete(r.Context(), email, area); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Grant handles POST /api/v1/admin/grants
func (h *AdminHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var req request.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area is required"))
		return
	}

	// An omitted email list applies the grant to the whole area
	affected, err := h.grants.Grant(r.Context(), req.Area, req.Amount, req.Emails)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if affected == nil {
		affected = []string{}
	}
	response.JSON(w, http.StatusOK, response.Grant{
		Area:           model.NormalizeArea(req.Area),
		Amount:         req.Amount,
		AffectedEmails: affected,
	})
}

// UndoGrant handles POST /api/v1/admin/grants/undo
func (h *AdminHandler) UndoGrant(w http.ResponseWriter, r *http.Request) {
	var req request.UndoGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Area == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("area is required"))
		return
	}

	undone, err := h.grants.UndoLast(r.Context(), req.Area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UndoneGrantFromRecord(undone))
}

// GetPrizeConfig handles GET /api/v1/admin/areas/{area}/prize
func (h *AdminHandler) GetPrizeConfig(w http.ResponseWriter, r *http.Request) {
	area := model.NormalizeArea(mux.Vars(r)["area"])

	cfg, err := h.storage.GetPrizeConfig(r.Context(), area)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PrizeConfigFromModel(cfg))
}

// PutPrizeConfig handles PUT /api/v1/admin/areas/{area}/prize
func (h *AdminHandler) PutPrizeConfig(w http.ResponseWriter, r *http.Request) {
	area := model.NormalizeArea(mux.Vars(r)["area"])

	var req request.PrizeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.MaxHighTierWinners < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("max_high_tier_winners must not be negative"))
		return
	}

	cfg := &model.AreaPrizeConfig{
		Area:               area,
		MaxHighTierWinners: req.MaxHighTierWinners,
		UpdatedAt:          h.clock.Now(),
	}
	if err := h.storage.SavePrizeConfig(r.Context(), cfg); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PrizeConfigFromModel(cfg))
}
