package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
	"github.com/learnledger/backend/services"
)

type profileHandler struct {
	responder    Responder
	logger       zerolog.Logger
	registration *services.RegistrationService
	db           database.Stores
}

func newProfileHandler(registration *services.RegistrationService, db database.Stores) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		registration: registration,
		db:           db,
	}
}

type registerRequest struct {
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role"`
	Name          string `json:"name"`
	Skills        string `json:"skills,omitempty"`
}

// register creates a company or freelancer profile
// @Summary Register profile
// @Description Registers a wallet as a company or freelancer and migrates its skills into the skill registry
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body registerRequest true "Profile data"
// @Success 201 {object} models.Profile "Created profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid wallet or role"
// @Failure 409 {object} ErrorResponse "Conflict - Profile already exists"
// @Router /register [post]
func (h profileHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		profile, err := h.registration.Register(r.Context(), services.RegisterParams{
			Wallet: req.WalletAddress,
			Role:   models.ProfileRole(req.Role),
			Name:   req.Name,
			Skills: req.Skills,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "profile registered", profile)
	}
}

// getProfile retrieves the profile for a wallet
// @Summary Get profile
// @Tags Profiles
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {object} models.Profile "Profile"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /profile/{wallet} [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet := chi.URLParam(r, "wallet")
		if !models.IsValidWallet(wallet) {
			h.responder.WriteError(w, errs.NewInvalidWalletError(wallet))
			return
		}

		profile, err := h.db.Profiles().FindByWallet(wallet)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFound("profile"))
			return
		}

		h.responder.WriteSuccess(w, "", profile)
	}
}

// getProfileSkills retrieves the bridge-table skills for a wallet
func (h profileHandler) getProfileSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet := chi.URLParam(r, "wallet")
		if !models.IsValidWallet(wallet) {
			h.responder.WriteError(w, errs.NewInvalidWalletError(wallet))
			return
		}

		skills, err := h.registration.Skills(r.Context(), wallet)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "", skills)
	}
}
