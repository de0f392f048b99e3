package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Stores
}

func newSkillHandler(db database.Stores) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

type createSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// createSkill resolves a skill by case-insensitive name, creating it if absent
// @Summary Get or create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body createSkillRequest true "Skill data"
// @Success 200 {object} models.Skill "Resolved skill"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing name"
// @Router /skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSkillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		skill, err := h.db.Skills().GetOrCreate(req.Name, req.Description)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "", skill)
	}
}

// getSkill retrieves a skill by its normalized name
func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, err := h.db.Skills().FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFound("skill"))
			return
		}

		h.responder.WriteSuccess(w, "", skill)
	}
}

type addSkillRequest struct {
	SkillID uuid.UUID `json:"skillId"`
	Name    string    `json:"name,omitempty"`
}

// addSkillToUser grants a skill to a wallet via the bridge table. Accepts
// either a skill id or a name (resolved get-or-create).
func (h skillHandler) addSkillToUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet := chi.URLParam(r, "wallet")
		if !models.IsValidWallet(wallet) {
			h.responder.WriteError(w, errs.NewInvalidWalletError(wallet))
			return
		}

		var req addSkillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode add-skill request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		skillID := req.SkillID
		if skillID == uuid.Nil {
			if req.Name == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("skillId"))
				return
			}
			skill, err := h.db.Skills().GetOrCreate(req.Name, "")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			skillID = skill.ID
		}

		if err := h.db.Skills().AddToUser(wallet, skillID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "skill added", nil)
	}
}
