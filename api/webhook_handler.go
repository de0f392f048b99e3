package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/services"
)

type webhookHandler struct {
	responder Responder
	logger    zerolog.Logger
	awards    *services.AwardService
	secret    string
}

func newWebhookHandler(awards *services.AwardService, secret string) webhookHandler {
	logger := log.With().Str("handlerName", "webhookHandler").Logger()

	return webhookHandler{
		responder: NewResponder(logger),
		logger:    logger,
		awards:    awards,
		secret:    secret,
	}
}

type prMergedRequest struct {
	ProjectID        uuid.UUID `json:"projectId"`
	FreelancerWallet string    `json:"freelancerWallet"`
}

// prMerged is the PR-merge trigger. It runs the same transactional award
// transition as owner approval, authorized by the shared webhook secret.
func (h webhookHandler) prMerged() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.secret == "" {
			h.responder.WriteError(w, errs.NewForbiddenError("webhook endpoint is disabled"))
			return
		}
		provided := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid webhook secret"))
			return
		}

		var req prMergedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode webhook request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("projectId"))
			return
		}

		result, err := h.awards.AutoAward(r.Context(), req.ProjectID, req.FreelancerWallet)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "submission auto-awarded", result)
	}
}
