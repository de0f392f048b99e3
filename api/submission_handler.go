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
	"github.com/learnledger/backend/services"
)

type submissionHandler struct {
	responder   Responder
	logger      zerolog.Logger
	submissions *services.SubmissionService
	awards      *services.AwardService
	db          database.Stores
}

func newSubmissionHandler(submissions *services.SubmissionService, awards *services.AwardService, db database.Stores) submissionHandler {
	logger := log.With().Str("handlerName", "submissionHandler").Logger()

	return submissionHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		submissions: submissions,
		awards:      awards,
		db:          db,
	}
}

type createSubmissionRequest struct {
	ProjectID        uuid.UUID `json:"projectId"`
	FreelancerWallet string    `json:"freelancerWallet"`
	SubmissionText   string    `json:"submissionText,omitempty"`
	GithubLink       string    `json:"githubLink,omitempty"`
}

// createSubmission submits a PR link against an open project
// @Summary Create submission
// @Description Creates a pending submission after the skill gate passes
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission body createSubmissionRequest true "Submission data"
// @Success 201 {object} models.Submission "Created submission"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 403 {object} ErrorResponse "Forbidden - Self submission"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 409 {object} ErrorResponse "Conflict - Project closed or missing skill"
// @Router /submissions/create [post]
func (h submissionHandler) createSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode submission request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("projectId"))
			return
		}

		submission, err := h.submissions.Create(r.Context(), services.SubmitParams{
			ProjectID:        req.ProjectID,
			FreelancerWallet: req.FreelancerWallet,
			PRLink:           req.GithubLink,
			SubmissionText:   req.SubmissionText,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "submission created", submission)
	}
}

type approveSubmissionRequest struct {
	SubmissionID  uuid.UUID `json:"submissionId"`
	CompanyWallet string    `json:"walletAddress"`
	Signature     string    `json:"signature"`
	Nonce         string    `json:"nonce"`
}

// approveSubmission approves a pending submission and pays out the prize.
// The close + assign + credit happen in one transaction: either all three
// land or none do.
// @Summary Approve submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param approval body approveSubmissionRequest true "Approval data"
// @Success 200 {object} services.AwardResult "Award result"
// @Failure 401 {object} ErrorResponse "Unauthorized - Bad signature"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Failure 409 {object} ErrorResponse "Conflict - Already resolved"
// @Router /submissions/approve [post]
func (h submissionHandler) approveSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approveSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode approval request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.SubmissionID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("submissionId"))
			return
		}

		result, err := h.awards.Approve(r.Context(), req.SubmissionID, req.CompanyWallet, req.Signature, req.Nonce)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "submission approved", result)
	}
}

type deleteSubmissionRequest struct {
	SubmissionID  uuid.UUID `json:"submissionId"`
	WalletAddress string    `json:"walletAddress"`
	Signature     string    `json:"signature"`
	Nonce         string    `json:"nonce"`
}

// deleteSubmission hard-deletes a submission. Submitter or project owner
// only, signature-verified.
func (h submissionHandler) deleteSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode delete request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.SubmissionID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("submissionId"))
			return
		}

		if err := h.submissions.Delete(r.Context(), req.SubmissionID, req.WalletAddress, req.Signature, req.Nonce); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "submission deleted successfully", nil)
	}
}

type updateSubmissionRequest struct {
	WalletAddress string `json:"walletAddress"`
	GithubLink    string `json:"githubLink"`
}

// updateSubmission patches the PR link. Submitter-only.
func (h submissionHandler) updateSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := submissionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		submission, err := h.submissions.UpdateLink(r.Context(), submissionID, req.WalletAddress, req.GithubLink)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "submission updated", submission)
	}
}

type rejectSubmissionRequest struct {
	WalletAddress string `json:"walletAddress"`
	Reason        string `json:"reason,omitempty"`
}

// rejectSubmission marks a pending submission rejected. Owner-only.
func (h submissionHandler) rejectSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := submissionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req rejectSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		submission, err := h.submissions.Reject(r.Context(), submissionID, req.WalletAddress, req.Reason)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "submission rejected", submission)
	}
}

// listByProject lists a project's submissions, newest first
func (h submissionHandler) listByProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submissions, err := h.db.Submissions().ListByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "submissions", err))
			return
		}

		h.responder.WriteSuccess(w, "", submissions)
	}
}

func submissionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "submissionID")
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing submissionID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid submissionID")
	}
	return id, nil
}
