package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

// SubmissionService owns the skill-gated submission workflow: create with
// its ordered guards, submitter-only PR-link patches, owner-or-submitter
// deletes and rejection.
type SubmissionService struct {
	db       database.Transactor
	verifier SignatureVerifier
	logger   zerolog.Logger
}

func NewSubmissionService(db database.Transactor, verifier SignatureVerifier) *SubmissionService {
	return &SubmissionService{
		db:       db,
		verifier: verifier,
		logger:   log.With().Str("service", "submission").Logger(),
	}
}

// SubmitParams is the input for Create.
type SubmitParams struct {
	ProjectID        uuid.UUID
	FreelancerWallet string
	PRLink           string
	SubmissionText   string
}

// Create inserts a pending submission after the gating checks pass, in
// order: project exists, project open, not the owner's own project, every
// required skill present in the freelancer's bridge-table skills.
func (s *SubmissionService) Create(ctx context.Context, params SubmitParams) (*models.Submission, error) {
	if !models.IsValidWallet(params.FreelancerWallet) {
		return nil, errs.NewInvalidWalletError(params.FreelancerWallet)
	}
	wallet := models.NormalizeWallet(params.FreelancerWallet)

	project, err := s.db.Projects().FindByID(params.ProjectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	if project.Status != models.ProjectOpen {
		return nil, errs.NewProjectClosedError(string(project.Status))
	}
	if strings.EqualFold(project.OwnerWallet, wallet) {
		return nil, errs.NewSelfSubmissionError()
	}

	if required := project.RequiredSkillList(); len(required) > 0 {
		owned, err := s.db.Skills().ForUser(wallet)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "user skills", err)
		}
		ownedSlugs := make(map[string]struct{}, len(owned))
		for _, sk := range owned {
			ownedSlugs[sk.Slug] = struct{}{}
		}
		for _, name := range required {
			if _, ok := ownedSlugs[strings.ToLower(name)]; !ok {
				return nil, errs.NewMissingSkillError(name)
			}
		}
	}

	ref := ParsePullRequestURL(params.PRLink)
	submission := &models.Submission{
		ProjectID:        project.ID,
		FreelancerWallet: wallet,
		PRLink:           params.PRLink,
		SubmissionText:   params.SubmissionText,
		Status:           models.SubmissionPending,
		RepoOwner:        ref.Owner,
		RepoName:         ref.Repo,
		PRNumber:         ref.Number,
	}
	if err := s.db.Submissions().Add(submission); err != nil {
		return nil, errs.NewDatabaseError("create", "submission", err)
	}

	s.logger.Info().
		Str("submissionID", submission.ID.String()).
		Str("projectID", project.ID.String()).
		Str("freelancer", wallet).
		Msg("created submission")
	return submission, nil
}

// UpdateLink patches the PR link. Only the submitter may do this.
func (s *SubmissionService) UpdateLink(ctx context.Context, id uuid.UUID, requester, prLink string) (*models.Submission, error) {
	submission, err := s.db.Submissions().FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "submission", err)
	}
	if submission == nil {
		return nil, errs.NewNotFound("submission")
	}
	if !strings.EqualFold(submission.FreelancerWallet, strings.TrimSpace(requester)) {
		return nil, errs.NewForbiddenError("only the submitter may update a submission")
	}

	ref := ParsePullRequestURL(prLink)
	submission.PRLink = prLink
	submission.RepoOwner = ref.Owner
	submission.RepoName = ref.Repo
	submission.PRNumber = ref.Number
	if err := s.db.Submissions().Update(submission); err != nil {
		return nil, errs.NewDatabaseError("update", "submission", err)
	}
	return submission, nil
}

// Delete removes a submission. The requester must be the submitter or the
// project owner, and must sign the delete.
func (s *SubmissionService) Delete(ctx context.Context, id uuid.UUID, requester, signature, nonce string) error {
	submission, err := s.db.Submissions().FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "submission", err)
	}
	if submission == nil {
		return errs.NewNotFound("submission")
	}

	requester = strings.TrimSpace(requester)
	allowed := strings.EqualFold(submission.FreelancerWallet, requester)
	if !allowed {
		project, err := s.db.Projects().FindByID(submission.ProjectID)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		allowed = project != nil && strings.EqualFold(project.OwnerWallet, requester)
	}
	if !allowed {
		return errs.NewForbiddenError("only the submitter or project owner may delete a submission")
	}

	if err := s.verifier.Verify(ActionSubmissionDelete, id.String(), requester, nonce, signature); err != nil {
		return err
	}
	if err := s.db.Submissions().Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "submission", err)
	}
	s.logger.Info().Str("submissionID", id.String()).Msg("deleted submission")
	return nil
}

// Reject marks a pending submission rejected. Only the project owner may
// reject.
func (s *SubmissionService) Reject(ctx context.Context, id uuid.UUID, requester, reason string) (*models.Submission, error) {
	submission, err := s.db.Submissions().FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "submission", err)
	}
	if submission == nil {
		return nil, errs.NewNotFound("submission")
	}
	project, err := s.db.Projects().FindByID(submission.ProjectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	if !strings.EqualFold(project.OwnerWallet, strings.TrimSpace(requester)) {
		return nil, errs.NewForbiddenError("only the project owner may reject a submission")
	}
	if submission.Status != models.SubmissionPending {
		return nil, errs.NewAlreadyAwardedError(string(submission.Status))
	}

	submission.Status = models.SubmissionRejected
	submission.IsMerged = false
	if err := s.db.Submissions().Update(submission); err != nil {
		return nil, errs.NewDatabaseError("update", "submission", err)
	}

	s.logger.Info().
		Str("submissionID", id.String()).
		Str("reason", reason).
		Msg("rejected submission")
	return submission, nil
}
