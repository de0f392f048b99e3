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

// AwardService is the single place where a submission is approved and paid.
// Both entry points (owner approval and the PR-merge trigger) converge on
// one transition executed inside one transaction: submission -> approved,
// project -> closed + freelancer assigned, balance credited by the prize.
// If any step fails the whole transition rolls back, so no partially-awarded
// state is ever visible.
type AwardService struct {
	db       database.Transactor
	verifier SignatureVerifier
	logger   zerolog.Logger
}

func NewAwardService(db database.Transactor, verifier SignatureVerifier) *AwardService {
	return &AwardService{
		db:       db,
		verifier: verifier,
		logger:   log.With().Str("service", "award").Logger(),
	}
}

// AwardResult reports the post-transition state.
type AwardResult struct {
	Submission *models.Submission `json:"submission"`
	Project    *models.Project    `json:"project"`
	Credited   *models.Balance    `json:"credited,omitempty"`
}

// Approve transitions a pending submission to approved on behalf of the
// project owner. The approver signs the operation.
func (s *AwardService) Approve(ctx context.Context, submissionID uuid.UUID, approver, signature, nonce string) (*AwardResult, error) {
	if err := s.verifier.Verify(ActionApprove, submissionID.String(), approver, nonce, signature); err != nil {
		return nil, err
	}

	var result *AwardResult
	err := s.db.Transact(func(tx database.Stores) error {
		submission, err := tx.Submissions().FindByID(submissionID)
		if err != nil {
			return errs.NewDatabaseError("find", "submission", err)
		}
		if submission == nil {
			return errs.NewNotFound("submission")
		}
		project, err := tx.Projects().FindByID(submission.ProjectID)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return errs.NewNotFound("project")
		}
		if !strings.EqualFold(project.OwnerWallet, strings.TrimSpace(approver)) {
			return errs.NewForbiddenError("only the project owner may approve a submission")
		}

		result, err = s.award(tx, project, submission)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submissionID", submissionID.String()).
		Str("freelancer", result.Submission.FreelancerWallet).
		Str("prize", result.Project.PrizeAmount.String()).
		Msg("approved submission")
	return result, nil
}

// AutoAward runs the same transition for the PR-merge trigger, keyed by
// project and freelancer. The project must carry a positive prize; the
// caller is authorized upstream by the webhook secret.
func (s *AwardService) AutoAward(ctx context.Context, projectID uuid.UUID, freelancerWallet string) (*AwardResult, error) {
	if !models.IsValidWallet(freelancerWallet) {
		return nil, errs.NewInvalidWalletError(freelancerWallet)
	}

	var result *AwardResult
	err := s.db.Transact(func(tx database.Stores) error {
		project, err := tx.Projects().FindByID(projectID)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return errs.NewNotFound("project")
		}
		if project.Status != models.ProjectOpen {
			return errs.NewProjectClosedError(string(project.Status))
		}
		if !project.PrizeAmount.IsPositive() {
			return errs.NewInvalidPrizeError("project has no prize to award")
		}

		submission, err := tx.Submissions().FindPending(projectID, freelancerWallet)
		if err != nil {
			return errs.NewDatabaseError("find", "submission", err)
		}
		if submission == nil {
			return errs.NewNotFound("pending submission")
		}

		result, err = s.award(tx, project, submission)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectID", projectID.String()).
		Str("freelancer", result.Submission.FreelancerWallet).
		Msg("auto-awarded on PR merge")
	return result, nil
}

// award performs the atomic transition. Callers must already hold a
// transaction; the idempotency guards re-check state inside it so two
// concurrent approvals cannot both pay out.
func (s *AwardService) award(tx database.Stores, project *models.Project, submission *models.Submission) (*AwardResult, error) {
	if submission.Status != models.SubmissionPending {
		return nil, errs.NewAlreadyAwardedError(string(submission.Status))
	}
	if project.Status != models.ProjectOpen {
		return nil, errs.NewProjectClosedError(string(project.Status))
	}

	submission.Status = models.SubmissionApproved
	submission.IsMerged = true
	if err := tx.Submissions().Update(submission); err != nil {
		return nil, errs.NewDatabaseError("update", "submission", err)
	}

	wallet := submission.FreelancerWallet
	project.Status = models.ProjectClosed
	project.AssignedFreelancer = &wallet
	if err := tx.Projects().Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}

	result := &AwardResult{Submission: submission, Project: project}
	if project.PrizeAmount.IsPositive() {
		credited, err := tx.Balances().Adjust(wallet, project.PrizeAmount, true)
		if err != nil {
			return nil, err
		}
		result.Credited = credited
	}
	return result, nil
}
