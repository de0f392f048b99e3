package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

// ProjectService owns project mutations: create, owner-gated update/delete,
// assignment and status transitions. Update and delete additionally require
// a wallet signature over the operation.
type ProjectService struct {
	db       database.Transactor
	verifier SignatureVerifier
	logger   zerolog.Logger
}

func NewProjectService(db database.Transactor, verifier SignatureVerifier) *ProjectService {
	return &ProjectService{
		db:       db,
		verifier: verifier,
		logger:   log.With().Str("service", "project").Logger(),
	}
}

// CreateParams is the input for Create.
type CreateParams struct {
	Name             string
	Description      string
	OwnerWallet      string
	PrizeAmount      decimal.Decimal
	RequiredSkills   string
	CompletionSkills string
	RepoURL          string
}

func (s *ProjectService) Create(ctx context.Context, params CreateParams) (*models.Project, error) {
	if params.Name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	if !models.IsValidWallet(params.OwnerWallet) {
		return nil, errs.NewInvalidWalletError(params.OwnerWallet)
	}
	if params.PrizeAmount.IsNegative() {
		return nil, errs.NewInvalidPrizeError("prize amount must be >= 0")
	}

	project := &models.Project{
		Name:             params.Name,
		Description:      params.Description,
		OwnerWallet:      models.NormalizeWallet(params.OwnerWallet),
		PrizeAmount:      params.PrizeAmount,
		Status:           models.ProjectOpen,
		RequiredSkills:   params.RequiredSkills,
		CompletionSkills: params.CompletionSkills,
		RepoURL:          params.RepoURL,
	}
	if err := s.db.Projects().Add(project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	s.logger.Info().
		Str("projectID", project.ID.String()).
		Str("owner", project.OwnerWallet).
		Msg("created project")
	return project, nil
}

// UpdateParams carries the patchable project fields. Nil pointers leave the
// stored value untouched.
type UpdateParams struct {
	Name             *string
	Description      *string
	PrizeAmount      *decimal.Decimal
	RequiredSkills   *string
	CompletionSkills *string
	RepoURL          *string
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, requester, signature, nonce string, params UpdateParams) (*models.Project, error) {
	project, err := s.ownedProject(id, requester)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Verify(ActionProjectUpdate, id.String(), requester, nonce, signature); err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, errs.NewMissingRequiredFieldError("name")
		}
		project.Name = *params.Name
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.PrizeAmount != nil {
		if params.PrizeAmount.IsNegative() {
			return nil, errs.NewInvalidPrizeError("prize amount must be >= 0")
		}
		project.PrizeAmount = *params.PrizeAmount
	}
	if params.RequiredSkills != nil {
		project.RequiredSkills = *params.RequiredSkills
	}
	if params.CompletionSkills != nil {
		project.CompletionSkills = *params.CompletionSkills
	}
	if params.RepoURL != nil {
		project.RepoURL = *params.RepoURL
	}

	if err := s.db.Projects().Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID, requester, signature, nonce string) error {
	if _, err := s.ownedProject(id, requester); err != nil {
		return err
	}
	if err := s.verifier.Verify(ActionProjectDelete, id.String(), requester, nonce, signature); err != nil {
		return err
	}
	if err := s.db.Projects().Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	s.logger.Info().Str("projectID", id.String()).Msg("deleted project")
	return nil
}

// Assign sets the project's freelancer. The project must be open and not
// already assigned. Status is left untouched; closing happens through the
// award workflow.
func (s *ProjectService) Assign(ctx context.Context, id uuid.UUID, freelancerWallet, requester string) (*models.Project, error) {
	if !models.IsValidWallet(freelancerWallet) {
		return nil, errs.NewInvalidWalletError(freelancerWallet)
	}
	project, err := s.ownedProject(id, requester)
	if err != nil {
		return nil, err
	}
	if project.Status != models.ProjectOpen {
		return nil, errs.NewProjectClosedError(string(project.Status))
	}
	if project.AssignedFreelancer != nil && *project.AssignedFreelancer != "" {
		return nil, errs.NewAlreadyAssignedError()
	}

	wallet := models.NormalizeWallet(freelancerWallet)
	project.AssignedFreelancer = &wallet
	if err := s.db.Projects().Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return project, nil
}

// Unassign clears the project's freelancer.
func (s *ProjectService) Unassign(ctx context.Context, id uuid.UUID, requester string) (*models.Project, error) {
	project, err := s.ownedProject(id, requester)
	if err != nil {
		return nil, err
	}
	project.AssignedFreelancer = nil
	if err := s.db.Projects().Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return project, nil
}

// SetStatus moves the project to an explicit status.
func (s *ProjectService) SetStatus(ctx context.Context, id uuid.UUID, requester string, status models.ProjectStatus) (*models.Project, error) {
	if !models.ValidProjectStatus(status) {
		return nil, errs.NewBadRequestErrorWithField("invalid status", "status",
			"status must be one of open, in-progress, closed")
	}
	project, err := s.ownedProject(id, requester)
	if err != nil {
		return nil, err
	}
	project.Status = status
	if err := s.db.Projects().Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return project, nil
}

// ownedProject loads a project and checks the requester is its owner.
func (s *ProjectService) ownedProject(id uuid.UUID, requester string) (*models.Project, error) {
	project, err := s.db.Projects().FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	if !strings.EqualFold(project.OwnerWallet, strings.TrimSpace(requester)) {
		return nil, errs.NewForbiddenError("only the project owner may perform this operation")
	}
	return project, nil
}
