package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

// RegistrationService creates marketplace profiles and seeds the user-skill
// bridge table from the registration's free-text skills, so downstream skill
// gating only ever consults the bridge table.
type RegistrationService struct {
	db     database.Transactor
	logger zerolog.Logger
}

func NewRegistrationService(db database.Transactor) *RegistrationService {
	return &RegistrationService{
		db:     db,
		logger: log.With().Str("service", "registration").Logger(),
	}
}

// RegisterParams is the input for Register.
type RegisterParams struct {
	Wallet string
	Role   models.ProfileRole
	Name   string
	Skills string // comma-separated, optional
}

func (s *RegistrationService) Register(ctx context.Context, params RegisterParams) (*models.Profile, error) {
	if !models.IsValidWallet(params.Wallet) {
		return nil, errs.NewInvalidWalletError(params.Wallet)
	}
	if params.Role != models.RoleCompany && params.Role != models.RoleFreelancer {
		return nil, errs.NewBadRequestErrorWithField("invalid role", "role",
			"role must be \"company\" or \"freelancer\"")
	}
	if params.Name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}

	wallet := models.NormalizeWallet(params.Wallet)
	existing, err := s.db.Profiles().FindByWallet(wallet)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	if existing != nil {
		return nil, errs.NewAlreadyExists("profile")
	}

	profile := &models.Profile{
		Wallet: wallet,
		Role:   params.Role,
		Name:   params.Name,
		Skills: params.Skills,
	}

	err = s.db.Transact(func(tx database.Stores) error {
		if err := tx.Profiles().Add(profile); err != nil {
			return errs.NewDatabaseError("create", "profile", err)
		}
		for _, name := range models.SplitSkills(params.Skills) {
			skill, err := tx.Skills().GetOrCreate(name, "")
			if err != nil {
				return errs.NewDatabaseError("create", "skill", err)
			}
			if err := tx.Skills().AddToUser(wallet, skill.ID); err != nil {
				// Same skill listed twice in the registration input.
				if errs.IsConflict(err) {
					continue
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("wallet", wallet).
		Str("role", string(params.Role)).
		Msg("registered profile")
	return profile, nil
}

// Skills returns the bridge-table skills for a registered wallet.
func (s *RegistrationService) Skills(ctx context.Context, wallet string) ([]models.Skill, error) {
	profile, err := s.db.Profiles().FindByWallet(wallet)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	if profile == nil {
		return nil, errs.NewNotFound("profile")
	}
	skills, err := s.db.Skills().ForUser(wallet)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user skills", err)
	}
	return skills, nil
}
