package database

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/learnledger/backend/models"
)

// ProfileStore owns registered marketplace profiles.
type ProfileStore interface {
	Add(profile *models.Profile) error
	FindByWallet(wallet string) (*models.Profile, error)
}

// ProjectStore owns project records and their lifecycle fields.
type ProjectStore interface {
	Add(project *models.Project) error
	FindByID(id uuid.UUID) (*models.Project, error)
	List(filter ProjectFilter) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

// SubmissionStore owns per-project submission records.
type SubmissionStore interface {
	Add(submission *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
	FindPending(projectID uuid.UUID, freelancerWallet string) (*models.Submission, error)
	ListByProject(projectID uuid.UUID) ([]models.Submission, error)
	Update(submission *models.Submission) error
	Delete(id uuid.UUID) error
}

// SkillStore owns skill definitions and the wallet-to-skill bridge table.
type SkillStore interface {
	GetOrCreate(name, description string) (*models.Skill, error)
	FindBySlug(slug string) (*models.Skill, error)
	AddToUser(wallet string, skillID uuid.UUID) error
	ForUser(wallet string) ([]models.Skill, error)
}

// BalanceStore owns the off-chain balance ledger.
type BalanceStore interface {
	Get(wallet string) (*models.Balance, error)
	// Adjust applies a signed delta to the wallet's balance. A missing row
	// counts as balance zero. When preventNegative is set and the resulting
	// balance would be below zero, the adjustment fails with
	// errs.ErrNegativeBalance and nothing is written.
	Adjust(wallet string, amount decimal.Decimal, preventNegative bool) (*models.Balance, error)
}

// Stores bundles all repositories so multi-store workflows can run against
// either the live database or a transaction-bound copy of it.
type Stores interface {
	Profiles() ProfileStore
	Projects() ProjectStore
	Submissions() SubmissionStore
	Skills() SkillStore
	Balances() BalanceStore
}

// Transactor executes a function with every store bound to one database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise, so multi-store mutations are all-or-nothing.
type Transactor interface {
	Stores
	Transact(fn func(tx Stores) error) error
}

// ProjectFilter is the query shape for ProjectStore.List.
type ProjectFilter struct {
	Status      models.ProjectStatus
	Skill       string
	OwnerWallet string
	MinPrize    *decimal.Decimal
	MaxPrize    *decimal.Decimal
	Search      string
	SortBy      string // "created" (default), "prize" or "name"
	SortDesc    bool
	Limit       int
	Offset      int
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Normalize clamps pagination to the documented bounds and defaults the sort
// column.
func (f *ProjectFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch f.SortBy {
	case "prize", "name", "created":
	default:
		f.SortBy = "created"
	}
	f.OwnerWallet = models.NormalizeWallet(f.OwnerWallet)
}
