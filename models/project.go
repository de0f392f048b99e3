package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectClosed     ProjectStatus = "closed"
)

// ValidProjectStatus reports whether s is one of the known statuses.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectClosed:
		return true
	}
	return false
}

// Project represents a posted project with its prize and skill requirements.
// RequiredSkills and CompletionSkills are comma-separated skill names; the
// submission gate resolves them against the user-skill bridge table.
type Project struct {
	ID                 uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name               string          `json:"name" db:"name" gorm:"type:text;not null"`
	Description        string          `json:"description" db:"description" gorm:"type:text"`
	PrizeAmount        decimal.Decimal `json:"prize_amount" db:"prize_amount" gorm:"type:numeric;not null"`
	Status             ProjectStatus   `json:"status" db:"status" gorm:"type:text;not null;index:idx_project_status"`
	OwnerWallet        string          `json:"owner_wallet" db:"owner_wallet" gorm:"type:text;not null;index:idx_project_owner"`
	RequiredSkills     string          `json:"required_skills,omitempty" db:"required_skills" gorm:"type:text"`
	CompletionSkills   string          `json:"completion_skills,omitempty" db:"completion_skills" gorm:"type:text"`
	AssignedFreelancer *string         `json:"assigned_freelancer,omitempty" db:"assigned_freelancer" gorm:"type:text"`
	RepoURL            string          `json:"repo_url,omitempty" db:"repo_url" gorm:"type:text"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// RequiredSkillList splits the comma-separated requirement string into
// trimmed, non-empty skill names.
func (p Project) RequiredSkillList() []string {
	return SplitSkills(p.RequiredSkills)
}

// SplitSkills parses a comma-separated skills string into trimmed tokens,
// dropping empties.
func SplitSkills(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
