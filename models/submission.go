package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the state machine for a submission:
// pending -> approved | rejected.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a freelancer's PR-backed entry for a project. RepoOwner,
// RepoName and PRNumber are parsed best-effort from the PR link and default
// to "unknown"/0 when the link does not look like a pull request URL.
type Submission struct {
	ID               uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID        uuid.UUID        `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_submission_project"`
	FreelancerWallet string           `json:"freelancer_wallet" db:"freelancer_wallet" gorm:"type:text;not null;index:idx_submission_freelancer"`
	PRLink           string           `json:"pr_link,omitempty" db:"pr_link" gorm:"type:text"`
	SubmissionText   string           `json:"submission_text,omitempty" db:"submission_text" gorm:"type:text"`
	Status           SubmissionStatus `json:"status" db:"status" gorm:"type:text;not null;index:idx_submission_status"`
	IsMerged         bool             `json:"is_merged" db:"is_merged" gorm:"not null;default:false"`
	RepoOwner        string           `json:"repo_owner,omitempty" db:"repo_owner" gorm:"type:text"`
	RepoName         string           `json:"repo_name,omitempty" db:"repo_name" gorm:"type:text"`
	PRNumber         int              `json:"pr_number" db:"pr_number" gorm:"not null;default:0"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
