package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnledger/backend/models"
)

type SubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db}
}

// Add inserts a new submission into the database
func (r *SubmissionRepo) Add(submission *models.Submission) error {
	submission.FreelancerWallet = models.NormalizeWallet(submission.FreelancerWallet)
	return r.db.Create(submission).Error
}

// FindByID returns a submission by its ID, or nil when none exists
func (r *SubmissionRepo) FindByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindPending returns the freelancer's pending submission for a project, or
// nil when none exists. The oldest pending submission wins when the same
// freelancer submitted more than once.
func (r *SubmissionRepo) FindPending(projectID uuid.UUID, freelancerWallet string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.
		Where("project_id = ? AND freelancer_wallet = ? AND status = ?",
			projectID, models.NormalizeWallet(freelancerWallet), models.SubmissionPending).
		Order("created_at ASC").
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByProject returns all submissions for a project, newest first
func (r *SubmissionRepo) ListByProject(projectID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// Update updates an existing submission in the database
func (r *SubmissionRepo) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

// Delete removes a submission from the database by id
func (r *SubmissionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Submission{}, "id = ?", id).Error
}
