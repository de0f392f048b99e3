package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnledger/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	project.OwnerWallet = models.NormalizeWallet(project.OwnerWallet)
	return r.db.Create(project).Error
}

// FindByID returns a project by its ID, or nil when none exists
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns a filtered, sorted page of projects plus the total match count
func (r *ProjectRepo) List(filter ProjectFilter) ([]models.Project, int64, error) {
	filter.Normalize()

	q := r.db.Model(&models.Project{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OwnerWallet != "" {
		q = q.Where("owner_wallet = ?", filter.OwnerWallet)
	}
	if filter.Skill != "" {
		q = q.Where("LOWER(required_skills) LIKE ?", "%"+strings.ToLower(filter.Skill)+"%")
	}
	if filter.MinPrize != nil {
		q = q.Where("prize_amount >= ?", filter.MinPrize)
	}
	if filter.MaxPrize != nil {
		q = q.Where("prize_amount <= ?", filter.MaxPrize)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	var column string
	switch filter.SortBy {
	case "prize":
		column = "prize_amount"
	case "name":
		column = "name"
	default:
		column = "created_at"
	}

	var projects []models.Project
	err := q.Order(column + " " + direction).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&projects).Error
	return projects, total, err
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
