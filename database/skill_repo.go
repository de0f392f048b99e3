package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// GetOrCreate resolves a skill by its case-insensitive name, inserting it if
// absent. The slug column carries a unique constraint and the insert uses
// on-conflict-do-nothing, so two concurrent calls with the same new name
// still converge on a single row.
func (r *SkillRepo) GetOrCreate(name, description string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	slug := strings.ToLower(name)

	skill := models.Skill{Name: name, Slug: slug, Description: description}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&skill).Error
	if err != nil {
		return nil, err
	}

	return r.FindBySlug(slug)
}

// FindBySlug returns the skill with the given normalized name, or nil
func (r *SkillRepo) FindBySlug(slug string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// AddToUser inserts a bridge row granting the skill to the wallet. A wallet
// that already has the skill gets a conflict error.
func (r *SkillRepo) AddToUser(wallet string, skillID uuid.UUID) error {
	wallet = models.NormalizeWallet(wallet)
	if wallet == "" {
		return errs.NewMissingRequiredFieldError("wallet_address")
	}

	link := models.UserSkill{Wallet: wallet, SkillID: skillID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet"}, {Name: "skill_id"}},
		DoNothing: true,
	}).Create(&link)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewConflictError("user already has skill")
	}
	return nil
}

// ForUser returns the skills granted to a wallet via the bridge table. The
// bridge table is the single source of truth; free-text profile skills are
// migrated into it at registration time.
func (r *SkillRepo) ForUser(wallet string) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Model(&models.Skill{}).
		Joins("JOIN user_skills ON user_skills.skill_id = skills.id").
		Where("user_skills.wallet = ?", models.NormalizeWallet(wallet)).
		Order("skills.slug ASC").
		Find(&skills).Error
	return skills, err
}
