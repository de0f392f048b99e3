package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnledger/backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(profile *models.Profile) error {
	profile.Wallet = models.NormalizeWallet(profile.Wallet)
	return r.db.Create(profile).Error
}

// FindByWallet returns the profile for a wallet, or nil when none exists
func (r *ProfileRepo) FindByWallet(wallet string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("wallet = ?", models.NormalizeWallet(wallet)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
