package database

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

type BalanceRepo struct {
	db *gorm.DB
}

func NewBalanceRepo(db *gorm.DB) *BalanceRepo {
	return &BalanceRepo{db}
}

// Get returns the balance row for a wallet, or nil when none exists
func (r *BalanceRepo) Get(wallet string) (*models.Balance, error) {
	var balance models.Balance
	err := r.db.Where("wallet = ?", models.NormalizeWallet(wallet)).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Adjust applies a signed delta as a single server-side update
// (balance = balance + delta) so concurrent adjustments for the same wallet
// cannot lose updates. The preventNegative guard is part of the UPDATE's
// WHERE clause: a rejected adjustment writes nothing.
func (r *BalanceRepo) Adjust(wallet string, amount decimal.Decimal, preventNegative bool) (*models.Balance, error) {
	wallet = models.NormalizeWallet(wallet)
	if wallet == "" {
		return nil, errs.NewMissingRequiredFieldError("wallet_address")
	}

	// Two passes at most: update, then insert-if-absent and retry the
	// update once in case another request inserted the row first.
	for attempt := 0; attempt < 2; attempt++ {
		q := r.db.Model(&models.Balance{}).Where("wallet = ?", wallet)
		if preventNegative {
			q = q.Where("balance + ? >= 0", amount)
		}
		res := q.UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return r.Get(wallet)
		}

		// Nothing updated: either the row is absent or the guard fired.
		var count int64
		if err := r.db.Model(&models.Balance{}).Where("wallet = ?", wallet).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errs.NewNegativeBalanceError(wallet)
		}
		if preventNegative && amount.IsNegative() {
			// Absent row counts as zero, so a negative delta can never pass.
			return nil, errs.NewNegativeBalanceError(wallet)
		}

		row := models.Balance{Wallet: wallet, Balance: amount}
		res = r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return r.Get(wallet)
		}
		// Conflict: someone else created the row between our update and
		// insert. Loop and apply the delta to the existing row.
	}

	return nil, errs.NewTransactionFailedError("balance adjustment", errs.ErrConflict)
}
