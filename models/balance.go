package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the off-chain token balance for one wallet. At most one row per
// normalized wallet; a missing row is treated as a zero balance.
type Balance struct {
	ID        uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Wallet    string          `json:"wallet_address" db:"wallet" gorm:"type:text;not null;uniqueIndex:idx_balance_wallet"`
	Balance   decimal.Decimal `json:"balance" db:"balance" gorm:"type:numeric;not null"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
