package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSkill bridges a wallet to a skill. The (wallet, skill) pair is unique
// so granting the same skill twice is a conflict, not a duplicate row.
type UserSkill struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Wallet  string    `json:"wallet_address" db:"wallet" gorm:"type:text;not null;index:idx_user_skill_wallet;uniqueIndex:idx_user_skill_unique"`
	SkillID uuid.UUID `json:"skill_id" db:"skill_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_unique"`
	AddedAt time.Time `json:"added_at" db:"added_at" gorm:"autoCreateTime"`

	Skill Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID;references:ID"`
}
