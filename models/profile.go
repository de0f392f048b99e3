package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRole distinguishes project posters from submitters.
type ProfileRole string

const (
	RoleCompany    ProfileRole = "company"
	RoleFreelancer ProfileRole = "freelancer"
)

// Profile represents a registered marketplace participant, keyed by their
// normalized wallet address.
type Profile struct {
	ID        uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Wallet    string      `json:"wallet_address" db:"wallet" gorm:"type:text;not null;uniqueIndex:idx_profile_wallet"`
	Role      ProfileRole `json:"role" db:"role" gorm:"type:text;not null"`
	Name      string      `json:"name" db:"name" gorm:"type:text;not null"`
	Skills    string      `json:"skills,omitempty" db:"skills" gorm:"type:text"`
	CreatedAt time.Time   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}
