package models

import "github.com/google/uuid"

// Skill is a deduplicated skill definition. Slug is the lower-cased name and
// carries the unique constraint, so two casings of the same name always
// resolve to one row.
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_skill_slug"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
}
