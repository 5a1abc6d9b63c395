package entities

import (
	"github.com/google/uuid"
)

const (
	PrepTimeUnitMinutes = "Minutes"
	PrepTimeUnitHours   = "Hours"

	ServingsUnitPortion = "Portion"
	ServingsUnitPieces  = "Pieces"
	ServingsUnitPeople  = "People"
)

type Recipe struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID               uuid.UUID  `json:"author_id"`
	CategoryID             *uuid.UUID `json:"category_id,omitempty"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Slug                   string     `gorm:"uniqueIndex" json:"slug"`
	PreparationTime        int        `json:"preparation_time"`
	PreparationTimeUnit    string     `json:"preparation_time_unit"` // Minutes, Hours
	Servings               int        `json:"servings"`
	ServingsUnit           string     `json:"servings_unit"` // Portion, Pieces, People
	PreparationSteps       string     `gorm:"type:text" json:"preparation_steps"`
	PreparationStepsIsHTML bool       `json:"preparation_steps_is_html"`
	CoverURL               string     `json:"cover_url,omitempty"`
	IsPublished            bool       `gorm:"index" json:"is_published"`

	Author   *User     `gorm:"foreignKey:AuthorID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Tags     []*Tag    `gorm:"-" json:"tags,omitempty"`
	Timestamp
}
