package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"type:varchar(65)" json:"name"`
	Slug string    `gorm:"uniqueIndex" json:"slug"`

	Recipes []*Recipe `gorm:"foreignKey:CategoryID"`
	Timestamp
}
