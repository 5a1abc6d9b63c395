package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex" json:"username"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"-"` // bcrypt hash, never the clear text

	Recipes []*Recipe `gorm:"foreignKey:AuthorID"`
	Timestamp
}
