package entities

import (
	"github.com/google/uuid"
)

// EntityKindRecipe is the only taggable kind today. Tag ownership is an
// explicit (kind, id) pair rather than an open-ended runtime type reference,
// so new taggable kinds must be added to this enum and to the tag resolver.
const EntityKindRecipe = "recipe"

type Tag struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	Slug       string    `gorm:"uniqueIndex" json:"slug"`
	EntityKind string    `gorm:"index:idx_tags_owner" json:"entity_kind"`
	EntityID   uuid.UUID `gorm:"index:idx_tags_owner" json:"entity_id"`

	Timestamp
}
