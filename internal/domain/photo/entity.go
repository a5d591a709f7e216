package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo is one image attached to a space
type Photo struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SpaceID   uuid.UUID `db:"space_id" json:"space_id"`
	Key       string    `db:"key" json:"-"`
	ThumbKey  string    `db:"thumb_key" json:"-"`
	URL       string    `db:"url" json:"url"`
	ThumbURL  string    `db:"thumb_url" json:"thumb_url"`
	IsCover   bool      `db:"is_cover" json:"is_cover"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
