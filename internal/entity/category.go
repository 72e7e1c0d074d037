package entity

import (
	"time"

	"github.com/joseph-ayodele/catalog-cms/constants"
)

// Category represents a product category for data transfer between layers.
type Category struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	Content   string           `json:"content"`
	ParentID  *int64           `json:"parent_id"`
	ImageID   *int64           `json:"image_id"`
	Status    constants.Status `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
