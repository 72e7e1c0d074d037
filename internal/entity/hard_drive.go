package entity

import (
	"time"

	"github.com/joseph-ayodele/catalog-cms/constants"
)

// HardDrive represents a storage spec, exposed as /api/storages.
type HardDrive struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Type      string           `json:"type"`
	Capacity  string           `json:"capacity"`
	Interface string           `json:"interface"`
	Brand     string           `json:"brand"`
	Status    constants.Status `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
