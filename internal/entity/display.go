package entity

import (
	"time"

	"github.com/joseph-ayodele/catalog-cms/constants"
)

// Display represents a screen spec for data transfer between layers.
type Display struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Size        string           `json:"size"`
	Resolution  string           `json:"resolution"`
	PanelType   string           `json:"panel_type"`
	RefreshRate string           `json:"refresh_rate"`
	Brand       string           `json:"brand"`
	Status      constants.Status `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
