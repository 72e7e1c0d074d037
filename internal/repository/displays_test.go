package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
)

func TestDisplayRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDisplayRepository(newTestStore(t), testLogger())

	d, err := repo.Create(ctx, &entity.Display{
		Name: "LG UltraGear 27GP850", Size: "27 inch", Resolution: "2560x1440",
		PanelType: "IPS", RefreshRate: "165Hz", Brand: "LG", Status: constants.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "IPS", d.PanelType)
	assert.Equal(t, "165Hz", d.RefreshRate)

	_, err = repo.Create(ctx, &entity.Display{Name: "Dell P2422H", Brand: "Dell", Status: constants.StatusDisabled})
	require.NoError(t, err)

	active := constants.StatusActive
	items, total, err := repo.List(ctx, ListFilter{Status: &active, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, d.ID, items[0].ID)

	all, total, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	d.RefreshRate = "144Hz"
	updated, err := repo.Update(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "144Hz", updated.RefreshRate)

	names, err := repo.ListActiveNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*entity.IDName{{ID: d.ID, Name: d.Name}}, names)

	_, err = repo.UpdateStatus(ctx, 777, constants.StatusActive)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
