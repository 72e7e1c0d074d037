package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
)

func seedCategory(t *testing.T, repo CategoryRepository, name, slug string, status constants.Status) *entity.Category {
	t.Helper()
	c, err := repo.Create(context.Background(), &entity.Category{Name: name, Slug: slug, Status: status})
	require.NoError(t, err)
	return c
}

func TestCategoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewCategoryRepository(store, testLogger())

	parent := seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)
	child, err := repo.Create(ctx, &entity.Category{
		Name:     "Laptop gaming",
		Slug:     "laptop-gaming",
		Content:  "<p>Gaming</p>",
		ParentID: &parent.ID,
		Status:   constants.StatusInactive,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop gaming", got.Name)
	assert.Equal(t, "laptop-gaming", got.Slug)
	assert.Equal(t, "<p>Gaming</p>", got.Content)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	assert.Nil(t, got.ImageID)
	assert.Equal(t, constants.StatusInactive, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestCategoryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewCategoryRepository(newTestStore(t), testLogger())

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCategoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestStore(t), testLogger())

	seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)
	seedCategory(t, repo, "PC Gaming", "pc-gaming", constants.StatusInactive)
	seedCategory(t, repo, "Man hinh", "man-hinh", constants.StatusDisabled)
	deleted := seedCategory(t, repo, "Old stuff", "old-stuff", constants.StatusActive)
	_, err := repo.UpdateStatus(ctx, deleted.ID, constants.StatusDeleted)
	require.NoError(t, err)

	t.Run("hides deleted rows and orders newest first", func(t *testing.T) {
		items, total, err := repo.List(ctx, ListFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, "Man hinh", items[0].Name)
		assert.Equal(t, "Laptop", items[2].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		status := constants.StatusDeleted
		items, total, err := repo.List(ctx, ListFilter{Status: &status, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, deleted.ID, items[0].ID)
	})

	t.Run("search is case-insensitive on name and slug", func(t *testing.T) {
		items, total, err := repo.List(ctx, ListFilter{Search: "GAMING", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "pc-gaming", items[0].Slug)

		_, total, err = repo.List(ctx, ListFilter{Search: "man-hinh", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("limit and offset keep the full total", func(t *testing.T) {
		items, total, err := repo.List(ctx, ListFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Laptop", items[0].Name)
	})

	t.Run("page past the end", func(t *testing.T) {
		items, total, err := repo.List(ctx, ListFilter{Limit: 10, Offset: 50})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, items)
	})
}

func TestCategoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestStore(t), testLogger())

	parent := seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)
	c := seedCategory(t, repo, "Ultrabook", "ultrabook", constants.StatusActive)

	c.Name = "Ultrabook mỏng nhẹ"
	c.Slug = "ultrabook-mong-nhe"
	c.ParentID = &parent.ID
	c.Status = constants.StatusInactive
	updated, err := repo.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Ultrabook mỏng nhẹ", updated.Name)
	assert.Equal(t, "ultrabook-mong-nhe", updated.Slug)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent.ID, *updated.ParentID)
	assert.Equal(t, constants.StatusInactive, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	updated.ParentID = nil
	cleared, err := repo.Update(ctx, updated)
	require.NoError(t, err)
	assert.Nil(t, cleared.ParentID)

	_, err = repo.Update(ctx, &entity.Category{ID: 999, Name: "x", Slug: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategoryRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestStore(t), testLogger())
	c := seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)

	for _, status := range []constants.Status{constants.StatusInactive, constants.StatusDisabled, constants.StatusDeleted, constants.StatusActive} {
		got, err := repo.UpdateStatus(ctx, c.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	_, err := repo.UpdateStatus(ctx, 999, constants.StatusDeleted)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategoryRepository_SlugExistsAndNames(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestStore(t), testLogger())

	a := seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)
	seedCategory(t, repo, "Hidden", "hidden", constants.StatusInactive)
	b := seedCategory(t, repo, "Monitor", "monitor", constants.StatusActive)

	exists, err := repo.SlugExists(ctx, "laptop", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "laptop", a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists(ctx, "tablet", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := repo.ListActiveNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, &entity.IDName{ID: b.ID, Name: "Monitor"}, names[0])
	assert.Equal(t, &entity.IDName{ID: a.ID, Name: "Laptop"}, names[1])

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCategoryRepository_DuplicateSlugRejectedByIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestStore(t), testLogger())
	seedCategory(t, repo, "Laptop", "laptop", constants.StatusActive)

	_, err := repo.Create(ctx, &entity.Category{Name: "Laptop 2", Slug: "laptop", Status: constants.StatusActive})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, http.StatusConflict, common.HTTPStatus(err))
	assert.Equal(t, `slug "laptop" is already in use`, common.PublicMessage(err, ""))

	other := seedCategory(t, repo, "Tablet", "tablet", constants.StatusActive)
	other.Slug = "laptop"
	_, err = repo.Update(ctx, other)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}
