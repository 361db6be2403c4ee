package repositories_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vitokorn/buy-me-a-gift/internal/database"
	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedCatalog creates two categories and three products with distinct
// creation times: A(cat1, 2.50), B(cat2, 1.15), C(cat1, 0.99).
func seedCatalog(t *testing.T, db *gorm.DB) (cats []models.ProductCategory, products []models.Product) {
	t.Helper()
	cats = []models.ProductCategory{{Name: "Drinks"}, {Name: "Snacks"}}
	require.NoError(t, db.Create(&cats).Error)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	products = []models.Product{
		{Name: "A", Price: decimal.RequireFromString("2.50"), Rank: 2, CategoryID: cats[0].ID, CreatedTime: start.Add(2 * time.Hour)},
		{Name: "B", Price: decimal.RequireFromString("1.15"), Rank: 1, CategoryID: cats[1].ID, CreatedTime: start},
		{Name: "C", Price: decimal.RequireFromString("0.99"), Rank: 3, CategoryID: cats[0].ID, CreatedTime: start.Add(time.Hour)},
	}
	repo := repositories.NewGORMProductRepository(db)
	for i := range products {
		require.NoError(t, repo.Create(context.Background(), &products[i]))
	}
	return cats, products
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestGORMUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Email: "test@example.com", Password: "hash", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	err := repo.Create(ctx, &models.User{Email: "test@example.com", Password: "hash"})
	assert.True(t, errors.Is(err, repositories.ErrDuplicateEntry))

	found, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
	found, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.Password)

	assert.True(t, errors.Is(repo.UpdatePassword(ctx, 999, "x"), repositories.ErrNotFound))
}

func TestGORMProductRepository_ListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := repositories.NewGORMProductRepository(db)
	base := []repositories.SortField{{Column: "price", Desc: true}, {Column: "id"}}

	all, err := repo.List(ctx, repositories.ProductFilter{OrderBy: base})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(all))

	one := decimal.NewFromInt(1)
	filtered, err := repo.List(ctx, repositories.ProductFilter{PriceGT: &one, OrderBy: base})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(filtered))

	two := decimal.NewFromInt(2)
	filtered, err = repo.List(ctx, repositories.ProductFilter{PriceLT: &two, OrderBy: base})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, names(filtered))

	byCreated, err := repo.List(ctx, repositories.ProductFilter{
		OrderBy: append([]repositories.SortField{{Column: "created_time"}}, base...),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, names(byCreated))

	byRankDesc, err := repo.List(ctx, repositories.ProductFilter{
		OrderBy: append([]repositories.SortField{{Column: "rank", Desc: true}}, base...),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(byRankDesc))

	_, err = repo.List(ctx, repositories.ProductFilter{OrderBy: []repositories.SortField{{Column: "name; DROP TABLE products"}}})
	assert.Error(t, err)
}

func TestGORMProductRepository_UpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	cats, products := seedCatalog(t, db)
	repo := repositories.NewGORMProductRepository(db)

	p := products[0]
	p.Rank = 0
	p.Price = decimal.Zero
	p.CategoryID = cats[1].ID
	require.NoError(t, repo.Update(ctx, &p))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Rank)
	assert.True(t, stored.Price.IsZero())
	assert.Equal(t, cats[1].ID, stored.CategoryID)

	missing := models.Product{ID: 999, Name: "X", CategoryID: cats[0].ID}
	assert.True(t, errors.Is(repo.Update(ctx, &missing), repositories.ErrNotFound))
}

func TestGORMWishlistRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, products := seedCatalog(t, db)
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMWishlistRepository(db)

	owner := &models.User{Email: "owner@example.com", Password: "hash", IsActive: true}
	require.NoError(t, users.Create(ctx, owner))

	wishlist := &models.Wishlist{UserID: owner.ID, Items: []models.WishlistProduct{
		{ProductID: products[1].ID, Position: 0},
		{ProductID: products[0].ID, Position: 1},
	}}
	require.NoError(t, repo.Create(ctx, wishlist))
	assert.NotZero(t, wishlist.ID)

	exists, err := repo.ExistsForUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	second := &models.Wishlist{UserID: owner.ID, Items: []models.WishlistProduct{{ProductID: products[2].ID}}}
	assert.True(t, errors.Is(repo.Create(ctx, second), repositories.ErrDuplicateEntry))

	loaded, err := repo.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{products[1].ID, products[0].ID}, loaded.ProductIDs())
	require.NotNil(t, loaded.User)
	assert.Equal(t, "owner@example.com", loaded.User.Email)

	require.NoError(t, repo.Delete(ctx, wishlist.ID))
	_, err = repo.GetByID(ctx, wishlist.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, wishlist.ID), repositories.ErrNotFound))

	var items int64
	require.NoError(t, db.Model(&models.WishlistProduct{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestGORMCategoryRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	cats, products := seedCatalog(t, db)
	users := repositories.NewGORMUserRepository(db)
	wishlists := repositories.NewGORMWishlistRepository(db)
	repo := repositories.NewGORMCategoryRepository(db)

	owner := &models.User{Email: "owner@example.com", Password: "hash", IsActive: true}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, wishlists.Create(ctx, &models.Wishlist{UserID: owner.ID, Items: []models.WishlistProduct{
		{ProductID: products[0].ID, Position: 0},
		{ProductID: products[1].ID, Position: 1},
	}}))

	require.NoError(t, repo.Delete(ctx, cats[0].ID))

	remaining, err := repositories.NewGORMProductRepository(db).GetByIDs(ctx, []uint{products[0].ID, products[1].ID, products[2].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(remaining))

	loaded, err := wishlists.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{products[1].ID}, loaded.ProductIDs())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Snacks", all[0].Name)

	assert.True(t, errors.Is(repo.Delete(ctx, cats[0].ID), repositories.ErrNotFound))
}
