package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormrepo "fleamarket/internal/adapter/repository"
	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
)

type productFixture struct {
	products *ProductUseCase
	blocks   repository.BlockRepository

	seller *entity.User
	viewer *entity.User
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	db, err := gormrepo.OpenDB(":memory:")
	require.NoError(t, err)

	userRepo := gormrepo.NewGormUserRepository(db)
	productRepo := gormrepo.NewGormProductRepository(db)
	blockRepo := gormrepo.NewGormBlockRepository(db)

	ctx := context.Background()
	seller := &entity.User{Username: "seller", Nickname: "Seller", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, seller))
	viewer := &entity.User{Username: "viewer", Nickname: "Viewer", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, viewer))

	return &productFixture{
		products: NewProductUseCase(productRepo, userRepo, blockRepo),
		blocks:   blockRepo,
		seller:   seller,
		viewer:   viewer,
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	created, err := f.products.Create(ctx, f.seller.ID, CreateProductInput{
		Title: "Chair",
		Price: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusOnSale, created.Status)

	// Each detail view bumps the counter.
	got, err := f.products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	got, err = f.products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestCreateProductValidation(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, f.seller.ID, CreateProductInput{Title: "  "})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.products.Create(ctx, f.seller.ID, CreateProductInput{Title: "Chair", Price: -1})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListCommentsFiltersBlockedAuthors(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.products.Create(ctx, f.seller.ID, CreateProductInput{Title: "Chair", Price: 5000})
	require.NoError(t, err)

	_, err = f.products.AddComment(ctx, f.seller.ID, product.ID, "Price is firm")
	require.NoError(t, err)
	_, err = f.products.AddComment(ctx, f.viewer.ID, product.ID, "Can you deliver?")
	require.NoError(t, err)

	// Anonymous viewers see everything.
	comments, err := f.products.ListComments(ctx, 0, product.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	// The viewer blocks the seller and stops seeing the seller's comments.
	require.NoError(t, f.blocks.Create(ctx, &entity.Block{
		BlockerID:     f.viewer.ID,
		BlockedUserID: f.seller.ID,
	}))

	comments, err = f.products.ListComments(ctx, f.viewer.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, f.viewer.ID, comments[0].UserID)
}

func TestFavoritesAreIdempotent(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	product, err := f.products.Create(ctx, f.seller.ID, CreateProductInput{Title: "Chair", Price: 5000})
	require.NoError(t, err)

	first, err := f.products.AddFavorite(ctx, f.viewer.ID, product.ID)
	require.NoError(t, err)
	second, err := f.products.AddFavorite(ctx, f.viewer.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	favorites, err := f.products.ListFavorites(ctx, f.viewer.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	require.NoError(t, f.products.RemoveFavorite(ctx, f.viewer.ID, product.ID))
	assert.True(t, errors.Is(f.products.RemoveFavorite(ctx, f.viewer.ID, product.ID), "NOT_FOUND"))
}
