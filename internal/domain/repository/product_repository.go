package repository

import (
	"context"

	"fleamarket/internal/domain/entity"
)

type ProductFilter struct {
	Category string
	Location string
	Search   string
	SellerID int64
	Limit    int
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	IncrementViewCount(ctx context.Context, id int64) error

	// Comment methods
	CreateComment(ctx context.Context, comment *entity.Comment) error
	ListCommentsByProduct(ctx context.Context, productID int64) ([]*entity.Comment, error)

	// Favorite methods
	CreateFavorite(ctx context.Context, favorite *entity.Favorite) error
	DeleteFavorite(ctx context.Context, userID, productID int64) error
	GetFavorite(ctx context.Context, userID, productID int64) (*entity.Favorite, error)
	ListFavoritesByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error)
	CountFavorites(ctx context.Context, productID int64) (int64, error)
}
