package usecase

import (
	"context"
	"strings"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	blockRepo   repository.BlockRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	blockRepo repository.BlockRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		blockRepo:   blockRepo,
	}
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	Location    string
	Images      []string
}

// CommentView decorates a comment with its author for product pages.
type CommentView struct {
	*entity.Comment
	User *entity.User `json:"user,omitempty"`
}

// ProductDetail decorates a product for the detail page.
type ProductDetail struct {
	*entity.Product
	Seller        *entity.User `json:"seller,omitempty"`
	FavoriteCount int64        `json:"favorite_count"`
}

func (uc *ProductUseCase) Create(ctx context.Context, sellerID int64, input CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	product := &entity.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Status:      entity.ProductStatusOnSale,
		Category:    input.Category,
		Location:    input.Location,
		Images:      input.Images,
		SellerID:    sellerID,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Internal("Failed to create product", err)
	}
	return product, nil
}

func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Internal("Failed to list products", err)
	}
	return products, nil
}

// Get returns one product with its seller and favorite count, and bumps the
// view counter.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*ProductDetail, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Internal("Failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product", nil)
	}

	if err := uc.productRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, errors.Internal("Failed to update view count", err)
	}
	product.ViewCount++

	seller, err := uc.userRepo.GetByID(ctx, product.SellerID)
	if err != nil {
		return nil, errors.Internal("Failed to load user", err)
	}
	favoriteCount, err := uc.productRepo.CountFavorites(ctx, id)
	if err != nil {
		return nil, errors.Internal("Failed to count favorites", err)
	}

	return &ProductDetail{
		Product:       product,
		Seller:        seller,
		FavoriteCount: favoriteCount,
	}, nil
}

// ListComments returns a product's comments with authors. When viewerID is
// non-zero, comments by users the viewer has blocked are filtered out.
func (uc *ProductUseCase) ListComments(ctx context.Context, viewerID, productID int64) ([]*CommentView, error) {
	comments, err := uc.productRepo.ListCommentsByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Internal("Failed to list comments", err)
	}

	blockedIDs := make(map[int64]bool)
	if viewerID != 0 {
		blocks, err := uc.blockRepo.ListByBlocker(ctx, viewerID)
		if err != nil {
			return nil, errors.Internal("Failed to load block list", err)
		}
		for _, block := range blocks {
			blockedIDs[block.BlockedUserID] = true
		}
	}

	views := make([]*CommentView, 0, len(comments))
	for _, comment := range comments {
		if blockedIDs[comment.UserID] {
			continue
		}
		user, err := uc.userRepo.GetByID(ctx, comment.UserID)
		if err != nil {
			return nil, errors.Internal("Failed to load user", err)
		}
		views = append(views, &CommentView{Comment: comment, User: user})
	}
	return views, nil
}

func (uc *ProductUseCase) AddComment(ctx context.Context, userID, productID int64, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.BadRequest("Comment content is required", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.Internal("Failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product", nil)
	}

	comment := &entity.Comment{
		ProductID: productID,
		UserID:    userID,
		Content:   content,
	}
	if err := uc.productRepo.CreateComment(ctx, comment); err != nil {
		return nil, errors.Internal("Failed to create comment", err)
	}
	return comment, nil
}

func (uc *ProductUseCase) AddFavorite(ctx context.Context, userID, productID int64) (*entity.Favorite, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.Internal("Failed to load product", err)
	}
	if product == nil {
		return nil, errors.NotFound("Product", nil)
	}

	existing, err := uc.productRepo.GetFavorite(ctx, userID, productID)
	if err != nil {
		return nil, errors.Internal("Failed to look up favorite", err)
	}
	if existing != nil {
		return existing, nil
	}

	favorite := &entity.Favorite{UserID: userID, ProductID: productID}
	if err := uc.productRepo.CreateFavorite(ctx, favorite); err != nil {
		return nil, errors.Internal("Failed to create favorite", err)
	}
	return favorite, nil
}

func (uc *ProductUseCase) RemoveFavorite(ctx context.Context, userID, productID int64) error {
	existing, err := uc.productRepo.GetFavorite(ctx, userID, productID)
	if err != nil {
		return errors.Internal("Failed to look up favorite", err)
	}
	if existing == nil {
		return errors.NotFound("Favorite", nil)
	}
	if err := uc.productRepo.DeleteFavorite(ctx, userID, productID); err != nil {
		return errors.Internal("Failed to delete favorite", err)
	}
	return nil
}

func (uc *ProductUseCase) ListFavorites(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	favorites, err := uc.productRepo.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list favorites", err)
	}
	return favorites, nil
}
