package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"fleamarket/internal/domain/repository"
	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/response"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type createProductRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description"`
	Price       int64    `json:"price" validate:"min=0"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	product, err := h.productUseCase.Create(c.Request().Context(), userID, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("seller_id"); raw != "" {
		sellerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || sellerID <= 0 {
			return response.Error(c, errors.BadRequest("Invalid seller_id", err))
		}
		filter.SellerID = sellerID
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.Error(c, errors.BadRequest("Invalid limit", err))
		}
		filter.Limit = limit
	}

	products, err := h.productUseCase.List(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.Get(c.Request().Context(), productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

// ListComments is public; a signed-in viewer's block list filters the result.
func (h *ProductHandler) ListComments(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	var viewerID int64
	if uid, ok := c.Get("uid").(int64); ok {
		viewerID = uid
	}

	comments, err := h.productUseCase.ListComments(c.Request().Context(), viewerID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comments)
}

func (h *ProductHandler) AddComment(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	comment, err := h.productUseCase.AddComment(c.Request().Context(), userID, productID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *ProductHandler) AddFavorite(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	favorite, err := h.productUseCase.AddFavorite(c.Request().Context(), userID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, favorite)
}

func (h *ProductHandler) RemoveFavorite(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	if err := h.productUseCase.RemoveFavorite(c.Request().Context(), userID, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"deleted": true})
}

func (h *ProductHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(int64)

	favorites, err := h.productUseCase.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, favorites)
}
