package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

// ProductHandler exposes the catalog: public reads plus admin-gated
// mutations (the router wires the gate).
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
	Available     bool    `json:"productAvailable"`
	RoastLevel    int     `json:"roastLevel"`
	CaffeineLevel int     `json:"caffeineLevel"`
	Sweetness     int     `json:"sweetness"`
	Acidity       int     `json:"acidity"`
	Weight        string  `json:"weight"`
}

func (r productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Available:     r.Available,
		RoastLevel:    r.RoastLevel,
		CaffeineLevel: r.CaffeineLevel,
		Sweetness:     r.Sweetness,
		Acidity:       r.Acidity,
		Weight:        r.Weight,
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/product/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product.invalidId"})
	}

	product, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/product (admin only).
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product.invalidPayload"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	created, err := h.catalog.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/product/:id (admin only).
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product.invalidId"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product.invalidPayload"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	if err := h.catalog.Update(c.Request().Context(), id, req.toDomain()); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product.updated"})
}

// Delete handles DELETE /api/product/:id (admin only).
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product.invalidId"})
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product.deleted"})
}

// Search handles GET /api/product/search?keyword=.
func (h *ProductHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	products, err := h.catalog.Search(c.Request().Context(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// TopSellers handles GET /api/product/top10.
func (h *ProductHandler) TopSellers(c echo.Context) error {
	products, err := h.catalog.TopSellers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
