package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/server/http/dto"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, dto.OK(response))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid product id"))
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(toProductResponse(*product)))
}

// Seed handles POST /api/products/seed.
func (h *ProductHandler) Seed(c *gin.Context) {
	if err := h.facade.SeedProducts(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(nil))
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:     p.ID,
		Name:   p.Name,
		Purity: p.Purity,
		Type:   string(p.Type),
		Amount: p.Amount,
		Price:  p.Price,
	}
}
