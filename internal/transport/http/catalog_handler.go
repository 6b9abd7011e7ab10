package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-browser/internal/app/catalog/provider/rest"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/procat-browser/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/procat-browser/internal/pkg/logging"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

type listQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// CatalogHandler serves the read-only catalog REST contract consumed by the
// REST provider.
type CatalogHandler struct {
	listProducts *list_products.Query
	getProduct   *get_product.Query
	logger       *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(listProducts *list_products.Query, getProduct *get_product.Query, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		listProducts: listProducts,
		getProduct:   getProduct,
		logger:       logging.OrNop(logger),
	}
}

// Register mounts GET /products and GET /products/:id on r.
func (h *CatalogHandler) Register(r gin.IRouter) {
	products := r.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
}

// ListProducts handles GET /products?page=&limit=.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and limit must be positive integers"})
		return
	}

	env, err := h.listProducts.Execute(c.Request.Context(), &list_products.Request{
		Page:     q.Page,
		PageSize: q.Limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rest.ProductsResponse{
		Products:      env.Items,
		TotalProducts: env.TotalCount,
	})
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product id must be a positive integer"})
		return
	}

	product, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{ProductID: id})
	if err != nil {
		h.fail(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) fail(c *gin.Context, err error) {
	status, msg := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Catalog request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", requestIDFrom(c)),
			zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
