package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/handler"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindNotFound:     http.StatusNotFound,
	apperror.KindInvalidInput: http.StatusBadRequest,
	apperror.KindUnauthorized: http.StatusForbidden,
	apperror.KindForbidden:    http.StatusForbidden,
	apperror.KindBusy:         http.StatusServiceUnavailable,
}

// CatalogHandler serves the approved catalog to anonymous HTTP clients.
type CatalogHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc product.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func NewRouter(h *CatalogHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
	}
	return router
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.uc.GetAllProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": handler.MapProductsToAPI(products)})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	// anonymous callers only ever see approved products
	p, err := h.uc.GetProduct(c.Request.Context(), "", id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": handler.MapProductToAPI(p)})
}

func (h *CatalogHandler) fail(c *gin.Context, err error) {
	code, ok := kindStatus[apperror.KindOf(err)]
	if !ok {
		h.logger.Error("gateway request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
