package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
	productrepo "github.com/fekuna/omnipos-marketplace-service/internal/product/repository"
	productuc "github.com/fekuna/omnipos-marketplace-service/internal/product/usecase"
	userrepo "github.com/fekuna/omnipos-marketplace-service/internal/user/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter returns a router over a catalog with one approved and one pending product.
func newTestRouter(t *testing.T) (*gin.Engine, uint64, uint64) {
	t.Helper()
	ctx := context.Background()

	users := userrepo.NewMemoryRepository()
	require.NoError(t, users.Create(ctx, &model.UserProfile{Principal: "admin", Name: "a", Email: "a@example.com", Role: model.RoleAdmin}))
	require.NoError(t, users.Create(ctx, &model.UserProfile{Principal: "seller1", Name: "s", Email: "s@example.com", Role: model.RoleSeller}))

	uc := productuc.NewProductUseCase(productrepo.NewMemoryRepository(), access.NewGuard(users), nil, logger.NewNop())
	input := func(name string) *dto.ProductInput {
		return &dto.ProductInput{
			Name:      name,
			BasePrice: 500,
			Variants:  []dto.VariantInput{{Price: 500, Stock: 4}},
		}
	}

	approved, err := uc.SubmitProduct(ctx, "seller1", input("Shawl"))
	require.NoError(t, err)
	require.NoError(t, uc.ApproveProduct(ctx, "admin", approved))
	pending, err := uc.SubmitProduct(ctx, "seller1", input("Stole"))
	require.NoError(t, err)

	return NewRouter(NewCatalogHandler(uc, logger.NewNop())), approved, pending
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := serve(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListProductsShowsApprovedOnly(t *testing.T) {
	router, approved, _ := newTestRouter(t)

	w := serve(router, "/v1/products")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []*marketplacev1.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, approved, body.Products[0].ID)
	assert.Equal(t, "Shawl", body.Products[0].Name)
}

func TestGetProduct(t *testing.T) {
	router, approved, pending := newTestRouter(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"approved", "/v1/products/" + strconv.FormatUint(approved, 10), http.StatusOK},
		{"pending is hidden", "/v1/products/" + strconv.FormatUint(pending, 10), http.StatusNotFound},
		{"missing", "/v1/products/999", http.StatusNotFound},
		{"malformed id", "/v1/products/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.path)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
