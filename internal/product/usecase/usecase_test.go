package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/cache"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
	productrepo "github.com/fekuna/omnipos-marketplace-service/internal/product/repository"
	userrepo "github.com/fekuna/omnipos-marketplace-service/internal/user/repository"
)

type fixture struct {
	uc    product.UseCase
	repo  *productrepo.MemoryRepository
	cache *cache.RedisClient
	mr    *miniredis.Miniredis
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	users := userrepo.NewMemoryRepository()
	for principal, role := range map[model.Principal]model.Role{
		"admin":   model.RoleAdmin,
		"seller1": model.RoleSeller,
		"seller2": model.RoleSeller,
		"buyer":   model.RoleBuyer,
	} {
		require.NoError(t, users.Create(context.Background(), &model.UserProfile{Principal: principal, Name: string(principal), Email: "x@example.com", Role: role}))
	}

	f := &fixture{repo: productrepo.NewMemoryRepository()}
	if withCache {
		f.mr = miniredis.RunT(t)
		f.cache = &cache.RedisClient{Client: redis.NewClient(&redis.Options{Addr: f.mr.Addr()})}
		t.Cleanup(func() { f.cache.Close() })
	}
	f.uc = NewProductUseCase(f.repo, access.NewGuard(users), f.cache, logger.NewNop())
	return f
}

func sampleInput() *dto.ProductInput {
	return &dto.ProductInput{
		Name:        "Block print kurta",
		Description: "cotton",
		BasePrice:   1200,
		Variants: []dto.VariantInput{
			{Size: model.Some("M"), Price: 1200, Stock: 3},
			{Size: model.Some("L"), Color: model.Some("indigo"), Price: 1300, Stock: 1},
		},
		Images: []model.ImageRef{{Key: "img-1", URL: "https://cdn.example.com/img-1"}},
	}
}

func (f *fixture) submitApproved(t *testing.T) uint64 {
	t.Helper()
	id, err := f.uc.SubmitProduct(context.Background(), "seller1", sampleInput())
	require.NoError(t, err)
	require.NoError(t, f.uc.ApproveProduct(context.Background(), "admin", id))
	return id
}

func TestSubmitProduct(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	id, err := f.uc.SubmitProduct(ctx, "seller1", sampleInput())
	require.NoError(t, err)

	p, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ProductStatusPendingApproval, p.Status)
	assert.EqualValues(t, "seller1", p.Seller)
	assert.Len(t, p.Variants, 2)

	_, err = f.uc.SubmitProduct(ctx, "buyer", sampleInput())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.uc.SubmitProduct(ctx, "stranger", sampleInput())
	assert.ErrorIs(t, err, apperror.ErrProfileRequired)
}

func TestSubmitProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.ProductInput)
	}{
		{"empty name", func(in *dto.ProductInput) { in.Name = "" }},
		{"negative base price", func(in *dto.ProductInput) { in.BasePrice = -1 }},
		{"no variants", func(in *dto.ProductInput) { in.Variants = nil }},
		{"negative variant price", func(in *dto.ProductInput) { in.Variants[0].Price = -5 }},
		{"negative stock", func(in *dto.ProductInput) { in.Variants[1].Stock = -1 }},
		{"too many images", func(in *dto.ProductInput) {
			in.Images = make([]model.ImageRef, model.MaxProductImages+1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			in := sampleInput()
			tt.mutate(in)

			_, err := f.uc.SubmitProduct(context.Background(), "seller1", in)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestModeration(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	id, err := f.uc.SubmitProduct(ctx, "seller1", sampleInput())
	require.NoError(t, err)

	// non-admin approval leaves the product pending
	err = f.uc.ApproveProduct(ctx, "seller1", id)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	p, _ := f.repo.FindByID(ctx, id)
	assert.Equal(t, model.ProductStatusPendingApproval, p.Status)

	require.NoError(t, f.uc.ApproveProduct(ctx, "admin", id))
	assert.ErrorIs(t, f.uc.ApproveProduct(ctx, "admin", id), apperror.ErrInvalidTransition)
	assert.ErrorIs(t, f.uc.RejectProduct(ctx, "admin", id), apperror.ErrInvalidTransition)
	assert.ErrorIs(t, f.uc.RejectProduct(ctx, "admin", 404), apperror.ErrNotFound)
}

func TestUpdateProductResetsApproval(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	id := f.submitApproved(t)

	in := sampleInput()
	in.Name = "Hand block print kurta"
	require.NoError(t, f.uc.UpdateProduct(ctx, "seller1", id, in))

	p, _ := f.repo.FindByID(ctx, id)
	assert.Equal(t, model.ProductStatusPendingApproval, p.Status)
	assert.Equal(t, "Hand block print kurta", p.Name)

	all, err := f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateProductOwnership(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	id := f.submitApproved(t)

	assert.ErrorIs(t, f.uc.UpdateProduct(ctx, "seller2", id, sampleInput()), apperror.ErrForbidden)
	assert.ErrorIs(t, f.uc.UpdateProduct(ctx, "seller1", 404, sampleInput()), apperror.ErrNotFound)
	assert.NoError(t, f.uc.UpdateProduct(ctx, "admin", id, sampleInput()))

	p, _ := f.repo.FindByID(ctx, id)
	assert.EqualValues(t, "seller1", p.Seller)
}

func TestGetProductVisibility(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	pending, err := f.uc.SubmitProduct(ctx, "seller1", sampleInput())
	require.NoError(t, err)
	approved := f.submitApproved(t)

	_, err = f.uc.GetProduct(ctx, "", approved)
	assert.NoError(t, err)

	for _, caller := range []model.Principal{"", "buyer", "seller2"} {
		_, err = f.uc.GetProduct(ctx, caller, pending)
		assert.ErrorIs(t, err, apperror.ErrNotFound, "caller %q", caller)
	}
	for _, caller := range []model.Principal{"seller1", "admin"} {
		p, err := f.uc.GetProduct(ctx, caller, pending)
		require.NoError(t, err)
		assert.Equal(t, pending, p.ID)
	}
}

func TestListings(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	pending, err := f.uc.SubmitProduct(ctx, "seller1", sampleInput())
	require.NoError(t, err)
	approved := f.submitApproved(t)
	other, err := f.uc.SubmitProduct(ctx, "seller2", sampleInput())
	require.NoError(t, err)

	all, err := f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, approved, all[0].ID)

	queue, err := f.uc.GetPendingProducts(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, []uint64{pending, other}, ids(queue))

	_, err = f.uc.GetPendingProducts(ctx, "seller1")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	mine, err := f.uc.GetSellerProducts(ctx, "seller1", "seller1")
	require.NoError(t, err)
	assert.Equal(t, []uint64{pending, approved}, ids(mine))

	_, err = f.uc.GetSellerProducts(ctx, "seller2", "seller1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	theirs, err := f.uc.GetSellerProducts(ctx, "admin", "seller2")
	require.NoError(t, err)
	assert.Equal(t, []uint64{other}, ids(theirs))
}

func TestApprovedListCache(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	first := f.submitApproved(t)

	all, err := f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	var cachedKeys []string
	for _, k := range f.mr.Keys() {
		if strings.HasPrefix(k, product.ListCachePrefix) {
			cachedKeys = append(cachedKeys, k)
		}
	}
	require.Len(t, cachedKeys, 1)
	assert.Equal(t, listCacheTTL, f.mr.TTL(cachedKeys[0]))

	// a new approval drops the cached page
	second := f.submitApproved(t)
	assert.False(t, f.mr.Exists(cachedKeys[0]))

	all, err = f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{first, second}, ids(all))
}

func TestApprovedListCacheServesHits(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.submitApproved(t)

	_, err := f.uc.GetAllProducts(ctx)
	require.NoError(t, err)

	// stock changes made behind the usecase are not visible until the TTL passes
	require.NoError(t, f.repo.DecrementStock(ctx, 1, 0, 1))
	all, err := f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all[0].Variants[0].Stock)

	f.mr.FastForward(listCacheTTL + time.Second)
	all, err = f.uc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all[0].Variants[0].Stock)
}

func ids(products []model.Product) []uint64 {
	out := make([]uint64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
