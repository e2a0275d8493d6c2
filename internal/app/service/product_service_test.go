package service

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo), testDB
}

func seedStoreProducts(t *testing.T, testDB *gorm.DB) {
	t.Helper()

	products := []model.Product{
		{Name: "넥슨캐시 충전", Slug: "nexon-cash", BasePrice: 10000, Category: model.CategoryGameTopup, IsActive: true, SortOrder: 1},
		{Name: "구글플레이 기프트카드", Slug: "google-play", BasePrice: 50000, Category: model.CategoryGiftCard, IsActive: true, IsFeatured: true, SortOrder: 2},
		{Name: "넷플릭스 구독권", Slug: "netflix", BasePrice: 17000, Category: model.CategorySubscription, IsActive: false, SortOrder: 3},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}
}

func TestProductService_GetProducts_ActiveOnly(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)
	seedStoreProducts(t, testDB)

	products, err := svc.GetProducts(repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}
}

func TestProductService_GetProducts_CategoryAndFeatured(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)
	seedStoreProducts(t, testDB)

	category := model.CategoryGiftCard
	products, err := svc.GetProducts(repository.ProductFilter{Category: &category, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "google-play", products[0].Slug)

	featured, err := svc.GetProducts(repository.ProductFilter{FeaturedOnly: true, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "구글플레이 기프트카드", featured[0].Name)
}

func TestProductService_GetProducts_Search(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)
	seedStoreProducts(t, testDB)

	products, err := svc.GetProducts(repository.ProductFilter{Search: "넥슨", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "nexon-cash", products[0].Slug)
}

func TestProductService_GetProductBySlug(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)
	seedStoreProducts(t, testDB)

	product, err := svc.GetProductBySlug("nexon-cash")
	require.NoError(t, err)
	assert.Equal(t, "넥슨캐시 충전", product.Name)

	_, err = svc.GetProductBySlug("no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	err := svc.UpdateProduct(&model.Product{ID: 999, Name: "유령 상품"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)
	seedStoreProducts(t, testDB)

	product, err := svc.GetProductBySlug("netflix")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))

	_, err = svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrProductNotFound)
}
