package service

import (
	"context"
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewOptionRepository(testDB)
	combRepo := repository.NewCombinationRepository(testDB)
	catalogService := NewCatalogService(productRepo, optionRepo, combRepo, 0)

	product := &model.Product{
		Name:      "넥슨캐시 상품권",
		Slug:      "nexon-cash",
		BasePrice: 10000,
		Category:  model.CategoryGameTopup,
		IsActive:  true,
	}
	testDB.Create(product)

	return catalogService, testDB, product
}

// seedDurationGroup 단일 선택 기간 그룹을 만들어 상품에 배정한다.
func seedDurationGroup(t *testing.T, testDB *gorm.DB, productID uint, required bool) *model.OptionGroup {
	group := &model.OptionGroup{
		Name:          "기간",
		Slug:          "duration",
		SelectionType: model.SelectionSingle,
		IsRequired:    required,
		IsActive:      true,
	}
	require.NoError(t, testDB.Create(group).Error)

	options := []model.Option{
		{OptionGroupID: group.ID, Name: "1개월", Slug: "1m", PriceModifier: 0, PriceModifierType: model.ModifierFixed, IsActive: true, SortOrder: 1},
		{OptionGroupID: group.ID, Name: "3개월", Slug: "3m", PriceModifier: 2000, PriceModifierType: model.ModifierFixed, IsActive: true, SortOrder: 2},
		{OptionGroupID: group.ID, Name: "12개월", Slug: "12m", PriceModifier: 10, PriceModifierType: model.ModifierPercentage, IsActive: true, SortOrder: 3},
	}
	for i := range options {
		require.NoError(t, testDB.Create(&options[i]).Error)
	}
	group.Options = options

	require.NoError(t, testDB.Create(&model.ProductOptionGroup{
		ProductID:     productID,
		OptionGroupID: group.ID,
	}).Error)
	return group
}

func TestCatalogService_GetCatalog(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	// 비활성 그룹은 카탈로그에서 빠져야 한다
	inactive := &model.OptionGroup{
		Name:          "이벤트",
		Slug:          "event",
		SelectionType: model.SelectionSingle,
		IsActive:      false,
	}
	require.NoError(t, testDB.Create(inactive).Error)
	require.NoError(t, testDB.Create(&model.ProductOptionGroup{
		ProductID:     product.ID,
		OptionGroupID: inactive.ID,
	}).Error)

	catalog, err := catalogService.GetCatalog(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, catalog.Groups, 1)
	assert.Equal(t, group.ID, catalog.Groups[0].Group.ID)
	assert.True(t, catalog.Groups[0].IsRequired)
	assert.Len(t, catalog.Groups[0].Group.Options, 3)
}

func TestCatalogService_GetCatalog_RequiredOverride(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	// 상품별 재정의로 필수 해제
	override := false
	require.NoError(t, testDB.Model(&model.ProductOptionGroup{}).
		Where("product_id = ? AND option_group_id = ?", product.ID, group.ID).
		Update("is_required", &override).Error)

	catalog, err := catalogService.GetCatalog(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, catalog.Groups, 1)
	assert.False(t, catalog.Groups[0].IsRequired)
}

func TestCatalogService_GetCatalog_ProductNotFound(t *testing.T) {
	catalogService, _, _ := setupCatalogServiceTest(t)

	_, err := catalogService.GetCatalog(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_QuotePrice_FixedModifier(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[1].ID)), // 3개월 +2000
	})
	require.NoError(t, err)
	assert.Equal(t, float64(10000), quote.BasePrice)
	assert.Equal(t, float64(12000), quote.TotalPrice)
	assert.True(t, quote.Available)
	assert.Nil(t, quote.CombinationID)
}

func TestCatalogService_QuotePrice_PercentageFromBasePrice(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[2].ID)), // 12개월 +10%
	})
	require.NoError(t, err)
	assert.Equal(t, float64(11000), quote.TotalPrice)
}

func TestCatalogService_QuotePrice_MissingRequiredSelection(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	seedDurationGroup(t, testDB, product.ID, true)

	_, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{})
	assert.ErrorIs(t, err, ErrInvalidSelections)
}

func TestCatalogService_QuotePrice_CombinationOverrides(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	combo := &model.OptionCombination{
		ProductID:       product.ID,
		Combination:     ppom.EncodeAssignment(ppom.Assignment{group.ID: group.Options[1].ID}),
		BasePrice:       10000,
		CalculatedPrice: 11500, // 계산 가격 12000 대신 조합 특가
		StockType:       model.StockUnlimited,
		IsAvailable:     true,
		IsActive:        true,
	}
	require.NoError(t, testDB.Create(combo).Error)

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[1].ID)),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(11500), quote.TotalPrice)
	require.NotNil(t, quote.CombinationID)
	assert.Equal(t, combo.ID, *quote.CombinationID)
	assert.Empty(t, quote.Modifiers)
}

func TestCatalogService_QuotePrice_TrackedCombinationOutOfStock(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	combo := &model.OptionCombination{
		ProductID:       product.ID,
		Combination:     ppom.EncodeAssignment(ppom.Assignment{group.ID: group.Options[0].ID}),
		CalculatedPrice: 9500,
		StockType:       model.StockTracked,
		StockQuantity:   0,
		IsAvailable:     true,
		IsActive:        true,
	}
	require.NoError(t, testDB.Create(combo).Error)

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	})
	require.NoError(t, err)
	assert.False(t, quote.Available)
}

func TestCatalogService_QuotePrice_InactiveProduct(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	seedDurationGroup(t, testDB, product.ID, false)

	require.NoError(t, testDB.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Update("is_active", false).Error)

	_, err := catalogService.QuotePrice(context.Background(), product.ID, ppom.Selections{})
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestCatalogService_ValidateSelections(t *testing.T) {
	catalogService, testDB, product := setupCatalogServiceTest(t)
	group := seedDurationGroup(t, testDB, product.ID, true)

	result, err := catalogService.ValidateSelections(context.Background(), product.ID, ppom.Selections{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.MissingGroups, 1)
	assert.Equal(t, group.ID, result.MissingGroups[0].ID)

	result, err = catalogService.ValidateSelections(context.Background(), product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
