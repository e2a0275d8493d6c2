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

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.Product, *model.OptionGroup) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewOptionRepository(testDB)
	combRepo := repository.NewCombinationRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	catalogService := NewCatalogService(productRepo, optionRepo, combRepo, 0)
	cartService := NewCartService(cartRepo, catalogService)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "구매자",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:      "넷플릭스 구독권",
		Slug:      "netflix",
		BasePrice: 10000,
		Category:  model.CategorySubscription,
		IsActive:  true,
	}
	testDB.Create(product)

	group := seedDurationGroup(t, testDB, product.ID, true)

	return cartService, testDB, user, product, group
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _, user, product, group := setupCartServiceTest(t)

	item, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[1].ID)), // 3개월 +2000
	}, 2)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, float64(12000), item.UnitPrice)
	assert.Equal(t, 2, item.Quantity)
	assert.NotEmpty(t, item.Selections)
}

func TestCartService_AddItem_MissingRequiredSelection(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{}, 1)
	assert.ErrorIs(t, err, ErrInvalidSelections)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	cartService, _, user, product, group := setupCartServiceTest(t)

	_, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// 동일 상품·동일 선택은 새 줄 대신 수량이 합쳐져야 한다.
func TestCartService_AddItem_MergesIdenticalSelections(t *testing.T) {
	cartService, _, user, product, group := setupCartServiceTest(t)

	selections := ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}

	first, err := cartService.AddItem(context.Background(), user.ID, product.ID, selections, 1)
	require.NoError(t, err)

	second, err := cartService.AddItem(context.Background(), user.ID, product.ID, selections, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	summary, err := cartService.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}

func TestCartService_GetCart_ReflectsPriceChange(t *testing.T) {
	cartService, testDB, user, product, group := setupCartServiceTest(t)

	_, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[1].ID)),
	}, 1)
	require.NoError(t, err)

	// 담은 뒤 옵션 가격 인상
	require.NoError(t, testDB.Model(&model.Option{}).
		Where("id = ?", group.Options[1].ID).
		Update("price_modifier", 5000).Error)

	summary, err := cartService.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	line := summary.Items[0]
	assert.Equal(t, float64(12000), line.Item.UnitPrice)
	assert.Equal(t, float64(15000), line.CurrentPrice)
	assert.True(t, line.PriceChanged)
	assert.Equal(t, float64(15000), summary.TotalAmount)
}

func TestCartService_GetCart_UnavailableWhenProductDisabled(t *testing.T) {
	cartService, testDB, user, product, group := setupCartServiceTest(t)

	_, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}, 1)
	require.NoError(t, err)

	require.NoError(t, testDB.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Update("is_active", false).Error)

	summary, err := cartService.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.False(t, summary.Items[0].Available)
	assert.Equal(t, float64(0), summary.TotalAmount)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, _, user, product, group := setupCartServiceTest(t)

	item, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}, 1)
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(context.Background(), user.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartService_OwnershipEnforced(t *testing.T) {
	cartService, testDB, user, product, group := setupCartServiceTest(t)

	item, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}, 1)
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "다른 사용자",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err = cartService.UpdateQuantity(context.Background(), other.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartForbidden)

	err = cartService.RemoveItem(other.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartForbidden)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	cartService, _, user, product, group := setupCartServiceTest(t)

	item, err := cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[0].ID)),
	}, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.RemoveItem(user.ID, item.ID))

	summary, err := cartService.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	_, err = cartService.AddItem(context.Background(), user.ID, product.ID, ppom.Selections{
		group.ID: ppom.Choice(formatOptionID(group.Options[1].ID)),
	}, 1)
	require.NoError(t, err)
	require.NoError(t, cartService.ClearCart(user.ID))

	summary, err = cartService.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
