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

type orderTestEnv struct {
	orderService OrderService
	cartService  CartService
	testDB       *gorm.DB
	user         *model.User
	product      *model.Product
	group        *model.OptionGroup
}

func setupOrderServiceTest(t *testing.T) *orderTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewOptionRepository(testDB)
	combRepo := repository.NewCombinationRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	catalogService := NewCatalogService(productRepo, optionRepo, combRepo, 0)
	cartService := NewCartService(cartRepo, catalogService)
	orderService := NewOrderService(orderRepo, cartRepo, testDB, nil)

	user := &model.User{
		Email:         "buyer@example.com",
		PasswordHash:  "hash",
		Name:          "구매자",
		Role:          model.RoleUser,
		WalletBalance: 100000,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:         "로블록스 기프트카드",
		Slug:         "roblox-gift-card",
		BasePrice:    10000,
		Category:     model.CategoryGiftCard,
		DeliveryType: model.DeliveryAuto,
		IsActive:     true,
	}
	testDB.Create(product)

	group := seedDurationGroup(t, testDB, product.ID, true)

	return &orderTestEnv{
		orderService: orderService,
		cartService:  cartService,
		testDB:       testDB,
		user:         user,
		product:      product,
		group:        group,
	}
}

func (e *orderTestEnv) addToCart(t *testing.T, optionIndex, quantity int) {
	_, err := e.cartService.AddItem(context.Background(), e.user.ID, e.product.ID, ppom.Selections{
		e.group.ID: ppom.Choice(formatOptionID(e.group.Options[optionIndex].ID)),
	}, quantity)
	require.NoError(t, err)
}

func (e *orderTestEnv) seedCodes(t *testing.T, combinationID *uint, codes ...string) {
	for _, code := range codes {
		require.NoError(t, e.testDB.Create(&model.DeliveryCode{
			ProductID:     e.product.ID,
			CombinationID: combinationID,
			Code:          code,
			Status:        model.CodeStatusAvailable,
		}).Error)
	}
}

func TestOrderService_Checkout_AutoDelivery(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 1, 2) // 3개월 +2000, 2개 = 24000
	env.seedCodes(t, nil, "AAAA-1111", "BBBB-2222")

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(24000), order.TotalAmount)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.PaidAt)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, model.DeliveryStatusDelivered, order.OrderItems[0].DeliveryStatus)
	assert.Len(t, order.OrderItems[0].DeliveryCodes, 2)

	// 지갑 차감과 원장 기록
	var user model.User
	env.testDB.First(&user, env.user.ID)
	assert.Equal(t, float64(76000), user.WalletBalance)

	var walletTx model.WalletTransaction
	require.NoError(t, env.testDB.
		Where("user_id = ? AND type = ?", env.user.ID, model.WalletPurchase).
		First(&walletTx).Error)
	assert.Equal(t, float64(-24000), walletTx.Amount)
	assert.Equal(t, float64(76000), walletTx.BalanceAfter)
	assert.Equal(t, order.OrderNumber, walletTx.Reference)

	// 장바구니 비움
	var count int64
	env.testDB.Model(&model.CartItem{}).Where("user_id = ?", env.user.ID).Count(&count)
	assert.Zero(t, count)
}

// 담은 이후 가격이 바뀌면 결제 시점 견적이 적용되어야 한다.
func TestOrderService_Checkout_RepricesAtCheckout(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 1, 1) // 담을 때 12000
	env.seedCodes(t, nil, "AAAA-1111")

	require.NoError(t, env.testDB.Model(&model.Option{}).
		Where("id = ?", env.group.Options[1].ID).
		Update("price_modifier", 5000).Error)

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(15000), order.TotalAmount)
	assert.Equal(t, float64(15000), order.OrderItems[0].UnitPrice)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.orderService.Checkout(env.user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_Checkout_InsufficientBalance(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 1, 1)

	require.NoError(t, env.testDB.Model(&model.User{}).
		Where("id = ?", env.user.ID).
		Update("wallet_balance", 5000).Error)

	_, err := env.orderService.Checkout(env.user.ID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// 실패한 결제는 아무것도 남기지 않아야 한다
	var count int64
	env.testDB.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
	env.testDB.Model(&model.WalletTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderService_Checkout_TrackedCombinationStock(t *testing.T) {
	env := setupOrderServiceTest(t)

	combo := &model.OptionCombination{
		ProductID:       env.product.ID,
		Combination:     ppom.EncodeAssignment(ppom.Assignment{env.group.ID: env.group.Options[0].ID}),
		CalculatedPrice: 9000,
		StockType:       model.StockTracked,
		StockQuantity:   3,
		IsAvailable:     true,
		IsActive:        true,
	}
	require.NoError(t, env.testDB.Create(combo).Error)
	env.seedCodes(t, &combo.ID, "AAAA-1111", "BBBB-2222")

	env.addToCart(t, 0, 2)

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(18000), order.TotalAmount) // 조합 특가 9000 x 2
	require.NotNil(t, order.OrderItems[0].CombinationID)

	var updated model.OptionCombination
	env.testDB.First(&updated, combo.ID)
	assert.Equal(t, 1, updated.StockQuantity)
}

func TestOrderService_Checkout_TrackedCombinationInsufficient(t *testing.T) {
	env := setupOrderServiceTest(t)

	combo := &model.OptionCombination{
		ProductID:       env.product.ID,
		Combination:     ppom.EncodeAssignment(ppom.Assignment{env.group.ID: env.group.Options[0].ID}),
		CalculatedPrice: 9000,
		StockType:       model.StockTracked,
		StockQuantity:   1,
		IsAvailable:     true,
		IsActive:        true,
	}
	require.NoError(t, env.testDB.Create(combo).Error)

	// 장바구니에는 재고 내 수량으로 담고, 결제 전에 재고가 줄어든 상황
	env.addToCart(t, 0, 1)
	require.NoError(t, env.testDB.Model(&model.OptionCombination{}).
		Where("id = ?", combo.ID).
		Update("stock_quantity", 0).Error)

	_, err := env.orderService.Checkout(env.user.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

// 자동 전달 상품인데 코드 재고가 모자라면 결제는 성공하고 전달만
// 대기 상태로 남아야 한다.
func TestOrderService_Checkout_AutoDeliveryDeferredWithoutCodes(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 0, 2)
	env.seedCodes(t, nil, "AAAA-1111") // 1개뿐

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, model.DeliveryStatusPending, order.OrderItems[0].DeliveryStatus)

	// 부분 배정은 없어야 한다
	var claimed int64
	env.testDB.Model(&model.DeliveryCode{}).
		Where("status = ?", model.CodeStatusDelivered).
		Count(&claimed)
	assert.Zero(t, claimed)
}

func TestOrderService_Checkout_ManualProductStaysPending(t *testing.T) {
	env := setupOrderServiceTest(t)
	require.NoError(t, env.testDB.Model(&model.Product{}).
		Where("id = ?", env.product.ID).
		Update("delivery_type", model.DeliveryManual).Error)

	env.addToCart(t, 0, 1)

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, model.DeliveryStatusPending, order.OrderItems[0].DeliveryStatus)
}

func TestOrderService_DeliverItem(t *testing.T) {
	env := setupOrderServiceTest(t)
	require.NoError(t, env.testDB.Model(&model.Product{}).
		Where("id = ?", env.product.ID).
		Update("delivery_type", model.DeliveryManual).Error)

	env.addToCart(t, 0, 2)
	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)

	item := order.OrderItems[0]

	_, err = env.orderService.DeliverItem(1, item.ID, []string{"CCCC-3333"})
	assert.ErrorIs(t, err, ErrNotEnoughCodes)

	delivered, err := env.orderService.DeliverItem(1, item.ID, []string{"CCCC-3333", "DDDD-4444"})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusDelivered, delivered.DeliveryStatus)
	assert.Len(t, delivered.DeliveryCodes, 2)

	updatedOrder, err := env.orderService.GetOrderByID(env.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updatedOrder.Status)

	_, err = env.orderService.DeliverItem(1, item.ID, []string{"EEEE-5555", "FFFF-6666"})
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
}

func TestOrderService_CancelOrder_RefundsWallet(t *testing.T) {
	env := setupOrderServiceTest(t)
	require.NoError(t, env.testDB.Model(&model.Product{}).
		Where("id = ?", env.product.ID).
		Update("delivery_type", model.DeliveryManual).Error)

	env.addToCart(t, 1, 1) // 12000
	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)

	cancelled, err := env.orderService.CancelOrder(env.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRefunded, cancelled.Status)

	var user model.User
	env.testDB.First(&user, env.user.ID)
	assert.Equal(t, float64(100000), user.WalletBalance)

	var refund model.WalletTransaction
	require.NoError(t, env.testDB.
		Where("user_id = ? AND type = ?", env.user.ID, model.WalletRefund).
		First(&refund).Error)
	assert.Equal(t, float64(12000), refund.Amount)
}

func TestOrderService_CancelOrder_RejectedAfterDelivery(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 0, 1)
	env.seedCodes(t, nil, "AAAA-1111")

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, order.Status)

	_, err = env.orderService.CancelOrder(env.user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 0, 1)
	env.seedCodes(t, nil, "AAAA-1111")

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "다른 사용자",
		Role:         model.RoleUser,
	}
	env.testDB.Create(other)

	_, err = env.orderService.GetOrderByID(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)

	_, err = env.orderService.GetOrderByID(env.user.ID, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
