package service

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeService_ImportCodes(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	codeRepo := repository.NewDeliveryCodeRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	codeService := NewCodeService(codeRepo, orderRepo)

	product := &model.Product{
		Name:      "배틀넷 기프트카드",
		Slug:      "battlenet",
		BasePrice: 30000,
		Category:  model.CategoryGiftCard,
		IsActive:  true,
	}
	testDB.Create(product)

	// 공백 줄은 걸러져야 한다
	count, err := codeService.ImportCodes(product.ID, nil, []string{
		"AAAA-1111", "BBBB-2222", "", "  ", "CCCC-3333",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	available, err := codeService.CountAvailable(product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), available)

	_, err = codeService.ImportCodes(product.ID, nil, []string{"", " "})
	assert.ErrorIs(t, err, ErrNoCodesProvided)
}

func TestCodeService_RevokeCode(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	codeRepo := repository.NewDeliveryCodeRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	codeService := NewCodeService(codeRepo, orderRepo)

	product := &model.Product{Name: "상품", Slug: "p", BasePrice: 1000, IsActive: true}
	testDB.Create(product)

	_, err = codeService.ImportCodes(product.ID, nil, []string{"AAAA-1111"})
	require.NoError(t, err)

	var code model.DeliveryCode
	require.NoError(t, testDB.First(&code).Error)

	require.NoError(t, codeService.RevokeCode(code.ID))

	available, err := codeService.CountAvailable(product.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, available)

	err = codeService.RevokeCode(9999)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

// 코드 값은 구매자 본인에게만, 전달 완료 후에만 보여야 한다.
func TestCodeService_GetCodesForOrderItem(t *testing.T) {
	env := setupOrderServiceTest(t)
	env.addToCart(t, 0, 1)
	env.seedCodes(t, nil, "AAAA-1111")

	order, err := env.orderService.Checkout(env.user.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, order.Status)

	codeRepo := repository.NewDeliveryCodeRepository(env.testDB)
	orderRepo := repository.NewOrderRepository(env.testDB)
	codeService := NewCodeService(codeRepo, orderRepo)

	codes, err := codeService.GetCodesForOrderItem(env.user.ID, order.OrderItems[0].ID)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "AAAA-1111", codes[0].Code)
	assert.NotEmpty(t, codes[0].DeliveredAt)

	other := &model.User{
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Name:         "타인",
		Role:         model.RoleUser,
	}
	env.testDB.Create(other)

	_, err = codeService.GetCodesForOrderItem(other.ID, order.OrderItems[0].ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)
}
