package service

import (
	"testing"
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWalletServiceTest(t *testing.T) (WalletService, *gorm.DB, *model.User, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	walletRepo := repository.NewWalletRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	walletService := NewWalletService(walletRepo, userRepo, testDB, 5000, 500000, nil)

	user := &model.User{
		Email:        "user@example.com",
		PasswordHash: "hash",
		Name:         "사용자",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	admin := &model.User{
		Email:        "admin@pinbox.kr",
		PasswordHash: "hash",
		Name:         "관리자",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	return walletService, testDB, user, admin
}

func TestWalletService_SubmitTopUp(t *testing.T) {
	walletService, _, user, _ := setupWalletServiceTest(t)

	request, err := walletService.SubmitTopUp(user.ID, 50000, "https://cdn.pinbox.kr/proof/1.png")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, model.TopUpStatusPending, request.Status)

	// 접수만으로는 잔액이 변하면 안 된다
	balance, err := walletService.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), balance)
}

func TestWalletService_SubmitTopUp_AmountOutOfRange(t *testing.T) {
	walletService, _, user, _ := setupWalletServiceTest(t)

	_, err := walletService.SubmitTopUp(user.ID, 1000, "")
	assert.ErrorIs(t, err, ErrInvalidTopUpAmount)

	_, err = walletService.SubmitTopUp(user.ID, 1000000, "")
	assert.ErrorIs(t, err, ErrInvalidTopUpAmount)
}

func TestWalletService_ApproveTopUp(t *testing.T) {
	walletService, _, user, admin := setupWalletServiceTest(t)

	request, err := walletService.SubmitTopUp(user.ID, 50000, "")
	require.NoError(t, err)

	approved, err := walletService.ApproveTopUp(admin.ID, request.ID, "입금 확인")
	require.NoError(t, err)
	assert.Equal(t, model.TopUpStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, admin.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	balance, err := walletService.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), balance)

	// 원장에 충전 거래가 남아야 한다
	transactions, err := walletService.GetTransactions(user.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, model.WalletTopup, transactions[0].Type)
	assert.Equal(t, float64(50000), transactions[0].Amount)
	assert.Equal(t, float64(50000), transactions[0].BalanceAfter)
}

// 같은 요청을 두 번 승인해도 잔액이 두 번 늘면 안 된다.
func TestWalletService_ApproveTopUp_NotTwice(t *testing.T) {
	walletService, _, user, admin := setupWalletServiceTest(t)

	request, err := walletService.SubmitTopUp(user.ID, 50000, "")
	require.NoError(t, err)

	_, err = walletService.ApproveTopUp(admin.ID, request.ID, "")
	require.NoError(t, err)

	_, err = walletService.ApproveTopUp(admin.ID, request.ID, "")
	assert.ErrorIs(t, err, ErrTopUpNotPending)

	balance, err := walletService.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), balance)
}

func TestWalletService_RejectTopUp(t *testing.T) {
	walletService, _, user, admin := setupWalletServiceTest(t)

	request, err := walletService.SubmitTopUp(user.ID, 50000, "")
	require.NoError(t, err)

	rejected, err := walletService.RejectTopUp(admin.ID, request.ID, "입금 내역 불일치")
	require.NoError(t, err)
	assert.Equal(t, model.TopUpStatusRejected, rejected.Status)
	assert.Equal(t, "입금 내역 불일치", rejected.AdminNote)

	balance, err := walletService.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), balance)

	// 반려된 요청은 승인할 수 없다
	_, err = walletService.ApproveTopUp(admin.ID, request.ID, "")
	assert.ErrorIs(t, err, ErrTopUpNotPending)
}

func TestWalletService_ExpirePendingTopUps(t *testing.T) {
	walletService, testDB, user, _ := setupWalletServiceTest(t)

	stale, err := walletService.SubmitTopUp(user.ID, 50000, "")
	require.NoError(t, err)
	fresh, err := walletService.SubmitTopUp(user.ID, 60000, "")
	require.NoError(t, err)

	// 오래된 요청처럼 보이게 생성 시각을 되돌린다
	require.NoError(t, testDB.Model(&model.TopUpRequest{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	expired, err := walletService.ExpirePendingTopUps(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	requests, err := walletService.GetUserTopUps(user.ID)
	require.NoError(t, err)
	for _, r := range requests {
		switch r.ID {
		case stale.ID:
			assert.Equal(t, model.TopUpStatusExpired, r.Status)
		case fresh.ID:
			assert.Equal(t, model.TopUpStatusPending, r.Status)
		}
	}
}

func TestWalletService_GetBalance_UserNotFound(t *testing.T) {
	walletService, _, _, _ := setupWalletServiceTest(t)

	_, err := walletService.GetBalance(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
