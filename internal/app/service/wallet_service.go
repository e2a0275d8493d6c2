package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTopUpNotFound     = errors.New("top-up request not found")
	ErrTopUpNotPending   = errors.New("top-up request is not pending")
	ErrInvalidTopUpAmount = errors.New("top-up amount is out of range")
)

type WalletService interface {
	GetBalance(userID uint) (float64, error)
	GetTransactions(userID uint, limit, offset int) ([]model.WalletTransaction, error)
	SubmitTopUp(userID uint, amount float64, screenshotURL string) (*model.TopUpRequest, error)
	GetUserTopUps(userID uint) ([]model.TopUpRequest, error)
	GetTopUpsByStatus(status model.TopUpStatus) ([]model.TopUpRequest, error)
	ApproveTopUp(adminID, requestID uint, note string) (*model.TopUpRequest, error)
	RejectTopUp(adminID, requestID uint, note string) (*model.TopUpRequest, error)
	ExpirePendingTopUps(olderThan time.Duration) (int, error)
}

type walletService struct {
	walletRepo repository.WalletRepository
	userRepo   repository.UserRepository
	db         *gorm.DB
	minAmount  float64
	maxAmount  float64
	notifier   OrderNotifier
}

func NewWalletService(
	walletRepo repository.WalletRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
	minAmount, maxAmount float64,
	notifier OrderNotifier,
) WalletService {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		db:         db,
		minAmount:  minAmount,
		maxAmount:  maxAmount,
		notifier:   notifier,
	}
}

func (s *walletService) GetBalance(userID uint) (float64, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.WalletBalance, nil
}

func (s *walletService) GetTransactions(userID uint, limit, offset int) ([]model.WalletTransaction, error) {
	return s.walletRepo.FindTransactionsByUserID(userID, limit, offset)
}

// SubmitTopUp 수동 입금 충전 요청 접수. 입금 증빙 이미지를 첨부하면
// 관리자 검토 대기열에 들어간다.
func (s *walletService) SubmitTopUp(userID uint, amount float64, screenshotURL string) (*model.TopUpRequest, error) {
	if amount < s.minAmount || amount > s.maxAmount {
		logger.Warn("Top-up rejected: amount out of range", map[string]interface{}{
			"user_id": userID,
			"amount":  amount,
			"min":     s.minAmount,
			"max":     s.maxAmount,
		})
		return nil, ErrInvalidTopUpAmount
	}

	request := &model.TopUpRequest{
		UserID:        userID,
		Amount:        amount,
		ScreenshotURL: screenshotURL,
		Status:        model.TopUpStatusPending,
	}
	if err := s.walletRepo.CreateTopUpRequest(request); err != nil {
		return nil, err
	}

	logger.Info("Top-up request submitted", map[string]interface{}{
		"user_id":  userID,
		"topup_id": request.ID,
		"amount":   amount,
	})

	if s.notifier != nil {
		s.notifier.NotifyAdmins("topup.submitted", map[string]interface{}{
			"topup_id": request.ID,
			"user_id":  userID,
			"amount":   amount,
		})
	}
	return request, nil
}

func (s *walletService) GetUserTopUps(userID uint) ([]model.TopUpRequest, error) {
	return s.walletRepo.FindTopUpRequestsByUserID(userID)
}

func (s *walletService) GetTopUpsByStatus(status model.TopUpStatus) ([]model.TopUpRequest, error) {
	return s.walletRepo.FindTopUpRequestsByStatus(status)
}

// ApproveTopUp 충전 승인. 잔액 증가와 원장 기록, 요청 상태 변경이
// 한 트랜잭션에서 일어난다.
func (s *walletService) ApproveTopUp(adminID, requestID uint, note string) (*model.TopUpRequest, error) {
	request, err := s.walletRepo.FindTopUpRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopUpNotFound
		}
		return nil, err
	}
	if request.Status != model.TopUpStatusPending {
		return nil, ErrTopUpNotPending
	}

	tx := s.db.Begin()

	var user model.User
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, request.UserID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	balanceAfter := user.WalletBalance + request.Amount
	if err := tx.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", request.Amount)).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to credit wallet", err, map[string]interface{}{
			"user_id":  user.ID,
			"topup_id": requestID,
		})
		return nil, err
	}

	walletTx := &model.WalletTransaction{
		UserID:       user.ID,
		Type:         model.WalletTopup,
		Amount:       request.Amount,
		BalanceAfter: balanceAfter,
		Reference:    fmt.Sprintf("topup-%d", request.ID),
	}
	if err := tx.Create(walletTx).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	request.Status = model.TopUpStatusApproved
	request.AdminNote = note
	request.ReviewedBy = &adminID
	request.ReviewedAt = &now
	if err := tx.Save(request).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit top-up approval", err, map[string]interface{}{
			"topup_id": requestID,
		})
		return nil, err
	}

	logger.Info("Top-up approved", map[string]interface{}{
		"admin_id": adminID,
		"topup_id": requestID,
		"user_id":  user.ID,
		"amount":   request.Amount,
	})

	if s.notifier != nil {
		s.notifier.NotifyUser(user.ID, "topup.approved", map[string]interface{}{
			"topup_id": request.ID,
			"amount":   request.Amount,
			"balance":  balanceAfter,
		})
	}
	return request, nil
}

func (s *walletService) RejectTopUp(adminID, requestID uint, note string) (*model.TopUpRequest, error) {
	request, err := s.walletRepo.FindTopUpRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopUpNotFound
		}
		return nil, err
	}
	if request.Status != model.TopUpStatusPending {
		return nil, ErrTopUpNotPending
	}

	now := time.Now()
	request.Status = model.TopUpStatusRejected
	request.AdminNote = note
	request.ReviewedBy = &adminID
	request.ReviewedAt = &now
	if err := s.walletRepo.UpdateTopUpRequest(request); err != nil {
		return nil, err
	}

	logger.Info("Top-up rejected", map[string]interface{}{
		"admin_id": adminID,
		"topup_id": requestID,
	})

	if s.notifier != nil {
		s.notifier.NotifyUser(request.UserID, "topup.rejected", map[string]interface{}{
			"topup_id": request.ID,
			"note":     note,
		})
	}
	return request, nil
}

// ExpirePendingTopUps 오래 방치된 승인 대기 요청을 만료 처리한다.
// 스케줄러가 주기적으로 호출한다.
func (s *walletService) ExpirePendingTopUps(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	requests, err := s.walletRepo.FindExpiredPendingTopUps(cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range requests {
		requests[i].Status = model.TopUpStatusExpired
		if err := s.walletRepo.UpdateTopUpRequest(&requests[i]); err != nil {
			logger.Error("Failed to expire top-up request", err, map[string]interface{}{
				"topup_id": requests[i].ID,
			})
			continue
		}
		expired++
	}

	if expired > 0 {
		logger.Info("Expired stale top-up requests", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}
