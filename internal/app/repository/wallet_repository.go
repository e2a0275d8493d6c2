package repository

import (
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

type WalletRepository interface {
	CreateTransaction(tx *model.WalletTransaction) error
	FindTransactionsByUserID(userID uint, limit, offset int) ([]model.WalletTransaction, error)
	CreateTopUpRequest(request *model.TopUpRequest) error
	FindTopUpRequestByID(id uint) (*model.TopUpRequest, error)
	FindTopUpRequestsByUserID(userID uint) ([]model.TopUpRequest, error)
	FindTopUpRequestsByStatus(status model.TopUpStatus) ([]model.TopUpRequest, error)
	FindExpiredPendingTopUps(olderThan time.Time) ([]model.TopUpRequest, error)
	UpdateTopUpRequest(request *model.TopUpRequest) error
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) CreateTransaction(tx *model.WalletTransaction) error {
	logger.Debug("Creating wallet transaction in database", map[string]interface{}{
		"user_id": tx.UserID,
		"type":    tx.Type,
		"amount":  tx.Amount,
	})

	if err := r.db.Create(tx).Error; err != nil {
		logger.Error("Failed to create wallet transaction in database", err, map[string]interface{}{
			"user_id": tx.UserID,
			"type":    tx.Type,
		})
		return err
	}
	return nil
}

func (r *walletRepository) FindTransactionsByUserID(userID uint, limit, offset int) ([]model.WalletTransaction, error) {
	query := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var transactions []model.WalletTransaction
	if err := query.Find(&transactions).Error; err != nil {
		logger.Error("Failed to find wallet transactions in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return transactions, nil
}

func (r *walletRepository) CreateTopUpRequest(request *model.TopUpRequest) error {
	logger.Debug("Creating top-up request in database", map[string]interface{}{
		"user_id": request.UserID,
		"amount":  request.Amount,
	})

	if err := r.db.Create(request).Error; err != nil {
		logger.Error("Failed to create top-up request in database", err, map[string]interface{}{
			"user_id": request.UserID,
			"amount":  request.Amount,
		})
		return err
	}
	return nil
}

func (r *walletRepository) FindTopUpRequestByID(id uint) (*model.TopUpRequest, error) {
	var request model.TopUpRequest
	if err := r.db.Preload("User").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *walletRepository) FindTopUpRequestsByUserID(userID uint) ([]model.TopUpRequest, error) {
	var requests []model.TopUpRequest
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		logger.Error("Failed to find top-up requests by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return requests, nil
}

func (r *walletRepository) FindTopUpRequestsByStatus(status model.TopUpStatus) ([]model.TopUpRequest, error) {
	var requests []model.TopUpRequest
	err := r.db.
		Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		logger.Error("Failed to find top-up requests by status in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return requests, nil
}

func (r *walletRepository) FindExpiredPendingTopUps(olderThan time.Time) ([]model.TopUpRequest, error) {
	var requests []model.TopUpRequest
	err := r.db.
		Where("status = ? AND created_at < ?", model.TopUpStatusPending, olderThan).
		Find(&requests).Error
	if err != nil {
		logger.Error("Failed to find expired pending top-up requests in database", err, map[string]interface{}{
			"older_than": olderThan,
		})
		return nil, err
	}
	return requests, nil
}

func (r *walletRepository) UpdateTopUpRequest(request *model.TopUpRequest) error {
	logger.Debug("Updating top-up request in database", map[string]interface{}{
		"topup_id": request.ID,
		"status":   request.Status,
	})

	if err := r.db.Save(request).Error; err != nil {
		logger.Error("Failed to update top-up request in database", err, map[string]interface{}{
			"topup_id": request.ID,
		})
		return err
	}
	return nil
}
