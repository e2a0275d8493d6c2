package repository

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

type DeliveryCodeRepository interface {
	CreateBatch(codes []model.DeliveryCode) error
	FindByID(id uint) (*model.DeliveryCode, error)
	FindByOrderItemID(orderItemID uint) ([]model.DeliveryCode, error)
	CountAvailable(productID uint, combinationID *uint) (int64, error)
	Update(code *model.DeliveryCode) error
	Revoke(id uint) error
}

type deliveryCodeRepository struct {
	db *gorm.DB
}

func NewDeliveryCodeRepository(db *gorm.DB) DeliveryCodeRepository {
	return &deliveryCodeRepository{db: db}
}

func (r *deliveryCodeRepository) CreateBatch(codes []model.DeliveryCode) error {
	if len(codes) == 0 {
		return nil
	}

	logger.Debug("Importing delivery codes in database", map[string]interface{}{
		"product_id": codes[0].ProductID,
		"count":      len(codes),
	})

	if err := r.db.CreateInBatches(codes, 500).Error; err != nil {
		logger.Error("Failed to import delivery codes in database", err, map[string]interface{}{
			"product_id": codes[0].ProductID,
			"count":      len(codes),
		})
		return err
	}
	return nil
}

func (r *deliveryCodeRepository) FindByID(id uint) (*model.DeliveryCode, error) {
	var code model.DeliveryCode
	if err := r.db.First(&code, id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *deliveryCodeRepository) FindByOrderItemID(orderItemID uint) ([]model.DeliveryCode, error) {
	var codes []model.DeliveryCode
	err := r.db.
		Where("order_item_id = ?", orderItemID).
		Order("id ASC").
		Find(&codes).Error
	if err != nil {
		logger.Error("Failed to find delivery codes by order item in database", err, map[string]interface{}{
			"order_item_id": orderItemID,
		})
		return nil, err
	}
	return codes, nil
}

// CountAvailable 발송 가능한 코드 수. combinationID가 nil이면 조합 미지정
// 코드만 센다.
func (r *deliveryCodeRepository) CountAvailable(productID uint, combinationID *uint) (int64, error) {
	query := r.db.Model(&model.DeliveryCode{}).
		Where("product_id = ? AND status = ?", productID, model.CodeStatusAvailable)
	if combinationID != nil {
		query = query.Where("combination_id = ?", *combinationID)
	} else {
		query = query.Where("combination_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to count available delivery codes in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}
	return count, nil
}

func (r *deliveryCodeRepository) Update(code *model.DeliveryCode) error {
	if err := r.db.Save(code).Error; err != nil {
		logger.Error("Failed to update delivery code in database", err, map[string]interface{}{
			"code_id": code.ID,
		})
		return err
	}
	return nil
}

func (r *deliveryCodeRepository) Revoke(id uint) error {
	logger.Debug("Revoking delivery code in database", map[string]interface{}{
		"code_id": id,
	})

	if err := r.db.Model(&model.DeliveryCode{}).
		Where("id = ? AND status = ?", id, model.CodeStatusAvailable).
		Update("status", model.CodeStatusRevoked).Error; err != nil {
		logger.Error("Failed to revoke delivery code in database", err, map[string]interface{}{
			"code_id": id,
		})
		return err
	}
	return nil
}
