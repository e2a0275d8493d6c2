package repository

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

type CombinationRepository interface {
	Create(combination *model.OptionCombination) error
	CreateBatch(combinations []model.OptionCombination) error
	FindByID(id uint) (*model.OptionCombination, error)
	FindByProductID(productID uint) ([]model.OptionCombination, error)
	Update(combination *model.OptionCombination) error
	Delete(id uint) error
	DeleteByProductID(productID uint) error
}

type combinationRepository struct {
	db *gorm.DB
}

func NewCombinationRepository(db *gorm.DB) CombinationRepository {
	return &combinationRepository{db: db}
}

func (r *combinationRepository) Create(combination *model.OptionCombination) error {
	logger.Debug("Creating option combination", map[string]interface{}{
		"product_id":  combination.ProductID,
		"combination": combination.Combination,
	})

	if err := r.db.Create(combination).Error; err != nil {
		logger.Error("Failed to create option combination", err, map[string]interface{}{
			"product_id": combination.ProductID,
		})
		return err
	}
	return nil
}

func (r *combinationRepository) CreateBatch(combinations []model.OptionCombination) error {
	if len(combinations) == 0 {
		return nil
	}

	logger.Debug("Creating option combinations in batch", map[string]interface{}{
		"product_id": combinations[0].ProductID,
		"count":      len(combinations),
	})

	if err := r.db.CreateInBatches(combinations, 200).Error; err != nil {
		logger.Error("Failed to create option combinations", err, map[string]interface{}{
			"product_id": combinations[0].ProductID,
			"count":      len(combinations),
		})
		return err
	}
	return nil
}

func (r *combinationRepository) FindByID(id uint) (*model.OptionCombination, error) {
	var combination model.OptionCombination
	if err := r.db.First(&combination, id).Error; err != nil {
		return nil, err
	}
	return &combination, nil
}

func (r *combinationRepository) FindByProductID(productID uint) ([]model.OptionCombination, error) {
	var combinations []model.OptionCombination
	err := r.db.
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&combinations).Error
	if err != nil {
		logger.Error("Failed to find option combinations", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return combinations, nil
}

func (r *combinationRepository) Update(combination *model.OptionCombination) error {
	logger.Debug("Updating option combination", map[string]interface{}{
		"combination_id": combination.ID,
	})

	if err := r.db.Save(combination).Error; err != nil {
		logger.Error("Failed to update option combination", err, map[string]interface{}{
			"combination_id": combination.ID,
		})
		return err
	}
	return nil
}

func (r *combinationRepository) Delete(id uint) error {
	logger.Debug("Deleting option combination", map[string]interface{}{
		"combination_id": id,
	})

	if err := r.db.Delete(&model.OptionCombination{}, id).Error; err != nil {
		logger.Error("Failed to delete option combination", err, map[string]interface{}{
			"combination_id": id,
		})
		return err
	}
	return nil
}

func (r *combinationRepository) DeleteByProductID(productID uint) error {
	logger.Debug("Deleting option combinations for product", map[string]interface{}{
		"product_id": productID,
	})

	return r.db.
		Where("product_id = ?", productID).
		Delete(&model.OptionCombination{}).Error
}
