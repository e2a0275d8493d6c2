package repository

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

type OptionRepository interface {
	// 옵션 그룹
	CreateGroup(group *model.OptionGroup) error
	FindGroupByID(id uint) (*model.OptionGroup, error)
	FindGroups(globalOnly bool) ([]model.OptionGroup, error)
	UpdateGroup(group *model.OptionGroup) error
	DeleteGroup(id uint) error
	CountAssignments(groupID uint) (int64, error)

	// 옵션
	CreateOption(option *model.Option) error
	FindOptionByID(id uint) (*model.Option, error)
	UpdateOption(option *model.Option) error
	DeleteOption(id uint) error

	// 상품-그룹 배정
	AssignGroup(assignment *model.ProductOptionGroup) error
	UnassignGroup(productID, groupID uint) error
	UpdateAssignment(assignment *model.ProductOptionGroup) error
	FindAssignmentsByProductID(productID uint) ([]model.ProductOptionGroup, error)
	FindProductIDsByGroupID(groupID uint) ([]uint, error)
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) CreateGroup(group *model.OptionGroup) error {
	logger.Debug("Creating option group", map[string]interface{}{
		"name": group.Name,
		"slug": group.Slug,
	})

	if err := r.db.Create(group).Error; err != nil {
		logger.Error("Failed to create option group", err, map[string]interface{}{
			"name": group.Name,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindGroupByID(id uint) (*model.OptionGroup, error) {
	var group model.OptionGroup
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *optionRepository) FindGroups(globalOnly bool) ([]model.OptionGroup, error) {
	query := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("sort_order ASC, id ASC")
	if globalOnly {
		query = query.Where("is_global = ?", true)
	}

	var groups []model.OptionGroup
	if err := query.Find(&groups).Error; err != nil {
		logger.Error("Failed to find option groups", err)
		return nil, err
	}
	return groups, nil
}

func (r *optionRepository) UpdateGroup(group *model.OptionGroup) error {
	logger.Debug("Updating option group", map[string]interface{}{
		"group_id": group.ID,
	})

	if err := r.db.Save(group).Error; err != nil {
		logger.Error("Failed to update option group", err, map[string]interface{}{
			"group_id": group.ID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) DeleteGroup(id uint) error {
	logger.Debug("Deleting option group", map[string]interface{}{
		"group_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_group_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.OptionGroup{}, id).Error
	})
}

func (r *optionRepository) CountAssignments(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductOptionGroup{}).
		Where("option_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *optionRepository) CreateOption(option *model.Option) error {
	logger.Debug("Creating option", map[string]interface{}{
		"group_id": option.OptionGroupID,
		"name":     option.Name,
	})

	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create option", err, map[string]interface{}{
			"group_id": option.OptionGroupID,
			"name":     option.Name,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindOptionByID(id uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionRepository) UpdateOption(option *model.Option) error {
	logger.Debug("Updating option", map[string]interface{}{
		"option_id": option.ID,
	})

	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to update option", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) DeleteOption(id uint) error {
	logger.Debug("Deleting option", map[string]interface{}{
		"option_id": id,
	})

	if err := r.db.Delete(&model.Option{}, id).Error; err != nil {
		logger.Error("Failed to delete option", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}
	return nil
}

func (r *optionRepository) AssignGroup(assignment *model.ProductOptionGroup) error {
	logger.Debug("Assigning option group to product", map[string]interface{}{
		"product_id": assignment.ProductID,
		"group_id":   assignment.OptionGroupID,
	})

	if err := r.db.Create(assignment).Error; err != nil {
		logger.Error("Failed to assign option group", err, map[string]interface{}{
			"product_id": assignment.ProductID,
			"group_id":   assignment.OptionGroupID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) UnassignGroup(productID, groupID uint) error {
	logger.Debug("Unassigning option group from product", map[string]interface{}{
		"product_id": productID,
		"group_id":   groupID,
	})

	return r.db.
		Where("product_id = ? AND option_group_id = ?", productID, groupID).
		Delete(&model.ProductOptionGroup{}).Error
}

// UpdateAssignment 상품-그룹 키로 배정을 찾아 재정의 값을 통째로 교체한다.
func (r *optionRepository) UpdateAssignment(assignment *model.ProductOptionGroup) error {
	err := r.db.Model(&model.ProductOptionGroup{}).
		Where("product_id = ? AND option_group_id = ?", assignment.ProductID, assignment.OptionGroupID).
		Updates(map[string]interface{}{
			"is_required": assignment.IsRequired,
			"sort_order":  assignment.SortOrder,
		}).Error
	if err != nil {
		logger.Error("Failed to update option group assignment", err, map[string]interface{}{
			"product_id": assignment.ProductID,
			"group_id":   assignment.OptionGroupID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindAssignmentsByProductID(productID uint) ([]model.ProductOptionGroup, error) {
	var assignments []model.ProductOptionGroup
	err := r.db.
		Preload("OptionGroup").
		Preload("OptionGroup.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&assignments).Error
	if err != nil {
		logger.Error("Failed to find option group assignments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return assignments, nil
}

func (r *optionRepository) FindProductIDsByGroupID(groupID uint) ([]uint, error) {
	var productIDs []uint
	err := r.db.Model(&model.ProductOptionGroup{}).
		Where("option_group_id = ?", groupID).
		Pluck("product_id", &productIDs).Error
	if err != nil {
		logger.Error("Failed to find products using option group", err, map[string]interface{}{
			"group_id": groupID,
		})
		return nil, err
	}
	return productIDs, nil
}
