package db

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/pinbox-kr/pinbox-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.OptionGroup{},
		&model.Option{},
		&model.ProductOptionGroup{},
		&model.OptionCombination{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.WalletTransaction{},
		&model.TopUpRequest{},
		&model.DeliveryCode{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedAdminUser()
}

// seedAdminUser 최초 기동 시 기본 관리자 계정 생성
func seedAdminUser() error {
	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already exists, skipping seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword("admin1234!")
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@pinbox.kr",
		PasswordHash: hash,
		Name:         "관리자",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	logger.Info("Default admin user seeded", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}
