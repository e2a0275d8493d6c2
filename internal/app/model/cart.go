package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`                  // 장바구니 항목 ID
	UserID        uint           `gorm:"not null;index" json:"user_id"`         // 사용자 ID
	ProductID     uint           `gorm:"not null;index" json:"product_id"`      // 상품 ID
	CombinationID *uint          `gorm:"index" json:"combination_id,omitempty"` // 매칭된 옵션 조합 ID
	Selections    string         `gorm:"type:text" json:"selections"`           // 옵션 선택 스냅샷 (JSON)
	UnitPrice     float64        `gorm:"not null" json:"unit_price"`            // 담을 당시 견적 단가
	Quantity      int            `gorm:"not null;default:1" json:"quantity"`    // 수량
	CreatedAt     time.Time      `json:"created_at"`                            // 생성 시각
	UpdatedAt     time.Time      `json:"updated_at"`                            // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                        // 삭제 시각(소프트 삭제)

	User        User               `gorm:"foreignKey:UserID" json:"-"`                          // 사용자 정보
	Product     Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`       // 상품 정보
	Combination *OptionCombination `gorm:"foreignKey:CombinationID" json:"combination,omitempty"` // 조합 정보
}

func (CartItem) TableName() string {
	return "cart_items"
}
