package model

import (
	"time"

	"gorm.io/gorm"
)

// OptionCombination 단일 선택 그룹들의 옵션 조합 한 지점.
// 매칭되면 계산 가격 대신 자체 가격과 재고가 우선 적용된다.
type OptionCombination struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 조합 ID
	ProductID        uint           `gorm:"index;not null" json:"product_id"`                          // 상품 ID
	Combination      string         `gorm:"type:text;not null" json:"combination"`                     // 그룹ID→옵션ID 매핑 (정렬 키 JSON)
	BasePrice        float64        `gorm:"default:0" json:"base_price"`                               // 조합 기본 가격
	CalculatedPrice  float64        `gorm:"default:0" json:"calculated_price"`                         // 조합 판매 가격
	StockType        StockType      `gorm:"type:varchar(20);default:'unlimited'" json:"stock_type"`    // 재고 관리 방식
	StockQuantity    int            `gorm:"default:0" json:"stock_quantity"`                           // 재고 수량
	ReservedQuantity int            `gorm:"default:0" json:"reserved_quantity"`                        // 예약 수량
	IsAvailable      bool           `gorm:"default:true" json:"is_available"`                          // 판매 가능 여부
	IsActive         bool           `gorm:"default:true" json:"is_active"`                             // 활성 여부
	SKU              string         `gorm:"type:varchar(100)" json:"sku,omitempty"`                    // 관리용 SKU
	CreatedAt        time.Time      `json:"created_at"`                                                // 생성 시각
	UpdatedAt        time.Time      `json:"updated_at"`                                                // 수정 시각
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                            // 삭제 시각(소프트 삭제)

	Product Product `gorm:"foreignKey:ProductID" json:"-"` // 상품 정보
}

func (OptionCombination) TableName() string {
	return "option_combinations"
}
