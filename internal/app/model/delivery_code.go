package model

import (
	"time"

	"gorm.io/gorm"
)

type CodeStatus string // 코드 상태

const (
	CodeStatusAvailable CodeStatus = "available" // 발송 가능
	CodeStatusDelivered CodeStatus = "delivered" // 발송 완료
	CodeStatusRevoked   CodeStatus = "revoked"   // 폐기
)

// DeliveryCode 자동 발송용 디지털 코드 재고. 조합 ID가 있으면 해당 조합
// 구매 시에만 배정된다.
type DeliveryCode struct {
	ID            uint           `gorm:"primarykey" json:"id"`                              // 코드 ID
	ProductID     uint           `gorm:"not null;index" json:"product_id"`                  // 상품 ID
	CombinationID *uint          `gorm:"index" json:"combination_id,omitempty"`             // 옵션 조합 ID
	Code          string         `gorm:"type:text;not null" json:"-"`                       // 코드 값 (응답에 직접 노출 금지)
	Status        CodeStatus     `gorm:"type:varchar(20);default:'available';index" json:"status"` // 코드 상태
	OrderItemID   *uint          `gorm:"index" json:"order_item_id,omitempty"`              // 배정된 주문 항목 ID
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty"`                            // 발송 시각
	CreatedAt     time.Time      `json:"created_at"`                                        // 생성 시각
	UpdatedAt     time.Time      `json:"updated_at"`                                        // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                    // 삭제 시각(소프트 삭제)

	Product     Product            `gorm:"foreignKey:ProductID" json:"-"`     // 상품 정보
	Combination *OptionCombination `gorm:"foreignKey:CombinationID" json:"-"` // 조합 정보
	OrderItem   *OrderItem         `gorm:"foreignKey:OrderItemID" json:"-"`   // 주문 항목 정보
}

func (DeliveryCode) TableName() string {
	return "delivery_codes"
}
