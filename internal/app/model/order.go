package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string    // 주문 상태 코드
type DeliveryStatus string // 전달 상태 코드

const (
	OrderStatusPending   OrderStatus = "pending"   // 주문 접수
	OrderStatusPaid      OrderStatus = "paid"      // 결제 완료 (지갑 차감)
	OrderStatusCompleted OrderStatus = "completed" // 전달 완료
	OrderStatusCancelled OrderStatus = "cancelled" // 주문 취소
	OrderStatusRefunded  OrderStatus = "refunded"  // 환불 완료

	DeliveryStatusPending   DeliveryStatus = "pending"   // 전달 대기
	DeliveryStatusDelivered DeliveryStatus = "delivered" // 전달 완료
)

type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 주문 ID
	OrderNumber string         `gorm:"uniqueIndex;not null" json:"order_number"`         // 주문 번호 (외부 노출용)
	UserID      uint           `gorm:"not null;index" json:"user_id"`                    // 주문자 ID
	TotalAmount float64        `gorm:"not null" json:"total_amount"`                     // 총 결제 금액
	Status      OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"` // 주문 상태
	PaidAt      *time.Time     `json:"paid_at,omitempty"`                                // 결제 시각
	CreatedAt   time.Time      `json:"created_at"`                                       // 생성 시각
	UpdatedAt   time.Time      `json:"updated_at"`                                       // 수정 시각
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 삭제 시각(소프트 삭제)

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`                                     // 주문자 정보
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 주문 항목 ID
	OrderID        uint           `gorm:"not null;index" json:"order_id"`                               // 주문 ID
	ProductID      uint           `gorm:"not null;index" json:"product_id"`                             // 상품 ID
	CombinationID  *uint          `gorm:"index" json:"combination_id,omitempty"`                        // 매칭된 옵션 조합 ID
	Selections     string         `gorm:"type:text" json:"selections"`                                  // 옵션 선택 스냅샷 (JSON)
	UnitPrice      float64        `gorm:"not null" json:"unit_price"`                                   // 단가
	Quantity       int            `gorm:"not null" json:"quantity"`                                     // 수량
	DeliveryStatus DeliveryStatus `gorm:"type:varchar(20);default:'pending'" json:"delivery_status"`    // 전달 상태
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`                                       // 전달 시각
	CreatedAt      time.Time      `json:"created_at"`                                                   // 생성 시각
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 삭제 시각(소프트 삭제)

	Order         Order              `gorm:"foreignKey:OrderID" json:"-"`                             // 주문 정보
	Product       Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`           // 상품 정보
	Combination   *OptionCombination `gorm:"foreignKey:CombinationID" json:"combination,omitempty"`   // 조합 정보
	DeliveryCodes []DeliveryCode     `gorm:"foreignKey:OrderItemID" json:"delivery_codes,omitempty"`  // 전달된 코드 목록
}

func (OrderItem) TableName() string {
	return "order_items"
}
