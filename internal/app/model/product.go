package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string // 상품 분류
type DeliveryType string    // 상품 전달 방식

const (
	CategoryGameTopup    ProductCategory = "game_topup"   // 게임 충전
	CategoryGiftCard     ProductCategory = "gift_card"    // 기프트 카드
	CategorySubscription ProductCategory = "subscription" // 구독 상품

	DeliveryAuto   DeliveryType = "auto"   // 코드 자동 발송
	DeliveryManual DeliveryType = "manual" // 관리자 수동 처리
)

type Product struct {
	ID           uint            `gorm:"primarykey" json:"id"`                                 // 상품 ID
	Name         string          `gorm:"not null" json:"name"`                                 // 상품명
	Slug         string          `gorm:"uniqueIndex;not null" json:"slug"`                     // URL 슬러그
	Description  string          `gorm:"type:text" json:"description"`                         // 상품 설명
	BasePrice    float64         `gorm:"not null" json:"base_price"`                           // 기본 가격
	Category     ProductCategory `gorm:"type:varchar(50);index" json:"category"`               // 분류
	DeliveryType DeliveryType    `gorm:"type:varchar(20);default:'auto'" json:"delivery_type"` // 전달 방식
	ImageURL     string          `json:"image_url"`                                            // 상품 이미지
	IsActive     bool            `gorm:"default:true" json:"is_active"`                        // 판매 여부
	IsFeatured   bool            `gorm:"default:false" json:"is_featured"`                     // 메인 노출 여부
	SortOrder    int             `gorm:"default:0" json:"sort_order"`                          // 정렬 순서
	CreatedAt    time.Time       `json:"created_at"`                                           // 생성 시각
	UpdatedAt    time.Time       `json:"updated_at"`                                           // 수정 시각
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`                                       // 삭제 시각(소프트 삭제)

	OptionGroups []ProductOptionGroup `gorm:"foreignKey:ProductID" json:"option_groups,omitempty"` // 옵션 그룹 배정 목록
	Combinations []OptionCombination  `gorm:"foreignKey:ProductID" json:"-"`                       // 옵션 조합 목록
	OrderItems   []OrderItem          `gorm:"foreignKey:ProductID" json:"-"`                       // 주문 항목 목록
	CartItems    []CartItem           `gorm:"foreignKey:ProductID" json:"-"`                       // 장바구니 항목 목록
}

func (Product) TableName() string {
	return "products"
}
