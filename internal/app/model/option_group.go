package model

import (
	"time"

	"gorm.io/gorm"
)

type DisplayType string       // 옵션 노출 방식
type SelectionType string     // 옵션 선택 방식
type PriceModifierType string // 가격 조정 방식
type StockType string         // 재고 관리 방식

const (
	DisplayDropdown    DisplayType = "dropdown"     // 드롭다운
	DisplayRadio       DisplayType = "radio"        // 라디오 버튼
	DisplayCheckbox    DisplayType = "checkbox"     // 체크박스
	DisplayColorPicker DisplayType = "color_picker" // 색상 선택
	DisplayImagePicker DisplayType = "image_picker" // 이미지 선택
	DisplayTextInput   DisplayType = "text_input"   // 텍스트 입력
	DisplayNumberInput DisplayType = "number_input" // 숫자 입력

	SelectionSingle   SelectionType = "single"   // 단일 선택
	SelectionMultiple SelectionType = "multiple" // 다중 선택

	ModifierFixed      PriceModifierType = "fixed"      // 고정 금액
	ModifierPercentage PriceModifierType = "percentage" // 기본 가격 대비 퍼센트

	StockInherit   StockType = "inherit"   // 상품 재고 따름
	StockUnlimited StockType = "unlimited" // 무제한
	StockTracked   StockType = "tracked"   // 수량 추적
)

type OptionGroup struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                  // 옵션 그룹 ID
	Name          string         `gorm:"not null" json:"name"`                                  // 그룹명 (예: 기간, 지역)
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                      // URL 슬러그
	Description   string         `gorm:"type:text" json:"description"`                          // 그룹 설명
	DisplayType   DisplayType    `gorm:"type:varchar(20);default:'dropdown'" json:"display_type"`   // 노출 방식
	SelectionType SelectionType  `gorm:"type:varchar(20);default:'single'" json:"selection_type"`   // 선택 방식
	IsRequired    bool           `gorm:"default:false" json:"is_required"`                      // 필수 선택 여부
	IsGlobal      bool           `gorm:"default:false" json:"is_global"`                        // 여러 상품에서 공용 사용 여부
	IsActive      bool           `gorm:"default:true" json:"is_active"`                         // 활성 여부
	SortOrder     int            `gorm:"default:0" json:"sort_order"`                           // 정렬 순서
	CreatedAt     time.Time      `json:"created_at"`                                            // 생성 시각
	UpdatedAt     time.Time      `json:"updated_at"`                                            // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                        // 삭제 시각(소프트 삭제)

	Options []Option `gorm:"foreignKey:OptionGroupID" json:"options,omitempty"` // 소속 옵션 목록
}

func (OptionGroup) TableName() string {
	return "option_groups"
}

// ActiveOptions returns the group's active options in sort order.
func (g OptionGroup) ActiveOptions() []Option {
	active := make([]Option, 0, len(g.Options))
	for _, o := range g.Options {
		if o.IsActive {
			active = append(active, o)
		}
	}
	return active
}

type Option struct {
	ID                uint              `gorm:"primarykey" json:"id"`                                    // 옵션 ID
	OptionGroupID     uint              `gorm:"index;not null" json:"option_group_id"`                   // 소속 그룹 ID
	Name              string            `gorm:"not null" json:"name"`                                    // 옵션명 (예: 3개월)
	Slug              string            `gorm:"not null" json:"slug"`                                    // 슬러그
	Description       string            `json:"description"`                                             // 옵션 설명
	DisplayValue      string            `json:"display_value"`                                           // 노출용 값
	ColorCode         string            `json:"color_code"`                                              // 색상 코드 (color_picker용)
	ImageURL          string            `json:"image_url"`                                               // 옵션 이미지 (image_picker용)
	PriceModifier     float64           `gorm:"default:0" json:"price_modifier"`                         // 가격 조정값 (음수 허용)
	PriceModifierType PriceModifierType `gorm:"type:varchar(20);default:'fixed'" json:"price_modifier_type"` // 가격 조정 방식
	StockType         StockType         `gorm:"type:varchar(20);default:'inherit'" json:"stock_type"`    // 재고 관리 방식
	StockQuantity     int               `gorm:"default:0" json:"stock_quantity"`                         // 재고 수량 (tracked용)
	IsDefault         bool              `gorm:"default:false" json:"is_default"`                         // 기본 선택 여부
	IsActive          bool              `gorm:"default:true" json:"is_active"`                           // 활성 여부
	SortOrder         int               `gorm:"default:0" json:"sort_order"`                             // 정렬 순서
	CreatedAt         time.Time         `json:"created_at"`                                              // 생성 시각
	UpdatedAt         time.Time         `json:"updated_at"`                                              // 수정 시각
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`                                          // 삭제 시각(소프트 삭제)

	OptionGroup OptionGroup `gorm:"foreignKey:OptionGroupID" json:"-"` // 소속 그룹 정보
}

func (Option) TableName() string {
	return "options"
}

// ProductOptionGroup 상품-옵션그룹 배정. 그룹을 소유하지 않고 참조만 하며,
// 상품별 필수 여부 재정의와 정렬 순서를 가진다.
type ProductOptionGroup struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 배정 ID
	ProductID     uint           `gorm:"index:idx_product_group,unique;not null" json:"product_id"`  // 상품 ID
	OptionGroupID uint           `gorm:"index:idx_product_group,unique;not null" json:"option_group_id"` // 옵션 그룹 ID
	IsRequired    *bool          `json:"is_required,omitempty"`                                      // 상품별 필수 여부 재정의 (nil이면 그룹 설정 사용)
	SortOrder     int            `gorm:"default:0" json:"sort_order"`                                // 상품 내 정렬 순서
	CreatedAt     time.Time      `json:"created_at"`                                                 // 생성 시각
	UpdatedAt     time.Time      `json:"updated_at"`                                                 // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 삭제 시각(소프트 삭제)

	Product     Product     `gorm:"foreignKey:ProductID" json:"-"`                             // 상품 정보
	OptionGroup OptionGroup `gorm:"foreignKey:OptionGroupID" json:"option_group,omitempty"`    // 그룹 정보
}

func (ProductOptionGroup) TableName() string {
	return "product_option_groups"
}
