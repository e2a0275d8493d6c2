package model

import (
	"time"

	"gorm.io/gorm"
)

type WalletTransactionType string // 지갑 거래 유형
type TopUpStatus string           // 충전 요청 상태

const (
	WalletTopup    WalletTransactionType = "topup"    // 지갑 충전
	WalletPurchase WalletTransactionType = "purchase" // 상품 구매
	WalletRefund   WalletTransactionType = "refund"   // 환불

	TopUpStatusPending  TopUpStatus = "pending"  // 승인 대기
	TopUpStatusApproved TopUpStatus = "approved" // 승인 완료
	TopUpStatusRejected TopUpStatus = "rejected" // 반려
	TopUpStatusExpired  TopUpStatus = "expired"  // 기한 만료
)

// WalletTransaction 지갑 원장. 잔액 변동은 반드시 거래 행과 함께 기록된다.
type WalletTransaction struct {
	ID           uint                  `gorm:"primarykey" json:"id"`                   // 거래 ID
	UserID       uint                  `gorm:"not null;index" json:"user_id"`          // 사용자 ID
	Type         WalletTransactionType `gorm:"type:varchar(20);not null" json:"type"`  // 거래 유형
	Amount       float64               `gorm:"not null" json:"amount"`                 // 변동 금액 (차감은 음수)
	BalanceAfter float64               `gorm:"not null" json:"balance_after"`          // 거래 후 잔액
	Reference    string                `gorm:"type:varchar(100)" json:"reference"`     // 참조 (주문번호, 충전요청 ID 등)
	CreatedAt    time.Time             `json:"created_at"`                             // 생성 시각

	User User `gorm:"foreignKey:UserID" json:"-"` // 사용자 정보
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// TopUpRequest 수동 입금 기반 지갑 충전 요청. 입금 증빙 스크린샷을 첨부하면
// 관리자가 검토 후 승인/반려한다.
type TopUpRequest struct {
	ID            uint           `gorm:"primarykey" json:"id"`                              // 충전 요청 ID
	UserID        uint           `gorm:"not null;index" json:"user_id"`                     // 사용자 ID
	Amount        float64        `gorm:"not null" json:"amount"`                            // 충전 금액
	ScreenshotURL string         `json:"screenshot_url"`                                    // 입금 증빙 이미지 URL
	Status        TopUpStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`  // 요청 상태
	AdminNote     string         `gorm:"type:text" json:"admin_note,omitempty"`             // 관리자 메모 (반려 사유 등)
	ReviewedBy    *uint          `gorm:"index" json:"reviewed_by,omitempty"`                // 검토 관리자 ID
	ReviewedAt    *time.Time     `json:"reviewed_at,omitempty"`                             // 검토 시각
	CreatedAt     time.Time      `json:"created_at"`                                        // 생성 시각
	UpdatedAt     time.Time      `json:"updated_at"`                                        // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                    // 삭제 시각(소프트 삭제)

	User     User  `gorm:"foreignKey:UserID" json:"user,omitempty"` // 요청자 정보
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"-"`          // 검토자 정보
}

func (TopUpRequest) TableName() string {
	return "topup_requests"
}
