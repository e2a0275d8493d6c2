package service

import (
	"errors"
	"strings"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoCodesProvided = errors.New("no delivery codes provided")
	ErrCodeNotFound    = errors.New("delivery code not found")
)

// RevealedCode 구매자에게 내려주는 코드 값. DeliveryCode 모델은 코드
// 값을 JSON에서 숨기므로 전달 완료 항목 조회에서만 이 형태로 노출한다.
type RevealedCode struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	DeliveredAt string `json:"delivered_at"`
}

type CodeService interface {
	ImportCodes(productID uint, combinationID *uint, codes []string) (int, error)
	CountAvailable(productID uint, combinationID *uint) (int64, error)
	RevokeCode(id uint) error
	GetCodesForOrderItem(userID, orderItemID uint) ([]RevealedCode, error)
}

type codeService struct {
	codeRepo  repository.DeliveryCodeRepository
	orderRepo repository.OrderRepository
}

func NewCodeService(codeRepo repository.DeliveryCodeRepository, orderRepo repository.OrderRepository) CodeService {
	return &codeService{
		codeRepo:  codeRepo,
		orderRepo: orderRepo,
	}
}

// ImportCodes 코드 문자열 목록을 발송 가능 재고로 일괄 등록한다.
// 공백 줄은 건너뛴다.
func (s *codeService) ImportCodes(productID uint, combinationID *uint, codes []string) (int, error) {
	rows := make([]model.DeliveryCode, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		rows = append(rows, model.DeliveryCode{
			ProductID:     productID,
			CombinationID: combinationID,
			Code:          code,
			Status:        model.CodeStatusAvailable,
		})
	}
	if len(rows) == 0 {
		return 0, ErrNoCodesProvided
	}

	if err := s.codeRepo.CreateBatch(rows); err != nil {
		return 0, err
	}

	logger.Info("Delivery codes imported", map[string]interface{}{
		"product_id": productID,
		"count":      len(rows),
	})
	return len(rows), nil
}

func (s *codeService) CountAvailable(productID uint, combinationID *uint) (int64, error) {
	return s.codeRepo.CountAvailable(productID, combinationID)
}

func (s *codeService) RevokeCode(id uint) error {
	if _, err := s.codeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeNotFound
		}
		return err
	}
	return s.codeRepo.Revoke(id)
}

// GetCodesForOrderItem 구매자가 자기 주문 항목의 코드 값을 조회한다.
// 소유권은 주문을 거슬러 올라가 확인한다.
func (s *codeService) GetCodesForOrderItem(userID, orderItemID uint) ([]RevealedCode, error) {
	item, err := s.orderRepo.FindItemByID(orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.orderRepo.FindByID(item.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Delivery code access denied", map[string]interface{}{
			"user_id":       userID,
			"order_item_id": orderItemID,
		})
		return nil, ErrOrderForbidden
	}

	codes, err := s.codeRepo.FindByOrderItemID(orderItemID)
	if err != nil {
		return nil, err
	}

	revealed := make([]RevealedCode, 0, len(codes))
	for _, c := range codes {
		if c.Status != model.CodeStatusDelivered {
			continue
		}
		var deliveredAt string
		if c.DeliveredAt != nil {
			deliveredAt = c.DeliveredAt.Format("2006-01-02 15:04:05")
		}
		revealed = append(revealed, RevealedCode{
			ID:          c.ID,
			Code:        c.Code,
			DeliveredAt: deliveredAt,
		})
	}
	return revealed, nil
}
