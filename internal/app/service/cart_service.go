package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartForbidden    = errors.New("cart item belongs to another user")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// CartLine 장바구니 한 줄. 담을 당시 단가와 현재 견적을 함께 내려
// 가격 변동을 프런트가 표시할 수 있게 한다.
type CartLine struct {
	Item         model.CartItem `json:"item"`
	CurrentPrice float64        `json:"current_price"`
	PriceChanged bool           `json:"price_changed"`
	Available    bool           `json:"available"`
}

type CartSummary struct {
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"total_amount"` // 현재 견적 기준 합계
}

type CartService interface {
	AddItem(ctx context.Context, userID, productID uint, selections ppom.Selections, quantity int) (*model.CartItem, error)
	GetCart(ctx context.Context, userID uint) (*CartSummary, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo   repository.CartRepository
	catalogSvc CatalogService
}

func NewCartService(cartRepo repository.CartRepository, catalogSvc CatalogService) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		catalogSvc: catalogSvc,
	}
}

// AddItem 옵션 선택을 검증하고 견적을 내서 장바구니에 담는다. 선택
// 스냅샷과 단가는 담는 시점 기준으로 고정되고, 동일 상품·동일 선택의
// 기존 항목이 있으면 수량만 합친다.
func (s *cartService) AddItem(ctx context.Context, userID, productID uint, selections ppom.Selections, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	quote, err := s.catalogSvc.QuotePrice(ctx, productID, selections)
	if err != nil {
		return nil, err
	}
	if !quote.Available {
		return nil, ErrSelectionUnavailable
	}

	snapshot, err := json.Marshal(selections)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndSelections(userID, productID, string(snapshot))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		existing.UnitPrice = quote.TotalPrice
		existing.CombinationID = quote.CombinationID
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		logger.Info("Cart item quantity merged", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return existing, nil
	}

	item := &model.CartItem{
		UserID:        userID,
		ProductID:     productID,
		CombinationID: quote.CombinationID,
		Selections:    string(snapshot),
		UnitPrice:     quote.TotalPrice,
		Quantity:      quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"product_id":   productID,
		"unit_price":   item.UnitPrice,
	})
	return item, nil
}

// GetCart 장바구니 조회. 각 항목을 현재 카탈로그 기준으로 재견적해서
// 담은 이후의 가격 변동과 품절 여부를 반영한다.
func (s *cartService) GetCart(ctx context.Context, userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		line := CartLine{Item: item, CurrentPrice: item.UnitPrice}

		var selections ppom.Selections
		if err := json.Unmarshal([]byte(item.Selections), &selections); err != nil {
			logger.Warn("Cart item has malformed selections snapshot", map[string]interface{}{
				"cart_item_id": item.ID,
			})
			summary.Items = append(summary.Items, line)
			continue
		}

		quote, err := s.catalogSvc.QuotePrice(ctx, item.ProductID, selections)
		if err != nil {
			// 상품이 내려갔거나 옵션 구성이 바뀐 항목은 구매 불가로 표시한다.
			line.Available = false
			summary.Items = append(summary.Items, line)
			continue
		}

		line.CurrentPrice = quote.TotalPrice
		line.PriceChanged = quote.TotalPrice != item.UnitPrice
		line.Available = quote.Available
		summary.Items = append(summary.Items, line)
		summary.TotalAmount += quote.TotalPrice * float64(item.Quantity)
	}

	return summary, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	if _, err := s.findOwnedItem(userID, itemID); err != nil {
		return err
	}
	return s.cartRepo.Delete(itemID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}

func (s *cartService) findOwnedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item access denied", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return nil, ErrCartForbidden
	}
	return item, nil
}
