package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/pinbox-kr/pinbox-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderForbidden      = errors.New("order belongs to another user")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("wallet balance is insufficient")
	ErrInsufficientStock   = errors.New("combination stock is insufficient")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	ErrAlreadyDelivered    = errors.New("order item is already delivered")
	ErrNotEnoughCodes      = errors.New("not enough delivery codes in stock")
)

// OrderNotifier 주문 이벤트를 실시간 채널로 밀어넣는 인터페이스.
// 웹소켓 허브가 구현하며, nil이면 알림 없이 동작한다.
type OrderNotifier interface {
	NotifyUser(userID uint, event string, payload interface{})
	NotifyAdmins(event string, payload interface{})
}

type OrderService interface {
	Checkout(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	GetOrdersByStatus(status model.OrderStatus) ([]model.Order, error)
	DeliverItem(adminID, orderItemID uint, codes []string) (*model.OrderItem, error)
	CancelOrder(userID, orderID uint) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
	notifier  OrderNotifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		db:        db,
		notifier:  notifier,
	}
}

// Checkout 장바구니 전체를 하나의 주문으로 결제한다. 트랜잭션 안에서
// 선택 옵션을 재검증하고 현재 카탈로그 기준으로 재견적한 뒤 지갑을
// 차감하므로, 담은 이후 가격이 바뀌었으면 바뀐 가격으로 결제된다.
// 자동 전달 상품은 같은 트랜잭션에서 코드가 배정된다.
func (s *orderService) Checkout(userID uint) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	orderNumber := util.GenerateOrderNumber()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var user model.User
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to lock user during checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	var (
		totalAmount float64
		orderItems  []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}
		if !product.IsActive {
			tx.Rollback()
			logger.Warn("Checkout failed: product not for sale", map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, ErrProductInactive
		}

		var selections ppom.Selections
		if err := json.Unmarshal([]byte(cartItem.Selections), &selections); err != nil {
			tx.Rollback()
			logger.Warn("Checkout failed: malformed selections snapshot", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": cartItem.ID,
			})
			return nil, ErrInvalidSelections
		}

		groups, overrides, combinations, err := s.loadCatalogTx(tx, product.ID)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		result := ppom.ValidateSelections(groups, selections, overrides)
		if !result.Valid {
			tx.Rollback()
			logger.Warn("Checkout failed: selections no longer valid", map[string]interface{}{
				"user_id":        userID,
				"product_id":     product.ID,
				"missing_groups": result.MissingGroups,
			})
			return nil, ErrInvalidSelections
		}

		calc := ppom.EffectivePrice(product.BasePrice, groups, selections, combinations)

		var combinationID *uint
		if calc.Combination != nil {
			combo, err := s.reserveCombinationTx(tx, calc.Combination.ID, cartItem.Quantity)
			if err != nil {
				tx.Rollback()
				logger.Warn("Checkout failed: combination unavailable", map[string]interface{}{
					"user_id":        userID,
					"combination_id": calc.Combination.ID,
					"error":          err.Error(),
				})
				return nil, err
			}
			combinationID = &combo.ID
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID:      product.ID,
			CombinationID:  combinationID,
			Selections:     cartItem.Selections,
			UnitPrice:      calc.TotalPrice,
			Quantity:       cartItem.Quantity,
			DeliveryStatus: model.DeliveryStatusPending,
		})
		totalAmount += calc.TotalPrice * float64(cartItem.Quantity)
	}

	if user.WalletBalance < totalAmount {
		tx.Rollback()
		logger.Warn("Checkout failed: insufficient wallet balance", map[string]interface{}{
			"user_id":      userID,
			"balance":      user.WalletBalance,
			"total_amount": totalAmount,
		})
		return nil, ErrInsufficientBalance
	}

	balanceAfter := user.WalletBalance - totalAmount
	if err := tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", totalAmount)).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to debit wallet", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	walletTx := &model.WalletTransaction{
		UserID:       userID,
		Type:         model.WalletPurchase,
		Amount:       -totalAmount,
		BalanceAfter: balanceAfter,
		Reference:    orderNumber,
	}
	if err := tx.Create(walletTx).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to record wallet transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	now := time.Now()
	order := &model.Order{
		OrderNumber: orderNumber,
		UserID:      userID,
		TotalAmount: totalAmount,
		Status:      model.OrderStatusPaid,
		PaidAt:      &now,
		OrderItems:  orderItems,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
		return nil, err
	}

	// 자동 전달 상품은 결제와 같은 트랜잭션에서 코드를 배정한다.
	allDelivered := true
	for i := range order.OrderItems {
		item := &order.OrderItems[i]

		var product model.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if product.DeliveryType != model.DeliveryAuto {
			allDelivered = false
			continue
		}

		delivered, err := s.claimCodesTx(tx, item)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if !delivered {
			// 코드 재고가 모자라면 관리자 수동 처리 대기로 남긴다.
			logger.Warn("Auto delivery deferred: not enough codes", map[string]interface{}{
				"order_item_id": item.ID,
				"product_id":    item.ProductID,
			})
			allDelivered = false
		}
	}

	if allDelivered {
		order.Status = model.OrderStatusCompleted
		if err := tx.Model(&model.Order{}).
			Where("id = ?", order.ID).
			Update("status", model.OrderStatusCompleted).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": orderNumber,
		"total_amount": totalAmount,
		"status":       order.Status,
	})

	s.notify(userID, "order.created", map[string]interface{}{
		"order_number": orderNumber,
		"status":       order.Status,
	})

	return s.orderRepo.FindByID(order.ID)
}

// loadCatalogTx 트랜잭션 스냅샷 기준으로 상품의 옵션 카탈로그를 읽는다.
// 결제 경로는 캐시를 거치지 않는다.
func (s *orderService) loadCatalogTx(tx *gorm.DB, productID uint) ([]model.OptionGroup, map[uint]bool, []model.OptionCombination, error) {
	var assignments []model.ProductOptionGroup
	err := tx.
		Preload("OptionGroup").
		Preload("OptionGroup.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, nil, nil, err
	}

	groups := make([]model.OptionGroup, 0, len(assignments))
	overrides := make(map[uint]bool, len(assignments))
	for _, a := range assignments {
		if !a.OptionGroup.IsActive {
			continue
		}
		groups = append(groups, a.OptionGroup)
		required := a.OptionGroup.IsRequired
		if a.IsRequired != nil {
			required = *a.IsRequired
		}
		overrides[a.OptionGroup.ID] = required
	}

	var combinations []model.OptionCombination
	if err := tx.Where("product_id = ?", productID).Find(&combinations).Error; err != nil {
		return nil, nil, nil, err
	}
	return groups, overrides, combinations, nil
}

// reserveCombinationTx 조합 행을 잠그고 추적 재고면 수량을 차감한다.
func (s *orderService) reserveCombinationTx(tx *gorm.DB, combinationID uint, quantity int) (*model.OptionCombination, error) {
	var combo model.OptionCombination
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&combo, combinationID).Error; err != nil {
		return nil, err
	}

	if !combo.IsActive || !combo.IsAvailable {
		return nil, ErrSelectionUnavailable
	}
	if combo.StockType == model.StockTracked {
		if combo.StockQuantity-combo.ReservedQuantity < quantity {
			return nil, ErrInsufficientStock
		}
		if err := tx.Model(&model.OptionCombination{}).
			Where("id = ?", combo.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error; err != nil {
			return nil, err
		}
	}
	return &combo, nil
}

// claimCodesTx 주문 항목 수량만큼 발송 가능한 코드를 잠그고 배정한다.
// 재고가 모자라면 아무것도 배정하지 않고 false를 반환한다.
func (s *orderService) claimCodesTx(tx *gorm.DB, item *model.OrderItem) (bool, error) {
	query := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND status = ?", item.ProductID, model.CodeStatusAvailable)
	if item.CombinationID != nil {
		query = query.Where("combination_id = ?", *item.CombinationID)
	} else {
		query = query.Where("combination_id IS NULL")
	}

	var codes []model.DeliveryCode
	if err := query.Order("id ASC").Limit(item.Quantity).Find(&codes).Error; err != nil {
		return false, err
	}
	if len(codes) < item.Quantity {
		return false, nil
	}

	now := time.Now()
	for i := range codes {
		codes[i].Status = model.CodeStatusDelivered
		codes[i].OrderItemID = &item.ID
		codes[i].DeliveredAt = &now
		if err := tx.Save(&codes[i]).Error; err != nil {
			return false, err
		}
	}

	item.DeliveryStatus = model.DeliveryStatusDelivered
	item.DeliveredAt = &now
	if err := tx.Model(&model.OrderItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"delivery_status": model.DeliveryStatusDelivered,
			"delivered_at":    now,
		}).Error; err != nil {
		return false, err
	}

	logger.Info("Delivery codes assigned", map[string]interface{}{
		"order_item_id": item.ID,
		"count":         len(codes),
	})
	return true, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order access denied", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) GetOrdersByStatus(status model.OrderStatus) ([]model.Order, error) {
	return s.orderRepo.FindByStatus(status)
}

// DeliverItem 관리자 수동 전달. 전달할 코드 문자열을 받아 전달 완료
// 상태의 코드 행으로 기록하고 항목을 완료 처리한다.
func (s *orderService) DeliverItem(adminID, orderItemID uint, codes []string) (*model.OrderItem, error) {
	item, err := s.orderRepo.FindItemByID(orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if item.DeliveryStatus == model.DeliveryStatusDelivered {
		return nil, ErrAlreadyDelivered
	}
	if len(codes) < item.Quantity {
		return nil, ErrNotEnoughCodes
	}

	now := time.Now()
	tx := s.db.Begin()

	for _, code := range codes {
		row := model.DeliveryCode{
			ProductID:     item.ProductID,
			CombinationID: item.CombinationID,
			Code:          code,
			Status:        model.CodeStatusDelivered,
			OrderItemID:   &item.ID,
			DeliveredAt:   &now,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to record delivered code", err, map[string]interface{}{
				"order_item_id": orderItemID,
			})
			return nil, err
		}
	}

	item.DeliveryStatus = model.DeliveryStatusDelivered
	item.DeliveredAt = &now
	if err := tx.Model(&model.OrderItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"delivery_status": model.DeliveryStatusDelivered,
			"delivered_at":    now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// 모든 항목이 전달되면 주문을 완료 처리한다.
	var pending int64
	if err := tx.Model(&model.OrderItem{}).
		Where("order_id = ? AND delivery_status = ?", item.OrderID, model.DeliveryStatusPending).
		Count(&pending).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if pending == 0 {
		if err := tx.Model(&model.Order{}).
			Where("id = ?", item.OrderID).
			Update("status", model.OrderStatusCompleted).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order item delivered manually", map[string]interface{}{
		"admin_id":      adminID,
		"order_item_id": orderItemID,
		"code_count":    len(codes),
	})

	order, err := s.orderRepo.FindByID(item.OrderID)
	if err == nil {
		s.notify(order.UserID, "order.delivered", map[string]interface{}{
			"order_number":  order.OrderNumber,
			"order_item_id": item.ID,
		})
	}

	return s.orderRepo.FindItemByID(orderItemID)
}

// CancelOrder 미전달 주문을 취소하고 지갑으로 전액 환불한다. 추적 재고
// 조합은 차감분을 복원한다.
func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrderByID(userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusPaid {
		return nil, ErrOrderNotCancellable
	}
	for _, item := range order.OrderItems {
		if item.DeliveryStatus == model.DeliveryStatusDelivered {
			logger.Warn("Cancellation rejected: item already delivered", map[string]interface{}{
				"order_id":      orderID,
				"order_item_id": item.ID,
			})
			return nil, ErrOrderNotCancellable
		}
	}

	tx := s.db.Begin()

	var user model.User
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// 추적 재고 복원
	for _, item := range order.OrderItems {
		if item.CombinationID == nil {
			continue
		}
		if err := tx.Model(&model.OptionCombination{}).
			Where("id = ? AND stock_type = ?", *item.CombinationID, model.StockTracked).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	balanceAfter := user.WalletBalance + order.TotalAmount
	if err := tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", order.TotalAmount)).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to refund wallet", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	refundTx := &model.WalletTransaction{
		UserID:       userID,
		Type:         model.WalletRefund,
		Amount:       order.TotalAmount,
		BalanceAfter: balanceAfter,
		Reference:    order.OrderNumber,
	}
	if err := tx.Create(refundTx).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", model.OrderStatusRefunded).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cancellation", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order cancelled and refunded", map[string]interface{}{
		"user_id":       userID,
		"order_id":      orderID,
		"refund_amount": order.TotalAmount,
	})

	s.notify(userID, "order.refunded", map[string]interface{}{
		"order_number": order.OrderNumber,
		"amount":       order.TotalAmount,
	})

	return s.orderRepo.FindByID(orderID)
}

func (s *orderService) notify(userID uint, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyUser(userID, event, payload)
	s.notifier.NotifyAdmins(event, payload)
}
