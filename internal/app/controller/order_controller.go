package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
	codeService  service.CodeService
}

func NewOrderController(orderService service.OrderService, codeService service.CodeService) *OrderController {
	return &OrderController{
		orderService: orderService,
		codeService:  codeService,
	}
}

type DeliverItemRequest struct {
	Codes []string `json:"codes" binding:"required,min=1"`
}

// Checkout converts the user's cart into a paid order. Pricing is
// re-computed at checkout time and the wallet is debited in the same
// transaction.
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	order, err := ctrl.orderService.Checkout(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, service.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient wallet balance",
			})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Not enough stock for the selected options",
			})
		case errors.Is(err, service.ErrInvalidSelections), errors.Is(err, service.ErrSelectionUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cart contains items that are no longer purchasable",
			})
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Checkout failed",
			})
		}
		return
	}

	log.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders returns the user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CancelOrder cancels an undelivered order and refunds the wallet
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.CancelOrder(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, service.ErrOrderNotCancellable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order can no longer be cancelled",
			})
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to cancel order",
			})
		}
		return
	}

	log.Info("Order cancelled", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled and refunded",
		"order":   order,
	})
}

// GetItemCodes reveals the delivered codes for one order item. Only the
// order's owner can read them.
// GET /api/v1/orders/items/:id/codes
func (ctrl *OrderController) GetItemCodes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order item ID",
		})
		return
	}

	codes, err := ctrl.codeService.GetCodesForOrderItem(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order item not found",
			})
		case errors.Is(err, service.ErrOrderForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			log.Error("Failed to fetch delivery codes", err, map[string]interface{}{
				"user_id":       userID,
				"order_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch delivery codes",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"codes": codes,
		"count": len(codes),
	})
}

// GetOrdersByStatus lists orders in a given status (Admin only)
// GET /api/v1/admin/orders?status=paid
func (ctrl *OrderController) GetOrdersByStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.OrderStatus(c.DefaultQuery("status", string(model.OrderStatusPaid)))

	orders, err := ctrl.orderService.GetOrdersByStatus(status)
	if err != nil {
		log.Error("Failed to fetch orders by status", err, map[string]interface{}{
			"status": status,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// DeliverItem attaches manually sourced codes to a pending order item
// and marks it delivered (Admin only)
// POST /api/v1/admin/orders/items/:id/deliver
func (ctrl *OrderController) DeliverItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order item ID",
		})
		return
	}

	var req DeliverItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.orderService.DeliverItem(adminID, uint(id), req.Codes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order item not found",
			})
		case errors.Is(err, service.ErrAlreadyDelivered):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order item already delivered",
			})
		case errors.Is(err, service.ErrNotEnoughCodes):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Not enough codes for the ordered quantity",
			})
		default:
			log.Error("Failed to deliver order item", err, map[string]interface{}{
				"admin_id":      adminID,
				"order_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to deliver order item",
			})
		}
		return
	}

	log.Info("Order item delivered", map[string]interface{}{
		"admin_id":      adminID,
		"order_item_id": item.ID,
		"code_count":    len(req.Codes),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Order item delivered",
		"order_item": item,
	})
}
