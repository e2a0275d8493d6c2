package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID  uint            `json:"product_id" binding:"required"`
	Selections ppom.Selections `json:"selections"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the user's cart with re-quoted line prices
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	summary, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": summary,
	})
}

// AddToCart validates the option selections, quotes the price and adds
// the line to the cart. Identical selections merge into one line.
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.cartService.AddItem(c.Request.Context(), userID, req.ProductID, req.Selections, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrProductInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Product is not for sale",
			})
		case errors.Is(err, service.ErrInvalidSelections):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Required options are missing",
			})
		case errors.Is(err, service.ErrSelectionUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Selected options are not available",
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid quantity",
			})
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to add item to cart",
			})
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Item added to cart",
		"cart_item": item,
	})
}

// UpdateCartItem updates a cart line's quantity
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
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
			"error": "Invalid cart item ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), userID, uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
		case errors.Is(err, service.ErrCartForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid quantity",
			})
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update cart item",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Cart item updated",
		"cart_item": item,
	})
}

// RemoveCartItem removes one line from the cart
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
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
			"error": "Invalid cart item ID",
		})
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
		case errors.Is(err, service.ErrCartForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			log.Error("Failed to remove cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to remove cart item",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
	})
}

// ClearCart empties the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	log.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
