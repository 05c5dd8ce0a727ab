package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/service"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

// CartItemResponse represents one active cart line
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
	AddedAt   string `json:"added_at"`
}

// CartResponse represents the active contents of a cart
type CartResponse struct {
	CartID string             `json:"cart_id"`
	Items  []CartItemResponse `json:"items"`
	Total  int64              `json:"total"`
}

func toCartResponse(cartID uuid.UUID, items []*domain.CartItem, total int64) CartResponse {
	resp := CartResponse{
		CartID: cartID.String(),
		Items:  make([]CartItemResponse, len(items)),
		Total:  total,
	}
	for i, item := range items {
		resp.Items[i] = CartItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice * int64(item.Quantity),
			AddedAt:   item.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}

// HandleAddCartItem handles POST /v1/carts/:cartId/items
func HandleAddCartItem(carts service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := uuid.Parse(c.Param("cartId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
			return
		}

		var req service.AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := carts.AddToCart(c.Request.Context(), cartID, req); err != nil {
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "added"})
	}
}

// HandleSetCartItemQuantity handles PUT /v1/carts/:cartId/items/:productId
func HandleSetCartItemQuantity(carts service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := uuid.Parse(c.Param("cartId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
			return
		}
		productID, err := uuid.Parse(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.SetCartItemQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = carts.SetQuantity(c.Request.Context(), cartID, productID, req.Quantity)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			logger.Error("Failed to set cart item quantity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// HandleRemoveCartItem handles DELETE /v1/carts/:cartId/items/:productId
func HandleRemoveCartItem(carts service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := uuid.Parse(c.Param("cartId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
			return
		}
		productID, err := uuid.Parse(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		if err := carts.RemoveItem(c.Request.Context(), cartID, productID); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "removed"})
	}
}

// HandleClearCart handles DELETE /v1/carts/:cartId/items
func HandleClearCart(carts service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := uuid.Parse(c.Param("cartId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
			return
		}

		if err := carts.ClearCart(c.Request.Context(), cartID); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "cleared"})
	}
}

// HandleGetCart handles GET /v1/carts/:cartId/items
func HandleGetCart(carts service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := uuid.Parse(c.Param("cartId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
			return
		}

		items, total, err := carts.GetCart(c.Request.Context(), cartID)
		if err != nil {
			logger.Error("Failed to get cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toCartResponse(cartID, items, total))
	}
}
