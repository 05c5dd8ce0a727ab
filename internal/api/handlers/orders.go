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

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	Status          domain.OrderStatus `json:"status"`
	TotalAmount     int64              `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes,omitempty"`
	ShippedAt       *string            `json:"shipped_at,omitempty"`
	DeliveredAt     *string            `json:"delivered_at,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

// HistoryEntryResponse represents one status history entry
type HistoryEntryResponse struct {
	OldStatus *domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus  `json:"new_status"`
	ChangedBy *string             `json:"changed_by,omitempty"`
	Note      string              `json:"note,omitempty"`
	CreatedAt string              `json:"created_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
	if order.ShippedAt != nil {
		s := order.ShippedAt.Format(time.RFC3339)
		resp.ShippedAt = &s
	}
	if order.DeliveredAt != nil {
		s := order.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &s
	}
	return resp
}

// HandleCreateOrder handles POST /v1/orders
func HandleCreateOrder(orders service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orders.CreateOrder(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to create order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, toOrderResponse(order))
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(orders service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := orders.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// HandleGetHistory handles GET /v1/orders/:id/history
func HandleGetHistory(orders service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		ascending := c.Query("order") == "asc"

		entries, err := orders.GetHistory(c.Request.Context(), orderID, ascending)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order history", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]HistoryEntryResponse, len(entries))
		for i, entry := range entries {
			resp[i] = HistoryEntryResponse{
				OldStatus: entry.OldStatus,
				NewStatus: entry.NewStatus,
				Note:      entry.Note,
				CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			}
			if entry.ChangedBy != nil {
				s := entry.ChangedBy.String()
				resp[i].ChangedBy = &s
			}
		}

		c.JSON(http.StatusOK, gin.H{"history": resp})
	}
}

// HandleTransitionOrder handles POST /v1/admin/orders/:id/status
func HandleTransitionOrder(orders service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req service.TransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Raw status strings are validated here, before the policy ever
		// sees them.
		target, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orders.Transition(c.Request.Context(), orderID, target, req.ActorID, req.Note)
		if err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case *errors.ErrConcurrentTransition:
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to transition order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}
