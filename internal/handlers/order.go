// internal/handlers/order.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopfront/storefront-api/internal/models"
	"github.com/shopfront/storefront-api/internal/services"
	"github.com/shopfront/storefront-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

// OrderResponse is the public view of an order header.
type OrderResponse struct {
	ID    uint            `json:"id"`
	Email string          `json:"email"`
	Total decimal.Decimal `json:"total"`
}

func newOrderResponse(order models.Order) OrderResponse {
	return OrderResponse{
		ID:    order.ID,
		Email: order.Email,
		Total: order.Total,
	}
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetBindingErrors(err))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newOrderResponse(*order))
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, newOrderResponse(order))
	}
	utils.SuccessResponse(c, response)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   "id",
			Tag:     "type",
			Message: "id must be a positive integer",
		}})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
