// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/shopfront/storefront-api/internal/models"
	"github.com/shopfront/storefront-api/internal/repository"
	"github.com/shopfront/storefront-api/internal/telemetry"
	"github.com/shopfront/storefront-api/internal/utils"
)

const tracerName = "github.com/shopfront/storefront-api/internal/services"

type OrderService struct {
	store   repository.Store
	metrics *telemetry.OrderMetrics
}

type CreateOrderRequest struct {
	Email string             `json:"email" binding:"required" validate:"required,max=200"`
	Items []OrderItemRequest `json:"items" binding:"required"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// NewOrderService wires the order workflow. metrics may be nil.
func NewOrderService(store repository.Store, metrics *telemetry.OrderMetrics) *OrderService {
	return &OrderService{
		store:   store,
		metrics: metrics,
	}
}

// CreateOrder validates req, prices every line from the current catalog and
// persists the header and its items in one transaction. The returned order
// carries the header fields only.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, s.reject(ctx, "empty_items", invalidRequest("Order must contain at least one item"))
	}

	if err := utils.ValidateStruct(req); err != nil {
		detail := "Invalid order"
		if verrs := utils.GetValidationErrors(err); len(verrs) > 0 {
			detail = verrs[0].Message
		}
		return nil, s.reject(ctx, "validation", invalidRequest(detail))
	}

	ids := make([]uint, 0, len(req.Items))
	seen := make(map[int64]bool, len(req.Items))
	unknown := false
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, s.reject(ctx, "quantity", invalidRequest("Quantity must be at least 1"))
		}
		if item.ProductID <= 0 {
			unknown = true
			continue
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, uint(item.ProductID))
		}
	}
	if unknown {
		return nil, s.reject(ctx, "unknown_product", invalidRequest("One or more products do not exist"))
	}

	span.SetAttributes(
		attribute.Int("order.items", len(req.Items)),
		attribute.Int("order.distinct_products", len(ids)),
	)

	var order models.Order
	reason := "unknown_product"
	err := s.store.WithTransaction(ctx, func(tx repository.Store) error {
		products, err := tx.Products().FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to look up products: %w", err)
		}
		if len(products) < len(ids) {
			return invalidRequest("One or more products do not exist")
		}

		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product := byID[uint(line.ProductID)]
			item := models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       product.Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		total = models.RoundMoney(total)
		if total.GreaterThan(models.MaxMoney) {
			reason = "total_too_large"
			return invalidRequest("Order total exceeds " + models.MaxMoney.StringFixed(models.MoneyScale))
		}

		order = models.Order{Email: req.Email, Total: decimal.Zero}
		if err := tx.Orders().Create(ctx, &order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Orders().CreateItems(ctx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Orders().UpdateTotal(ctx, order.ID, total); err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		order.Total = total
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			return nil, s.reject(ctx, reason, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "order not persisted")
		return nil, err
	}

	total, _ := order.Total.Float64()
	s.metrics.OrderCreated(ctx, total, len(req.Items))
	span.SetAttributes(attribute.Int("order.id", int(order.ID)))

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"items":    len(req.Items),
		"total":    order.Total.StringFixed(models.MoneyScale),
	}).Info("Order created")

	return &order, nil
}

func (s *OrderService) reject(ctx context.Context, reason string, err error) error {
	s.metrics.OrderRejected(ctx, reason)
	logrus.WithFields(logrus.Fields{
		"reason": reason,
		"detail": err.Error(),
	}).Debug("Order rejected")
	return err
}

// ListOrders returns every order header without items.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.Orders().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Order not found")
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return order, nil
}
