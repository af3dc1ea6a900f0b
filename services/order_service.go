package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/repository"
	"github.com/yeremiapane/table-order/utils"
)

// CreateOrderInput is the body accepted when placing an order. A missing or
// zero TotalPrice is computed from the lines; a missing Status means pending.
type CreateOrderInput struct {
	TableNumber string              `json:"tableNumber"`
	Items       []models.OrderLine  `json:"items"`
	TotalPrice  *float64            `json:"totalPrice"`
	Status      *models.OrderStatus `json:"status"`
}

func (in CreateOrderInput) Validate() error {
	if strings.TrimSpace(in.TableNumber) == "" {
		return models.NewValidationError("tableNumber", "table number is required")
	}
	if err := models.ValidateLines(in.Items); err != nil {
		return err
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		return models.NewValidationError("totalPrice", "total price must not be negative")
	}
	if in.Status != nil && *in.Status != "" && !in.Status.Valid() {
		return models.NewValidationError("status", fmt.Sprintf("unknown status %q", *in.Status))
	}
	return nil
}

// StatusView is the presentation of an order's current status.
type StatusView struct {
	ID     string             `json:"id"`
	Status models.OrderStatus `json:"status"`
	models.StatusPresentation
	Next []models.OrderStatus `json:"next"`
}

type OrderService struct {
	repo      repository.OrderRepository
	lifecycle models.Lifecycle
	publisher EventPublisher
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, lifecycle models.Lifecycle, publisher EventPublisher) *OrderService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &OrderService{
		repo:      repo,
		lifecycle: lifecycle,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *OrderService) Lifecycle() models.Lifecycle {
	return s.lifecycle
}

// Create validates the input, fills in the total and status defaults and
// stores the order. Nothing is stored when validation fails.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		TableNumber: strings.TrimSpace(in.TableNumber),
		Items:       models.CloneLines(in.Items),
		Status:      models.StatusPending,
		CreatedAt:   s.now(),
	}
	if in.TotalPrice != nil && *in.TotalPrice > 0 {
		order.TotalPrice = *in.TotalPrice
	} else {
		order.TotalPrice = models.TotalOf(order.Items)
	}
	if in.Status != nil && *in.Status != "" {
		order.Status = *in.Status
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"table":    order.TableNumber,
		"total":    utils.FormatCurrencyVND(order.TotalPrice),
	}).Info("Order created")
	s.publish(ctx, EventOrderCreated, *order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && filter.Status != models.StatusAll && !filter.Status.Valid() {
		return nil, models.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	return s.repo.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges patch onto the stored order. The patch is checked against
// the current record inside the store transaction, so an unknown id always
// reports ErrNotFound and a rejected patch leaves the order untouched.
func (s *OrderService) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	var from models.OrderStatus
	updated, err := s.repo.Update(ctx, id, func(o *models.Order) error {
		if err := patch.Validate(); err != nil {
			return err
		}
		from = o.Status
		if patch.Status != nil {
			if err := s.lifecycle.Check(o.Status, *patch.Status); err != nil {
				return err
			}
		}
		patch.Apply(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"order_id": updated.ID}
	if from != updated.Status {
		fields["from"] = from
		fields["to"] = updated.Status
	}
	utils.InfoLogger.WithFields(fields).Info("Order updated")
	s.publish(ctx, EventOrderUpdated, *updated)
	return updated, nil
}

// Status returns the presentation of the order's current status together
// with the statuses the lifecycle graph allows next.
func (s *OrderService) Status(ctx context.Context, id string) (*StatusView, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StatusView{
		ID:                 order.ID,
		Status:             order.Status,
		StatusPresentation: models.Present(order.Status),
		Next:               models.NextStatuses(order.Status),
	}, nil
}

// Summary derives the dashboard figures over every stored order.
func (s *OrderService) Summary(ctx context.Context) (models.OrderSummary, error) {
	orders, err := s.repo.List(ctx, models.OrderFilter{})
	if err != nil {
		return models.OrderSummary{}, err
	}
	return models.Summarize(orders), nil
}

// publish never fails the caller; the order is already stored.
func (s *OrderService) publish(ctx context.Context, eventType string, order models.Order) {
	if err := s.publisher.Publish(ctx, NewOrderEvent(eventType, order)); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).WithError(err).Error("Failed to publish order event")
	}
}
