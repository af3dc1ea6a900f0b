package client

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/utils"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error)
}

// Intake submits the cart as an order for a table.
type Intake struct {
	orders  OrderCreator
	cart    *Cart
	session *Session
}

func NewIntake(orders OrderCreator, cart *Cart, session *Session) *Intake {
	return &Intake{orders: orders, cart: cart, session: session}
}

// Submit places the cart contents as an order for tableNumber. The table
// number and a non-empty cart are checked before anything is sent. On
// success the cart is cleared and the order id remembered in the session;
// on failure the cart is kept so the guest can retry. Once the order is
// placed Submit succeeds; a session that cannot be written is only logged,
// the id is still held in memory.
func (in *Intake) Submit(ctx context.Context, tableNumber string) (*models.Order, error) {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return nil, models.NewValidationError("tableNumber", "please enter your table number")
	}
	if in.cart.Empty() {
		return nil, models.NewValidationError("items", "your cart is empty")
	}

	total := in.cart.Total()
	order, err := in.orders.CreateOrder(ctx, OrderRequest{
		TableNumber: tableNumber,
		Items:       in.cart.Lines(),
		TotalPrice:  &total,
	})
	if err != nil {
		return nil, err
	}

	in.cart.Clear()
	if err := in.session.SetLastOrderID(order.ID); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
		}).WithError(err).Error("Failed to save session")
	}
	return order, nil
}
