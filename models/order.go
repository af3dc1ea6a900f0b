package models

import (
	"fmt"
	"strings"
	"time"
)

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Seq         int         `gorm:"uniqueIndex;not null" json:"-"`
	TableNumber string      `gorm:"type:varchar(50);not null;index" json:"tableNumber"`
	Items       []OrderLine `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	TotalPrice  float64     `gorm:"type:decimal(14,2);not null;default:0" json:"totalPrice"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time   `gorm:"not null" json:"createdAt"`
}

// OrderID formats the human readable order code for a sequence number.
func OrderID(seq int) string {
	return fmt.Sprintf("ORD%03d", seq)
}

// OrderPatch carries the fields of a partial order update. Nil fields are
// left untouched.
type OrderPatch struct {
	TableNumber *string      `json:"tableNumber"`
	Items       []OrderLine  `json:"items"`
	TotalPrice  *float64     `json:"totalPrice"`
	Status      *OrderStatus `json:"status"`
}

// Apply merges the patch onto o. id and createdAt are never touched and the
// total is only replaced when the patch carries one.
func (p OrderPatch) Apply(o *Order) {
	if p.TableNumber != nil {
		o.TableNumber = *p.TableNumber
	}
	if p.Items != nil {
		o.Items = CloneLines(p.Items)
	}
	if p.TotalPrice != nil {
		o.TotalPrice = *p.TotalPrice
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
}

// Validate checks the fields the patch carries.
func (p OrderPatch) Validate() error {
	if p.TableNumber != nil && strings.TrimSpace(*p.TableNumber) == "" {
		return NewValidationError("tableNumber", "table number must not be empty")
	}
	if p.Items != nil {
		if err := ValidateLines(p.Items); err != nil {
			return err
		}
	}
	if p.TotalPrice != nil && *p.TotalPrice < 0 {
		return NewValidationError("totalPrice", "total price must not be negative")
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown status %q", *p.Status))
	}
	return nil
}

// OrderFilter narrows an order listing. Empty fields match everything.
type OrderFilter struct {
	Status OrderStatus
	Search string
}

func (f OrderFilter) Match(o Order) bool {
	if f.Status != "" && f.Status != StatusAll && o.Status != f.Status {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(o.TableNumber), q) ||
			strings.Contains(strings.ToLower(o.ID), q)
	}
	return true
}

// FilterOrders returns the orders matching f, keeping their relative order.
func FilterOrders(orders []Order, f OrderFilter) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}
