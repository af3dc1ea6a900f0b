package models

import "fmt"

// OrderLine is one menu item inside an order. Name and price are copied from
// the menu at order time so later menu edits do not touch placed orders.
type OrderLine struct {
	LineID     uint    `gorm:"primaryKey" json:"-"`
	OrderID    string  `gorm:"type:varchar(20);not null;index" json:"-"`
	Position   int     `gorm:"not null" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l OrderLine) Subtotal() float64 {
	return Money(l.Price).Mul(Money(float64(l.Quantity))).Float64()
}

// CloneLines copies lines and drops storage bookkeeping so the copies can be
// inserted as new rows.
func CloneLines(lines []OrderLine) []OrderLine {
	out := make([]OrderLine, len(lines))
	for i, l := range lines {
		out[i] = OrderLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Price:      l.Price,
			Quantity:   l.Quantity,
			Position:   i,
		}
	}
	return out
}

// ValidateLines rejects an empty line list and any line with a quantity
// below one or a negative price.
func ValidateLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return NewValidationError("items", "order must contain at least one item")
	}
	for i, l := range lines {
		if l.Quantity < 1 {
			return NewValidationError("items", fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		if l.Price < 0 {
			return NewValidationError("items", fmt.Sprintf("item %d: price must not be negative", i))
		}
	}
	return nil
}

// TotalOf sums price × quantity over lines.
func TotalOf(lines []OrderLine) float64 {
	total := Money(0)
	for _, l := range lines {
		total = total.Add(Money(l.Price).Mul(Money(float64(l.Quantity))))
	}
	return total.Float64()
}
