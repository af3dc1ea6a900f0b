package client

import (
	"sync"

	"github.com/yeremiapane/table-order/models"
)

// Cart is the pending selection on the ordering screen. Lines keep the
// order in which items were first added.
type Cart struct {
	mu    sync.Mutex
	lines []models.OrderLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of item in the cart, incrementing an existing line.
func (c *Cart) Add(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, item.ToLine(1))
}

// Remove takes one unit of the item out and drops the line when it reaches
// zero. Unknown ids are ignored.
func (c *Cart) Remove(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].MenuItemID != itemID {
			continue
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

func (c *Cart) Lines() []models.OrderLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.OrderLine(nil), c.lines...)
}

func (c *Cart) Quantity(itemID uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.MenuItemID == itemID {
			return l.Quantity
		}
	}
	return 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.TotalOf(c.lines)
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}
