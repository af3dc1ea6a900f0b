package models

import "strings"

const DefaultMenuImage = "/placeholder.svg?height=100&width=100"

type MenuItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Price    float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Category string  `gorm:"type:varchar(100);not null;index" json:"category"`
	Image    string  `gorm:"type:varchar(255)" json:"image"`
}

type MenuItemPatch struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	Image    *string  `json:"image"`
}

// ValidateNew checks the fields required to create a menu item.
func (m MenuItem) ValidateNew() error {
	if strings.TrimSpace(m.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if m.Price <= 0 {
		return NewValidationError("price", "price is required")
	}
	if strings.TrimSpace(m.Category) == "" {
		return NewValidationError("category", "category is required")
	}
	return nil
}

func (p MenuItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", "name must not be empty")
	}
	if p.Price != nil && *p.Price <= 0 {
		return NewValidationError("price", "price must be positive")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return NewValidationError("category", "category must not be empty")
	}
	return nil
}

func (p MenuItemPatch) Apply(m *MenuItem) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}

// ToLine snapshots the item into an order line with the given quantity.
func (m MenuItem) ToLine(quantity int) OrderLine {
	return OrderLine{
		MenuItemID: m.ID,
		Name:       m.Name,
		Price:      m.Price,
		Quantity:   quantity,
	}
}

type MenuCategory struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}
