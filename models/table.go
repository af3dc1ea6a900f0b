package models

import (
	"fmt"
	"strings"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

// Table is a physical table. Its status is not tied to any order placed
// against its number.
type Table struct {
	ID       string      `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Seq      int         `gorm:"uniqueIndex;not null" json:"-"`
	Number   string      `gorm:"type:varchar(50);not null" json:"number"`
	Capacity int         `gorm:"not null" json:"capacity"`
	Status   TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
}

func TableID(seq int) string {
	return fmt.Sprintf("T%d", seq)
}

type TablePatch struct {
	Number   *string      `json:"number"`
	Capacity *int         `json:"capacity"`
	Status   *TableStatus `json:"status"`
}

func (t Table) ValidateNew() error {
	if strings.TrimSpace(t.Number) == "" {
		return NewValidationError("number", "number is required")
	}
	if t.Capacity <= 0 {
		return NewValidationError("capacity", "capacity is required")
	}
	if t.Status != "" && !t.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown table status %q", t.Status))
	}
	return nil
}

func (p TablePatch) Validate() error {
	if p.Number != nil && strings.TrimSpace(*p.Number) == "" {
		return NewValidationError("number", "number must not be empty")
	}
	if p.Capacity != nil && *p.Capacity <= 0 {
		return NewValidationError("capacity", "capacity must be positive")
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown table status %q", *p.Status))
	}
	return nil
}

func (p TablePatch) Apply(t *Table) {
	if p.Number != nil {
		t.Number = *p.Number
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
