package models

import "sort"

// OrderSummary holds the figures shown on the staff dashboard.
type OrderSummary struct {
	TotalOrders           int                 `json:"totalOrders"`
	CompletedOrders       int                 `json:"completedOrders"`
	Revenue               float64             `json:"revenue"`
	AverageCompletedValue float64             `json:"averageCompletedValue"`
	UniqueTables          int                 `json:"uniqueTables"`
	ByStatus              map[OrderStatus]int `json:"byStatus"`
}

// Summarize derives the dashboard figures from a full order listing.
// Revenue and the average only count completed orders; the average is
// rounded to whole units and is 0 when nothing is completed.
func Summarize(orders []Order) OrderSummary {
	s := OrderSummary{
		TotalOrders: len(orders),
		ByStatus:    make(map[OrderStatus]int, len(OrderStatuses)),
	}
	for _, st := range OrderStatuses {
		s.ByStatus[st] = 0
	}

	revenue := Money(0)
	tables := make(map[string]struct{})
	for _, o := range orders {
		s.ByStatus[o.Status]++
		tables[o.TableNumber] = struct{}{}
		if o.Status == StatusCompleted {
			s.CompletedOrders++
			revenue = revenue.Add(Money(o.TotalPrice))
		}
	}

	s.Revenue = revenue.Float64()
	s.AverageCompletedValue = revenue.DivRound(s.CompletedOrders).Float64()
	s.UniqueTables = len(tables)
	return s
}

// SortByNewest orders by createdAt descending. Equal timestamps keep no
// particular order.
func SortByNewest(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
