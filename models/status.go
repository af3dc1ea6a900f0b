package models

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"

	// StatusAll is accepted by list filters only and is never stored.
	StatusAll OrderStatus = "all"
)

// OrderStatuses lists every storable status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forward lists the single next step of the kitchen flow. Cancellation is
// allowed from every status that is not terminal.
var forward = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

// NextStatuses returns the statuses reachable in one step from s.
func NextStatuses(s OrderStatus) []OrderStatus {
	if !s.Valid() || s.Terminal() {
		return []OrderStatus{}
	}
	return []OrderStatus{forward[s], StatusCancelled}
}

// Lifecycle decides which status changes are accepted. A permissive
// lifecycle only requires the target to be a known status, which lets staff
// override the flow; a strict one follows the transition table.
type Lifecycle struct {
	Strict bool
}

// CanTransition reports whether from → to is legal. Staying in the same
// status is always legal.
func (l Lifecycle) CanTransition(from, to OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to || !l.Strict {
		return true
	}
	for _, s := range NextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

// Check returns a typed error for an illegal change.
func (l Lifecycle) Check(from, to OrderStatus) error {
	if !to.Valid() {
		return NewValidationError("status", "unknown status "+string(to))
	}
	if !l.CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// StatusPresentation is the display lookup for a status.
type StatusPresentation struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var presentations = map[OrderStatus]StatusPresentation{
	StatusPending:   {Label: "Waiting to be processed", Icon: "clock", Color: "yellow"},
	StatusPreparing: {Label: "Being prepared", Icon: "clock", Color: "blue"},
	StatusReady:     {Label: "Ready to serve", Icon: "check-circle", Color: "green"},
	StatusCompleted: {Label: "Completed", Icon: "check-circle", Color: "green"},
	StatusCancelled: {Label: "Cancelled", Icon: "x-circle", Color: "red"},
}

// Present returns the label and icon for s. Unknown statuses get the raw
// value as label.
func Present(s OrderStatus) StatusPresentation {
	if p, ok := presentations[s]; ok {
		return p
	}
	return StatusPresentation{Label: string(s), Icon: "help-circle", Color: "gray"}
}
