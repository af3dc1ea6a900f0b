package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/table-order/models"
)

// ErrNoOrderID is returned when a tracking screen has neither an explicit
// order id nor a remembered one.
var ErrNoOrderID = errors.New("no order to track")

type OrderGetter interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

type TrackState int

const (
	TrackLoading TrackState = iota
	TrackFound
	TrackNotFound
)

func (s TrackState) String() string {
	switch s {
	case TrackFound:
		return "found"
	case TrackNotFound:
		return "not found"
	default:
		return "loading"
	}
}

// OrderSnapshot is the last known state of a tracked order. Err holds the
// most recent read failure; Order keeps the last successful read.
type OrderSnapshot struct {
	State     TrackState
	Order     *models.Order
	Err       error
	UpdatedAt time.Time
}

// OrderWatcher polls a single order for the guest tracking screen.
type OrderWatcher struct {
	OnUpdate func(OrderSnapshot)
	OnError  func(error)

	orders  OrderGetter
	session *Session
	id      string
	poller  *Poller

	mu   sync.Mutex
	snap OrderSnapshot
}

// NewOrderWatcher tracks id, or the session's last order id when id is
// empty.
func NewOrderWatcher(orders OrderGetter, session *Session, id string, interval time.Duration) *OrderWatcher {
	w := &OrderWatcher{orders: orders, session: session, id: id}
	w.poller = NewPoller(interval, w.poll)
	return w
}

// ID resolves which order is tracked.
func (w *OrderWatcher) ID() string {
	if w.id != "" {
		return w.id
	}
	if w.session != nil {
		return w.session.LastOrderID()
	}
	return ""
}

// Start begins polling. Without an order id the watcher settles in the
// not-found state and no read is made.
func (w *OrderWatcher) Start(ctx context.Context) error {
	if w.ID() == "" {
		w.set(OrderSnapshot{State: TrackNotFound, Err: ErrNoOrderID, UpdatedAt: time.Now()})
		return ErrNoOrderID
	}
	w.poller.Start(ctx)
	return nil
}

// Stop ends polling. It is safe to call from OnUpdate or OnError; receive
// from the returned channel to wait for an in-flight read to finish.
func (w *OrderWatcher) Stop() <-chan struct{} {
	return w.poller.Stop()
}

// Refresh reads the order once outside the polling schedule.
func (w *OrderWatcher) Refresh(ctx context.Context) {
	if w.ID() == "" {
		return
	}
	w.poll(ctx)
}

func (w *OrderWatcher) Snapshot() OrderSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

func (w *OrderWatcher) poll(ctx context.Context) {
	order, err := w.orders.GetOrder(ctx, w.ID())

	w.mu.Lock()
	// a response arriving after Stop is dropped
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	next := w.snap
	next.UpdatedAt = time.Now()
	switch {
	case err == nil:
		next = OrderSnapshot{State: TrackFound, Order: order, UpdatedAt: next.UpdatedAt}
	case errors.Is(err, models.ErrNotFound):
		next = OrderSnapshot{State: TrackNotFound, Err: err, UpdatedAt: next.UpdatedAt}
	default:
		next.Err = err
	}
	w.snap = next
	w.mu.Unlock()

	if err != nil && w.OnError != nil {
		w.OnError(err)
	}
	if w.OnUpdate != nil {
		w.OnUpdate(next)
	}
}

func (w *OrderWatcher) set(s OrderSnapshot) {
	w.mu.Lock()
	w.snap = s
	w.mu.Unlock()
	if w.OnUpdate != nil {
		w.OnUpdate(s)
	}
}

// DashboardSnapshot is the staff overview derived from the full order list.
type DashboardSnapshot struct {
	Orders    []models.Order
	Summary   models.OrderSummary
	Loaded    bool
	Err       error
	UpdatedAt time.Time
}

// Filter narrows the snapshot's orders for display.
func (s DashboardSnapshot) Filter(f models.OrderFilter) []models.Order {
	return models.FilterOrders(s.Orders, f)
}

// DashboardWatcher polls every order and keeps the summary figures current.
type DashboardWatcher struct {
	OnUpdate func(DashboardSnapshot)
	OnError  func(error)

	orders OrderLister
	poller *Poller

	mu   sync.Mutex
	snap DashboardSnapshot
}

func NewDashboardWatcher(orders OrderLister, interval time.Duration) *DashboardWatcher {
	w := &DashboardWatcher{orders: orders}
	w.poller = NewPoller(interval, w.poll)
	return w
}

func (w *DashboardWatcher) Start(ctx context.Context) { w.poller.Start(ctx) }
func (w *DashboardWatcher) Stop() <-chan struct{}     { return w.poller.Stop() }

func (w *DashboardWatcher) Refresh(ctx context.Context) {
	w.poll(ctx)
}

func (w *DashboardWatcher) Snapshot() DashboardSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

func (w *DashboardWatcher) poll(ctx context.Context) {
	orders, err := w.orders.ListOrders(ctx, models.OrderFilter{})

	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	next := w.snap
	next.UpdatedAt = time.Now()
	if err != nil {
		next.Err = err
	} else {
		sorted := models.SortByNewest(orders)
		next = DashboardSnapshot{
			Orders:    sorted,
			Summary:   models.Summarize(sorted),
			Loaded:    true,
			UpdatedAt: next.UpdatedAt,
		}
	}
	w.snap = next
	w.mu.Unlock()

	if err != nil && w.OnError != nil {
		w.OnError(err)
	}
	if w.OnUpdate != nil {
		w.OnUpdate(next)
	}
}
