package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/table-order/models"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

// Update hands a copy of the configured current order to apply, the way the
// gorm repository does inside its transaction.
func (m *mockOrderRepo) Update(ctx context.Context, id string, apply func(*models.Order) error) (*models.Order, error) {
	args := m.Called(ctx, id)
	current, _ := args.Get(0).(*models.Order)
	if current == nil {
		return nil, args.Error(1)
	}
	next := *current
	if err := apply(&next); err != nil {
		return nil, err
	}
	next.ID, next.CreatedAt = current.ID, current.CreatedAt
	return &next, nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func sampleLines() []models.OrderLine {
	return []models.OrderLine{
		{MenuItemID: 1, Name: "Gỏi cuốn tôm thịt", Price: 65000, Quantity: 2},
		{MenuItemID: 4, Name: "Bò lúc lắc", Price: 185000, Quantity: 1},
	}
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e OrderEvent) bool { return e.Type == eventType })
}

func TestCreateComputesTotalAndDefaultsToPending(t *testing.T) {
	repo := new(mockOrderRepo)
	pub := new(mockPublisher)
	svc := NewOrderService(repo, models.Lifecycle{}, pub)
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = "ORD001"
		}).Return(nil)
	pub.On("Publish", mock.Anything, eventOfType(EventOrderCreated)).Return(nil)

	order, err := svc.Create(context.Background(), CreateOrderInput{TableNumber: "5", Items: sampleLines()})
	require.NoError(t, err)
	assert.Equal(t, "ORD001", order.ID)
	assert.Equal(t, 315000.0, order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, fixed, order.CreatedAt)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateKeepsSuppliedTotalAndStatus(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	total := 300000.0
	status := models.StatusPreparing
	order, err := svc.Create(context.Background(), CreateOrderInput{
		TableNumber: "2",
		Items:       sampleLines(),
		TotalPrice:  &total,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 300000.0, order.TotalPrice)
	assert.Equal(t, models.StatusPreparing, order.Status)

	zero := 0.0
	order, err = svc.Create(context.Background(), CreateOrderInput{TableNumber: "2", Items: sampleLines(), TotalPrice: &zero})
	require.NoError(t, err)
	assert.Equal(t, 315000.0, order.TotalPrice)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	negative := -1.0
	bogus := models.OrderStatus("eaten")
	cases := []struct {
		name  string
		in    CreateOrderInput
		field string
	}{
		{"empty table", CreateOrderInput{TableNumber: "  ", Items: sampleLines()}, "tableNumber"},
		{"no items", CreateOrderInput{TableNumber: "5"}, "items"},
		{"zero quantity", CreateOrderInput{TableNumber: "5", Items: []models.OrderLine{{MenuItemID: 1, Price: 1}}}, "items"},
		{"negative total", CreateOrderInput{TableNumber: "5", Items: sampleLines(), TotalPrice: &negative}, "totalPrice"},
		{"unknown status", CreateOrderInput{TableNumber: "5", Items: sampleLines(), Status: &bogus}, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockOrderRepo)
			svc := NewOrderService(repo, models.Lifecycle{}, nil)

			_, err := svc.Create(context.Background(), tc.in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	repo := new(mockOrderRepo)
	pub := new(mockPublisher)
	svc := NewOrderService(repo, models.Lifecycle{}, pub)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	order, err := svc.Create(context.Background(), CreateOrderInput{TableNumber: "5", Items: sampleLines()})
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestUpdateStatusOnlyChangesStatus(t *testing.T) {
	repo := new(mockOrderRepo)
	pub := new(mockPublisher)
	svc := NewOrderService(repo, models.Lifecycle{}, pub)

	created := time.Now().Add(-time.Hour)
	current := &models.Order{ID: "ORD001", TableNumber: "5", Items: sampleLines(), TotalPrice: 315000, Status: models.StatusPending, CreatedAt: created}
	repo.On("Update", mock.Anything, "ORD001").Return(current, nil)
	pub.On("Publish", mock.Anything, eventOfType(EventOrderUpdated)).Return(nil)

	status := models.StatusCompleted
	updated, err := svc.Update(context.Background(), "ORD001", models.OrderPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "5", updated.TableNumber)
	assert.Equal(t, 315000.0, updated.TotalPrice)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Len(t, updated.Items, 2)
	pub.AssertExpectations(t)
}

func TestUpdateStrictLifecycle(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{Strict: true}, nil)

	current := &models.Order{ID: "ORD001", TableNumber: "5", Items: sampleLines(), Status: models.StatusPending}
	repo.On("Update", mock.Anything, "ORD001").Return(current, nil)

	completed := models.StatusCompleted
	_, err := svc.Update(context.Background(), "ORD001", models.OrderPatch{Status: &completed})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	var terr *models.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StatusPending, terr.From)

	preparing := models.StatusPreparing
	updated, err := svc.Update(context.Background(), "ORD001", models.OrderPatch{Status: &preparing})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	same := models.StatusPending
	_, err = svc.Update(context.Background(), "ORD001", models.OrderPatch{Status: &same})
	assert.NoError(t, err)
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{}, nil)
	repo.On("Update", mock.Anything, "ORD001").Return(&models.Order{ID: "ORD001", Status: models.StatusPending}, nil)

	bogus := models.OrderStatus("eaten")
	_, err := svc.Update(context.Background(), "ORD001", models.OrderPatch{Status: &bogus})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Update(context.Background(), "ORD001", models.OrderPatch{Items: []models.OrderLine{}})
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateUnknownOrder(t *testing.T) {
	repo := new(mockOrderRepo)
	pub := new(mockPublisher)
	svc := NewOrderService(repo, models.Lifecycle{}, pub)
	repo.On("Update", mock.Anything, "ORD999").Return(nil, models.ErrNotFound)

	status := models.StatusReady
	_, err := svc.Update(context.Background(), "ORD999", models.OrderPatch{Status: &status})
	assert.ErrorIs(t, err, models.ErrNotFound)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{}, nil)

	_, err := svc.List(context.Background(), models.OrderFilter{Status: "eaten"})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	repo.On("List", mock.Anything, models.OrderFilter{Status: models.StatusAll}).Return([]models.Order{{ID: "ORD001"}}, nil)
	orders, err := svc.List(context.Background(), models.OrderFilter{Status: models.StatusAll})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestSummary(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{}, nil)
	repo.On("List", mock.Anything, models.OrderFilter{}).Return([]models.Order{
		{ID: "ORD001", TableNumber: "5", TotalPrice: 100, Status: models.StatusCompleted},
		{ID: "ORD002", TableNumber: "8", TotalPrice: 300, Status: models.StatusCompleted},
		{ID: "ORD003", TableNumber: "5", TotalPrice: 50, Status: models.StatusPending},
	}, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 2, summary.CompletedOrders)
	assert.Equal(t, 400.0, summary.Revenue)
	assert.Equal(t, 200.0, summary.AverageCompletedValue)
	assert.Equal(t, 2, summary.UniqueTables)
	assert.Equal(t, 1, summary.ByStatus[models.StatusPending])
}

func TestStatusView(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, models.Lifecycle{}, nil)
	repo.On("GetByID", mock.Anything, "ORD002").Return(&models.Order{ID: "ORD002", Status: models.StatusPreparing}, nil)
	repo.On("GetByID", mock.Anything, "ORD404").Return(nil, models.ErrNotFound)

	view, err := svc.Status(context.Background(), "ORD002")
	require.NoError(t, err)
	assert.Equal(t, "clock", view.Icon)
	assert.Equal(t, []models.OrderStatus{models.StatusReady, models.StatusCancelled}, view.Next)

	_, err = svc.Status(context.Background(), "ORD404")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
