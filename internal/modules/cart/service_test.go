package cart

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelindigo/internal/apiclient"
	"hotelindigo/internal/domain"
	"hotelindigo/internal/events"
	"hotelindigo/internal/pkg/validator"
	"hotelindigo/internal/storage"
)

type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dish), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func validForm() OrderForm {
	return OrderForm{
		CustomerName:  "Ana",
		CustomerPhone: "555-0101",
		CustomerEmail: "ana@example.com",
		DeliveryType:  "pickup",
		PaymentMethod: "cash",
	}
}

func newTestService(t *testing.T) (*Service, *MockDishRepository, *MockOrderRepository, *MockPublisher) {
	t.Helper()
	dishes := new(MockDishRepository)
	orders := new(MockOrderRepository)
	pub := new(MockPublisher)
	c := New(context.Background(), storage.NewMemoryStore())
	return NewService(c, dishes, orders, pub), dishes, orders, pub
}

func TestAddDish_UsesCurrentDishData(t *testing.T) {
	svc, dishes, _, _ := newTestService(t)
	ctx := context.Background()
	dishes.On("GetDish", ctx, int64(3)).Return(&domain.Dish{
		ID: 3, Name: "Ceviche", Price: decimal.RequireFromString("8.90"), Available: true,
	}, nil)

	s, err := svc.AddDish(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Ceviche", s.Items[0].Name)
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestAddDish_Unavailable(t *testing.T) {
	svc, dishes, _, _ := newTestService(t)
	ctx := context.Background()
	dishes.On("GetDish", ctx, int64(3)).Return(&domain.Dish{ID: 3, Available: false}, nil)

	_, err := svc.AddDish(ctx, 3, 1)
	assert.ErrorIs(t, err, ErrDishUnavailable)
	assert.True(t, svc.Cart().Empty())
}

func TestAddDish_NegativeQuantityNeverFetches(t *testing.T) {
	svc, dishes, _, _ := newTestService(t)
	_, err := svc.AddDish(context.Background(), 3, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	dishes.AssertNotCalled(t, "GetDish", mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, orders, _ := newTestService(t)
	_, err := svc.Checkout(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_InvalidFormNeverReachesBackend(t *testing.T) {
	svc, _, orders, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.cart.Add(ctx, item(1, "4"), 1)
	require.NoError(t, err)

	form := validForm()
	form.DeliveryType = "delivery"
	form.CustomerEmail = "not-an-email"

	_, err = svc.Checkout(ctx, form)
	var fields validator.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "delivery_address")
	assert.Contains(t, fields, "customer_email")
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.False(t, svc.Cart().Empty())
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	svc, _, orders, pub := newTestService(t)
	ctx := context.Background()
	_, err := svc.cart.Add(ctx, item(1, "4.50"), 2)
	require.NoError(t, err)
	_, err = svc.cart.Add(ctx, item(2, "1.25"), 1)
	require.NoError(t, err)

	orders.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return len(o.Items) == 2 &&
			o.Items[0].Subtotal.Equal(decimal.NewFromInt(9)) &&
			o.Total.Equal(decimal.RequireFromString("10.25")) &&
			o.Status == domain.ReservationPending
	})).Return(&domain.Order{ID: 77, Total: decimal.RequireFromString("10.25")}, nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeOrderPlaced && e.Key == "77"
	})).Return(nil)

	order, err := svc.Checkout(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(77), order.ID)
	assert.True(t, svc.Cart().Empty())
	orders.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCheckout_BackendRejectionKeepsCart(t *testing.T) {
	svc, _, orders, pub := newTestService(t)
	ctx := context.Background()
	_, err := svc.cart.Add(ctx, item(1, "4.50"), 2)
	require.NoError(t, err)

	rejected := &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "total mismatch"}
	orders.On("Create", ctx, mock.Anything).Return(nil, rejected)

	_, err = svc.Checkout(ctx, validForm())
	assert.True(t, errors.Is(err, rejected))
	assert.Equal(t, 2, svc.Cart().ItemCount)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCheckout_KeepsItemsAddedWhileOrdering(t *testing.T) {
	svc, _, orders, pub := newTestService(t)
	ctx := context.Background()
	_, err := svc.cart.Add(ctx, item(1, "4.50"), 2)
	require.NoError(t, err)

	orders.On("Create", ctx, mock.Anything).
		Run(func(mock.Arguments) {
			// another tab adds to the cart while the order is in flight
			_, err := svc.cart.Add(ctx, item(2, "1.25"), 1)
			require.NoError(t, err)
			_, err = svc.cart.Add(ctx, item(1, "4.50"), 1)
			require.NoError(t, err)
		}).
		Return(&domain.Order{ID: 78}, nil)
	pub.On("Publish", ctx, mock.Anything).Return(nil)

	_, err = svc.Checkout(ctx, validForm())
	require.NoError(t, err)

	s := svc.Cart()
	require.Len(t, s.Items, 2)
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, int64(2), s.Items[1].ID)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("5.75")))

	restored := New(ctx, svc.cart.store)
	assert.Equal(t, 2, restored.Snapshot().ItemCount)
}

func TestUpdateQuantity_NonPositiveOnAbsentIsNoop(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.cart.Add(ctx, item(1, "3"), 1)
	require.NoError(t, err)

	for _, q := range []int{0, -1} {
		s, err := svc.UpdateQuantity(ctx, 99, q)
		require.NoError(t, err, "quantity %d", q)
		assert.Equal(t, 1, s.ItemCount)
	}

	_, err = svc.UpdateQuantity(ctx, 99, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
