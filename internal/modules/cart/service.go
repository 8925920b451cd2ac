package cart

import (
	"context"
	"log"
	"strconv"
	"time"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/events"
	"hotelindigo/internal/pkg/validator"
)

type Service struct {
	cart      *Cart
	dishes    DishRepository
	orders    OrderRepository
	publisher events.Publisher
}

func NewService(cart *Cart, dishes DishRepository, orders OrderRepository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{cart: cart, dishes: dishes, orders: orders, publisher: publisher}
}

func (s *Service) Cart() State {
	return s.cart.Snapshot()
}

// AddDish looks the dish up so the line carries the current name and price.
func (s *Service) AddDish(ctx context.Context, dishID int64, quantity int) (State, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return s.cart.Snapshot(), ErrInvalidQuantity
	}
	dish, err := s.dishes.GetDish(ctx, dishID)
	if err != nil {
		return s.cart.Snapshot(), err
	}
	if !dish.Available {
		return s.cart.Snapshot(), ErrDishUnavailable
	}
	return s.cart.Add(ctx, ItemFromDish(*dish), quantity)
}

func (s *Service) Remove(ctx context.Context, dishID int64) (State, error) {
	return s.cart.Remove(ctx, dishID)
}

// UpdateQuantity sets a line's quantity. quantity <= 0 removes the line and,
// like Remove, is a no-op for an absent id.
func (s *Service) UpdateQuantity(ctx context.Context, dishID int64, quantity int) (State, error) {
	if quantity <= 0 {
		return s.cart.Remove(ctx, dishID)
	}
	if _, ok := s.cart.Snapshot().Find(dishID); !ok {
		return s.cart.Snapshot(), ErrItemNotFound
	}
	return s.cart.UpdateQuantity(ctx, dishID, quantity)
}

func (s *Service) Clear(ctx context.Context) (State, error) {
	return s.cart.Clear(ctx)
}

// Checkout places an order for the current cart. Once the backend accepts
// it, the ordered quantities are deducted; lines added meanwhile stay.
func (s *Service) Checkout(ctx context.Context, form OrderForm) (*domain.Order, error) {
	current := s.cart.Snapshot()
	if current.Empty() {
		return nil, ErrEmptyCart
	}
	if err := validator.Check(form); err != nil {
		return nil, err
	}

	order := &domain.Order{
		Items:           make([]domain.OrderItem, 0, len(current.Items)),
		Total:           current.Total,
		DeliveryType:    form.DeliveryType,
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.CustomerPhone,
		CustomerEmail:   form.CustomerEmail,
		DeliveryAddress: form.DeliveryAddress,
		Notes:           form.Notes,
		PaymentMethod:   form.PaymentMethod,
		Status:          domain.ReservationPending,
	}
	if form.DeliveryType != "delivery" {
		order.DeliveryAddress = ""
	}
	for _, it := range current.Items {
		order.Items = append(order.Items, domain.OrderItem{
			DishID:   it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	// the order exists server-side from here on, a failed write is only logged
	if _, err := s.cart.Deduct(ctx, current.Items); err != nil {
		log.Printf("cart_deduct_after_checkout order_id=%d error=%q", created.ID, err.Error())
	}

	err = s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeOrderPlaced,
		Key:        strconv.FormatInt(created.ID, 10),
		Payload:    created,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("event_publish type=%s order_id=%d error=%q", events.TypeOrderPlaced, created.ID, err.Error())
	}
	return created, nil
}
