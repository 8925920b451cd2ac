package cart

import (
	"context"

	"hotelindigo/internal/domain"
)

type DishRepository interface {
	GetDish(ctx context.Context, id int64) (*domain.Dish, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
}
