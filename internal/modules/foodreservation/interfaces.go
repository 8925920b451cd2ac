package foodreservation

import (
	"context"

	"hotelindigo/internal/domain"
)

type DishRepository interface {
	GetDish(ctx context.Context, id int64) (*domain.Dish, error)
}
