package catalog

import (
	"context"

	"hotelindigo/internal/domain"
)

type Repository interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListSalons(ctx context.Context) ([]domain.Salon, error)
	ListDishes(ctx context.Context, onlyAvailable bool) ([]domain.Dish, error)
}
