package repository

import (
	"context"
	"fmt"

	"hotelindigo/internal/domain"
)

type CatalogRepository struct {
	api API
}

func NewCatalogRepository(api API) *CatalogRepository {
	return &CatalogRepository{api: api}
}

func (r *CatalogRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms := []domain.Room{}
	if err := r.api.List(ctx, PathRooms, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *CatalogRepository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.api.Get(ctx, fmt.Sprintf("%s%d/", PathRooms, id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *CatalogRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	tables := []domain.Table{}
	if err := r.api.List(ctx, PathTables, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *CatalogRepository) ListSalons(ctx context.Context) ([]domain.Salon, error) {
	salons := []domain.Salon{}
	if err := r.api.List(ctx, PathSalons, nil, &salons); err != nil {
		return nil, err
	}
	return salons, nil
}

func (r *CatalogRepository) ListDishes(ctx context.Context, onlyAvailable bool) ([]domain.Dish, error) {
	path := PathDishes
	if onlyAvailable {
		path = PathDishesAvailable
	}
	dishes := []domain.Dish{}
	if err := r.api.List(ctx, path, nil, &dishes); err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *CatalogRepository) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	var dish domain.Dish
	if err := r.api.Get(ctx, fmt.Sprintf("%s%d/", PathDishes, id), nil, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}
