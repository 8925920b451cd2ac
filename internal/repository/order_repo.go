package repository

import (
	"context"

	"hotelindigo/internal/domain"
)

type OrderRepository struct {
	api API
}

func NewOrderRepository(api API) *OrderRepository {
	return &OrderRepository{api: api}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := r.api.Post(ctx, PathOrders, o, &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		return nil, ErrEmptyResponse
	}
	created.Items = o.Items
	return &created, nil
}
