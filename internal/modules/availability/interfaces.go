package availability

import (
	"context"

	"hotelindigo/internal/domain"
)

type ReservationRepository interface {
	ListTableReservations(ctx context.Context, userID int64) ([]domain.TableReservation, error)
	ListSalonReservations(ctx context.Context, userID int64) ([]domain.SalonReservation, error)
}

type CatalogRepository interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListSalons(ctx context.Context) ([]domain.Salon, error)
}
