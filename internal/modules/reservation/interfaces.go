package reservation

import (
	"context"
	"encoding/json"

	"hotelindigo/internal/domain"
)

type Repository interface {
	ListRoomReservations(ctx context.Context) ([]domain.RoomReservation, error)
	GetRoomReservation(ctx context.Context, id int64) (*domain.RoomReservation, error)
	UpdateRoomReservation(ctx context.Context, id int64, patch map[string]any) (*domain.RoomReservation, error)
	CancelRoomReservation(ctx context.Context, id int64) (*domain.RoomReservation, error)
	VerifyRoomOTP(ctx context.Context, id int64, code string) (json.RawMessage, error)
	ResendRoomOTP(ctx context.Context, id int64) error

	ListTableReservations(ctx context.Context, userID int64) ([]domain.TableReservation, error)
	CancelTableReservation(ctx context.Context, id int64) error
	ListSalonReservations(ctx context.Context, userID int64) ([]domain.SalonReservation, error)
	CancelSalonReservation(ctx context.Context, id int64) error
}
