package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"hotelindigo/internal/domain"
)

type ReservationRepository struct {
	api API
}

func NewReservationRepository(api API) *ReservationRepository {
	return &ReservationRepository{api: api}
}

func (r *ReservationRepository) ListRoomReservations(ctx context.Context) ([]domain.RoomReservation, error) {
	out := []domain.RoomReservation{}
	if err := r.api.List(ctx, PathRoomReservations, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) GetRoomReservation(ctx context.Context, id int64) (*domain.RoomReservation, error) {
	var out domain.RoomReservation
	if err := r.api.Get(ctx, roomReservationPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReservationRepository) UpdateRoomReservation(ctx context.Context, id int64, patch map[string]any) (*domain.RoomReservation, error) {
	var out domain.RoomReservation
	if err := r.api.Patch(ctx, roomReservationPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReservationRepository) CancelRoomReservation(ctx context.Context, id int64) (*domain.RoomReservation, error) {
	return r.UpdateRoomReservation(ctx, id, map[string]any{"estado": domain.ReservationCancelled})
}

func (r *ReservationRepository) VerifyRoomOTP(ctx context.Context, id int64, code string) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.api.Post(ctx, roomReservationPath(id)+"verificar_otp/", map[string]string{"codigo_otp": code}, &out)
	return out, err
}

func (r *ReservationRepository) ResendRoomOTP(ctx context.Context, id int64) error {
	return r.api.Post(ctx, roomReservationPath(id)+"reenviar_otp/", map[string]any{}, nil)
}

// ListTableReservations lists table bookings. A userID above 0 narrows the
// list to that user's bookings.
func (r *ReservationRepository) ListTableReservations(ctx context.Context, userID int64) ([]domain.TableReservation, error) {
	out := []domain.TableReservation{}
	if err := r.api.List(ctx, PathTableReservations, userFilter(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) CancelTableReservation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s%d/", PathTableReservations, id)
	return r.api.Patch(ctx, path, map[string]any{"estado": domain.ReservationCancelled}, nil)
}

func (r *ReservationRepository) ListSalonReservations(ctx context.Context, userID int64) ([]domain.SalonReservation, error) {
	out := []domain.SalonReservation{}
	if err := r.api.List(ctx, PathSalonReservations, userFilter(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestCode asks the backend to send a verification code for a tentative
// booking and returns the session key the code is bound to.
func (r *ReservationRepository) RequestCode(ctx context.Context, path string, payload any) (string, error) {
	var out struct {
		Message    string `json:"message"`
		SessionKey string `json:"session_key_manual"`
	}
	if err := r.api.Post(ctx, path, payload, &out); err != nil {
		return "", err
	}
	return out.SessionKey, nil
}

// Create posts a booking and returns the created resource as sent back.
func (r *ReservationRepository) Create(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := r.api.Post(ctx, path, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) CancelSalonReservation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s%d/", PathSalonReservations, id)
	return r.api.Patch(ctx, path, map[string]any{"estado": domain.ReservationCancelled}, nil)
}

func userFilter(userID int64) url.Values {
	if userID <= 0 {
		return nil
	}
	return url.Values{"usuario": {strconv.FormatInt(userID, 10)}}
}

func roomReservationPath(id int64) string {
	return fmt.Sprintf("%s%d/", PathRoomReservations, id)
}
