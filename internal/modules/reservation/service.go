package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/events"
	"hotelindigo/internal/pkg/validator"
)

type Kind string

const (
	KindRoom  Kind = "room"
	KindTable Kind = "table"
	KindSalon Kind = "salon"
)

const DefaultOTPMinLength = 6

type Service struct {
	repo         Repository
	publisher    events.Publisher
	loc          *time.Location
	otpMinLength int
}

func NewService(repo Repository, publisher events.Publisher, loc *time.Location) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, publisher: publisher, loc: loc, otpMinLength: DefaultOTPMinLength}
}

// List loads the three kinds concurrently. Each kind fails on its own; the
// call only errors when none could be loaded.
func (s *Service) List(ctx context.Context, userID int64) (*Overview, error) {
	out := &Overview{
		Rooms:  []domain.RoomReservation{},
		Tables: []domain.TableReservation{},
		Salons: []domain.SalonReservation{},
	}

	kinds := [...]Kind{KindRoom, KindTable, KindSalon}
	var errs [len(kinds)]error

	// a plain Group: one kind failing must not cancel the others
	var g errgroup.Group
	load := func(slot int, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				errs[slot] = err
				log.Printf("reservations_list_failed kind=%s user_id=%d error=%q", kinds[slot], userID, err.Error())
				return fmt.Errorf("%s reservations: %w", kinds[slot], err)
			}
			return nil
		})
	}
	load(0, func() error {
		rooms, err := s.repo.ListRoomReservations(ctx)
		if err != nil {
			return err
		}
		s.newestFirst(len(rooms), func(i int) string { return rooms[i].CreatedAt }, func(i, j int) {
			rooms[i], rooms[j] = rooms[j], rooms[i]
		})
		out.Rooms = rooms
		return nil
	})
	load(1, func() error {
		tables, err := s.repo.ListTableReservations(ctx, userID)
		if err != nil {
			return err
		}
		s.newestFirst(len(tables), func(i int) string { return tables[i].CreatedAt }, func(i, j int) {
			tables[i], tables[j] = tables[j], tables[i]
		})
		out.Tables = tables
		return nil
	})
	load(2, func() error {
		salons, err := s.repo.ListSalonReservations(ctx, userID)
		if err != nil {
			return err
		}
		s.newestFirst(len(salons), func(i int) string { return salons[i].CreatedAt }, func(i, j int) {
			salons[i], salons[j] = salons[j], salons[i]
		})
		out.Salons = salons
		return nil
	})
	firstErr := g.Wait()
	if firstErr == nil {
		return out, nil
	}

	for i, err := range errs {
		if err != nil {
			out.Failed = append(out.Failed, string(kinds[i]))
		}
	}
	if len(out.Failed) == len(kinds) {
		return nil, fmt.Errorf("%w: %w", ErrAllListsFailed, firstErr)
	}
	sort.Strings(out.Failed)
	return out, nil
}

func (s *Service) Room(ctx context.Context, id int64) (*domain.RoomReservation, error) {
	return s.repo.GetRoomReservation(ctx, id)
}

// UpdateRoom changes the dates, guests or services of a pending stay.
func (s *Service) UpdateRoom(ctx context.Context, id int64, p RoomPatch) (*domain.RoomReservation, error) {
	if p.CheckIn == nil && p.CheckOut == nil && p.Guests == nil && p.Services == nil {
		return nil, ErrEmptyPatch
	}
	if err := validator.Check(p); err != nil {
		return nil, err
	}
	current, err := s.repo.GetRoomReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ReservationPending {
		return nil, ErrNotModifiable
	}

	checkIn, checkOut := current.CheckIn, current.CheckOut
	patch := map[string]any{}
	if p.CheckIn != nil {
		checkIn = *p.CheckIn
		patch["fecha_checkin"] = checkIn
	}
	if p.CheckOut != nil {
		checkOut = *p.CheckOut
		patch["fecha_checkout"] = checkOut
	}
	if !s.stayOrdered(checkIn, checkOut) {
		return nil, validator.FieldErrors{"fecha_checkout": "gtfield"}
	}
	if p.Guests != nil {
		patch["huespedes"] = *p.Guests
	}
	if p.Services != nil {
		patch["servicios_adicionales"] = p.Services
	}
	return s.repo.UpdateRoomReservation(ctx, id, patch)
}

// Cancel cancels a booking of any kind. Rooms are looked up first so an
// already cancelled stay is refused locally; for tables and salons the
// backend decides.
func (s *Service) Cancel(ctx context.Context, kind Kind, id int64) error {
	var err error
	switch kind {
	case KindRoom:
		var current *domain.RoomReservation
		current, err = s.repo.GetRoomReservation(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == domain.ReservationCancelled {
			return ErrNotCancellable
		}
		_, err = s.repo.CancelRoomReservation(ctx, id)
	case KindTable:
		err = s.repo.CancelTableReservation(ctx, id)
	case KindSalon:
		err = s.repo.CancelSalonReservation(ctx, id)
	default:
		return ErrInvalidType
	}
	if err != nil {
		return err
	}

	log.Printf("reservation_cancelled kind=%s id=%d", kind, id)
	_ = s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeReservationCancelled,
		Key:        string(kind) + "-" + strconv.FormatInt(id, 10),
		Payload:    map[string]any{"kind": kind, "id": id},
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *Service) VerifyOTP(ctx context.Context, id int64, code string) (json.RawMessage, error) {
	code = strings.TrimSpace(code)
	if len(code) < s.otpMinLength {
		return nil, ErrCodeTooShort
	}
	return s.repo.VerifyRoomOTP(ctx, id, code)
}

func (s *Service) ResendOTP(ctx context.Context, id int64) error {
	return s.repo.ResendRoomOTP(ctx, id)
}

// newestFirst orders by creation time descending. Entries whose time cannot
// be read go last, keeping their order.
func (s *Service) newestFirst(n int, created func(int) string, swap func(i, j int)) {
	keys := make([]time.Time, n)
	for i := range keys {
		keys[i], _ = domain.ParseAPITime(created(i), s.loc)
	}
	sort.Stable(byTimeDesc{keys: keys, swap: swap})
}

func (s *Service) stayOrdered(checkIn, checkOut string) bool {
	in, err1 := domain.ParseAPITime(checkIn, s.loc)
	out, err2 := domain.ParseAPITime(checkOut, s.loc)
	if err1 != nil || err2 != nil {
		return true
	}
	return out.After(in)
}

type byTimeDesc struct {
	keys []time.Time
	swap func(i, j int)
}

func (b byTimeDesc) Len() int           { return len(b.keys) }
func (b byTimeDesc) Less(i, j int) bool { return b.keys[i].After(b.keys[j]) }
func (b byTimeDesc) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.swap(i, j)
}
