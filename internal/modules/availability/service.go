package availability

import (
	"context"
	"log"
	"strconv"
	"time"

	"hotelindigo/internal/domain"
)

// BoardEntry is one resource with its status for the slot asked about.
type BoardEntry struct {
	ResourceID int64  `json:"resource_id"`
	Label      string `json:"label"`
	Capacity   int    `json:"capacidad"`
	Location   string `json:"ubicacion,omitempty"`
	Status
}

// Service fetches the day's bookings for every check. Nothing is cached: a
// new check always sees the backend's current list.
type Service struct {
	reservations ReservationRepository
	catalog      CatalogRepository
	checker      Checker
	loc          *time.Location
}

func NewService(reservations ReservationRepository, catalog CatalogRepository, d Durations, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		reservations: reservations,
		catalog:      catalog,
		checker:      NewChecker(d),
		loc:          loc,
	}
}

func (s *Service) Durations() Durations {
	return s.checker.durations
}

func (s *Service) Check(ctx context.Context, c Candidate) (Status, error) {
	if c.Date == "" || c.Time == "" {
		return Status{}, nil
	}
	if !c.Category.Valid() {
		return Status{}, ErrInvalidCategory
	}
	day, err := s.DayBookings(ctx, c.Category, c.Date)
	if err != nil {
		return Status{}, err
	}
	return s.checker.Check(c, day), nil
}

// DayBookings returns the non-cancelled bookings of a category on date.
func (s *Service) DayBookings(ctx context.Context, category Category, date string) ([]Booking, error) {
	var out []Booking
	add := func(id int64, raw string, status domain.ReservationStatus) {
		if status == domain.ReservationCancelled {
			return
		}
		start, err := domain.ParseAPITime(raw, s.loc)
		if err != nil {
			log.Printf("availability_skip_booking resource_id=%d start=%q error=%q", id, raw, err.Error())
			return
		}
		if start.Format("2006-01-02") != date {
			return
		}
		out = append(out, Booking{ResourceID: id, Start: start, Status: status})
	}

	switch category {
	case CategoryTable:
		list, err := s.reservations.ListTableReservations(ctx, 0)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			add(r.Table.ID, r.StartsAt, r.Status)
		}
	case CategorySalon:
		list, err := s.reservations.ListSalonReservations(ctx, 0)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			add(r.Salon.ID, r.StartsAt, r.Status)
		}
	default:
		return nil, ErrInvalidCategory
	}
	return out, nil
}

// TableBoard lists the tables seating at least guests with their status at
// date and hhmm.
func (s *Service) TableBoard(ctx context.Context, date, hhmm string, guests int) ([]BoardEntry, error) {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	day, err := s.dayIfSet(ctx, CategoryTable, date, hhmm)
	if err != nil {
		return nil, err
	}

	board := []BoardEntry{}
	for _, t := range tables {
		if t.Capacity < guests {
			continue
		}
		c := Candidate{Date: date, Time: hhmm, ResourceID: t.ID, Category: CategoryTable}
		board = append(board, BoardEntry{
			ResourceID: t.ID,
			Label:      strconv.Itoa(t.Number),
			Capacity:   t.Capacity,
			Location:   t.Location,
			Status:     s.checker.Check(c, day),
		})
	}
	return board, nil
}

func (s *Service) SalonBoard(ctx context.Context, date, hhmm string) ([]BoardEntry, error) {
	salons, err := s.catalog.ListSalons(ctx)
	if err != nil {
		return nil, err
	}
	day, err := s.dayIfSet(ctx, CategorySalon, date, hhmm)
	if err != nil {
		return nil, err
	}

	board := make([]BoardEntry, 0, len(salons))
	for _, sa := range salons {
		c := Candidate{Date: date, Time: hhmm, ResourceID: sa.ID, Category: CategorySalon}
		board = append(board, BoardEntry{
			ResourceID: sa.ID,
			Label:      sa.Name,
			Capacity:   sa.Capacity,
			Status:     s.checker.Check(c, day),
		})
	}
	return board, nil
}

func (s *Service) dayIfSet(ctx context.Context, category Category, date, hhmm string) ([]Booking, error) {
	if date == "" || hhmm == "" {
		return nil, nil
	}
	return s.DayBookings(ctx, category, date)
}
