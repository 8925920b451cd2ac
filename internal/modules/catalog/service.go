package catalog

import (
	"context"
	"strings"

	"hotelindigo/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Rooms lists bookable rooms. Search matches the room number or category,
// case-insensitively. Rooms not available are left out unless asked for.
func (s *Service) Rooms(ctx context.Context, f RoomFilter) ([]domain.Room, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !f.IncludeBooked && !r.IsAvailable() {
			continue
		}
		if f.Category != "" && f.Category != "todas" && string(r.Category) != f.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Number), q) &&
			!strings.Contains(strings.ToLower(string(r.Category)), q) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) Room(ctx context.Context, id int64) (*domain.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// Tables lists the tables seating at least guests.
func (s *Service) Tables(ctx context.Context, guests int) ([]domain.Table, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if t.Capacity >= guests {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) Salons(ctx context.Context) ([]domain.Salon, error) {
	return s.repo.ListSalons(ctx)
}

func (s *Service) Dishes(ctx context.Context, f DishFilter) ([]domain.Dish, error) {
	dishes, err := s.repo.ListDishes(ctx, f.OnlyAvailable)
	if err != nil {
		return nil, err
	}
	if f.Category == "" {
		return dishes, nil
	}
	out := make([]domain.Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.Category == f.Category {
			out = append(out, d)
		}
	}
	return out, nil
}
