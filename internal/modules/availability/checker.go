// Package availability answers whether a table or salon is free at a given
// time, from the bookings already made for that day. It is an optimistic
// pre-check; the backend decides when the booking is created.
package availability

import (
	"fmt"
	"sort"
	"time"

	"hotelindigo/internal/domain"
)

type Category string

const (
	CategoryTable Category = "table"
	CategorySalon Category = "salon"
)

func (c Category) Valid() bool {
	return c == CategoryTable || c == CategorySalon
}

const (
	DefaultTableBlock = 120 * time.Minute
	DefaultSalonBlock = 6 * time.Hour
)

// Durations is how long a booking blocks its resource, per category.
type Durations struct {
	Table time.Duration
	Salon time.Duration
}

func DefaultDurations() Durations {
	return Durations{Table: DefaultTableBlock, Salon: DefaultSalonBlock}
}

func (d Durations) For(c Category) time.Duration {
	if c == CategorySalon {
		return d.Salon
	}
	return d.Table
}

// Candidate is the slot the user is looking at. Date is YYYY-MM-DD and Time
// is HH:MM; either may be empty while the form is being filled.
type Candidate struct {
	Date       string   `json:"date" form:"date"`
	Time       string   `json:"time" form:"time"`
	ResourceID int64    `json:"resource_id" form:"resource_id"`
	Category   Category `json:"category" form:"category"`
}

// Booking is an existing reservation reduced to what the check needs. Start
// is in the hotel's local time.
type Booking struct {
	ResourceID int64
	Start      time.Time
	Status     domain.ReservationStatus
}

type Status struct {
	Occupied bool   `json:"occupied"`
	FreeAt   string `json:"free_at,omitempty"`
}

type Checker struct {
	durations Durations
}

func NewChecker(d Durations) Checker {
	if d.Table <= 0 {
		d.Table = DefaultTableBlock
	}
	if d.Salon <= 0 {
		d.Salon = DefaultSalonBlock
	}
	return Checker{durations: d}
}

// Check with the default block lengths.
func Check(c Candidate, existing []Booking) Status {
	return NewChecker(DefaultDurations()).Check(c, existing)
}

// Check compares minute-of-day windows [start, start+block). Back-to-back
// bookings do not conflict. Cancelled bookings and bookings of other
// resources or dates are ignored. When several bookings conflict, FreeAt is
// the end of the one that starts first.
func (ch Checker) Check(c Candidate, existing []Booking) Status {
	if c.Date == "" || c.Time == "" {
		return Status{}
	}
	day, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return Status{}
	}
	start, ok := minuteOfDay(c.Time)
	if !ok {
		return Status{}
	}

	block := int(ch.durations.For(c.Category) / time.Minute)
	end := start + block

	conflicts := make([]int, 0, 1)
	for _, b := range existing {
		if b.ResourceID != c.ResourceID || b.Status == domain.ReservationCancelled {
			continue
		}
		y, m, d := b.Start.Date()
		if y != day.Year() || m != day.Month() || d != day.Day() {
			continue
		}
		bStart := b.Start.Hour()*60 + b.Start.Minute()
		bEnd := bStart + block
		if start < bEnd && end > bStart {
			conflicts = append(conflicts, bStart)
		}
	}
	if len(conflicts) == 0 {
		return Status{}
	}

	sort.Ints(conflicts)
	return Status{Occupied: true, FreeAt: formatMinute(conflicts[0] + block)}
}

func minuteOfDay(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatMinute(m int) string {
	m %= 24 * 60
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
