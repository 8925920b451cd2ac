package booking

import (
	"time"

	"hotelindigo/internal/modules/availability"
	"hotelindigo/internal/pkg/validator"
	"hotelindigo/internal/repository"
)

type Type string

const (
	TypeRoom  Type = "room"
	TypeTable Type = "table"
	TypeSalon Type = "salon"
)

// Request is the booking form. Type selects which of Room, Table or Salon
// is read; the others are ignored.
type Request struct {
	Type  Type          `json:"type"`
	Room  *RoomRequest  `json:"room,omitempty"`
	Table *TableRequest `json:"table,omitempty"`
	Salon *SalonRequest `json:"salon,omitempty"`
}

type RoomRequest struct {
	RoomID   int64           `json:"habitacion_id" validate:"required,gt=0"`
	CheckIn  string          `json:"fecha_checkin" validate:"required,datetime=2006-01-02"`
	CheckOut string          `json:"fecha_checkout" validate:"required,datetime=2006-01-02"`
	Guests   int             `json:"huespedes" validate:"required,min=1"`
	Services map[string]bool `json:"servicios_adicionales"`
}

type TableRequest struct {
	TableID int64  `json:"mesa_id" validate:"required,gt=0"`
	Date    string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Time    string `json:"hora" validate:"required,datetime=15:04"`
	Guests  int    `json:"cantidad_personas" validate:"required,min=1"`
	Notes   string `json:"notas"`
}

type SalonRequest struct {
	SalonID int64  `json:"salon_id" validate:"required,gt=0"`
	Date    string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Time    string `json:"hora" validate:"required,datetime=15:04"`
	Guests  int    `json:"cantidad_invitados" validate:"required,min=1"`
}

// variant is one bookable resource type. Every step of the workflow that
// differs by type goes through it.
type variant interface {
	kind() Type
	resourceID() int64
	// candidate is the slot to pre-check, ok is false when the type has none.
	candidate() (c availability.Candidate, ok bool)
	codeRequest() (path string, payload any)
	creation(code, sessionKey string) (path string, payload any)
}

// variant decodes r into its single concrete type and validates it.
func (r Request) variant() (variant, error) {
	var v interface {
		variant
		validate() error
	}
	switch r.Type {
	case TypeRoom:
		if r.Room == nil {
			return nil, validator.FieldErrors{"room": "required"}
		}
		v = roomVariant{*r.Room}
	case TypeTable:
		if r.Table == nil {
			return nil, validator.FieldErrors{"table": "required"}
		}
		v = tableVariant{*r.Table}
	case TypeSalon:
		if r.Salon == nil {
			return nil, validator.FieldErrors{"salon": "required"}
		}
		v = salonVariant{*r.Salon}
	default:
		return nil, ErrInvalidType
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

type roomVariant struct{ RoomRequest }

func (v roomVariant) kind() Type        { return TypeRoom }
func (v roomVariant) resourceID() int64 { return v.RoomID }

func (v roomVariant) validate() error {
	if err := validator.Check(v.RoomRequest); err != nil {
		return err
	}
	in, _ := time.Parse("2006-01-02", v.CheckIn)
	out, _ := time.Parse("2006-01-02", v.CheckOut)
	if !out.After(in) {
		return validator.FieldErrors{"fecha_checkout": "gtfield"}
	}
	return nil
}

func (v roomVariant) candidate() (availability.Candidate, bool) {
	return availability.Candidate{}, false
}

func (v roomVariant) codeRequest() (string, any) {
	return repository.PathRoomCode, map[string]any{
		"habitacion_id": v.RoomID,
		"checkin":       v.CheckIn,
		"checkout":      v.CheckOut,
	}
}

func (v roomVariant) creation(code, key string) (string, any) {
	services := v.Services
	if services == nil {
		services = map[string]bool{}
	}
	return repository.PathRoomReservations, map[string]any{
		"habitacion":            v.RoomID,
		"fecha_checkin":         v.CheckIn,
		"fecha_checkout":        v.CheckOut,
		"huespedes":             v.Guests,
		"servicios_adicionales": services,
		"codigo_verificacion":   code,
		"session_key_manual":    key,
	}
}

type tableVariant struct{ TableRequest }

func (v tableVariant) kind() Type        { return TypeTable }
func (v tableVariant) resourceID() int64 { return v.TableID }

func (v tableVariant) validate() error {
	return validator.Check(v.TableRequest)
}

func (v tableVariant) candidate() (availability.Candidate, bool) {
	return availability.Candidate{
		Date:       v.Date,
		Time:       v.Time,
		ResourceID: v.TableID,
		Category:   availability.CategoryTable,
	}, true
}

// Table codes are issued by the room endpoint.
func (v tableVariant) codeRequest() (string, any) {
	return repository.PathRoomCode, map[string]any{
		"mesa_id": v.TableID,
		"fecha":   v.Date,
	}
}

func (v tableVariant) creation(code, key string) (string, any) {
	return repository.PathTableReservations, map[string]any{
		"mesa":                v.TableID,
		"fecha_reserva":       v.Date + "T" + v.Time + ":00",
		"cantidad_personas":   v.Guests,
		"notas":               v.Notes,
		"codigo_verificacion": code,
		"session_key_manual":  key,
	}
}

type salonVariant struct{ SalonRequest }

func (v salonVariant) kind() Type        { return TypeSalon }
func (v salonVariant) resourceID() int64 { return v.SalonID }

func (v salonVariant) validate() error {
	return validator.Check(v.SalonRequest)
}

func (v salonVariant) candidate() (availability.Candidate, bool) {
	return availability.Candidate{
		Date:       v.Date,
		Time:       v.Time,
		ResourceID: v.SalonID,
		Category:   availability.CategorySalon,
	}, true
}

func (v salonVariant) codeRequest() (string, any) {
	return repository.PathSalonCode, map[string]any{
		"salon_id":     v.SalonID,
		"fecha_evento": v.Date + "T" + v.Time,
	}
}

func (v salonVariant) creation(code, key string) (string, any) {
	return repository.PathSalonReservations, map[string]any{
		"salon":               v.SalonID,
		"fecha_evento":        v.Date + "T" + v.Time + ":00",
		"cantidad_invitados":  v.Guests,
		"codigo_verificacion": code,
		"session_key_manual":  key,
	}
}
