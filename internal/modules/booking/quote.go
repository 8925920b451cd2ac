package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hotelindigo/internal/domain"
)

var DefaultTaxRate = decimal.RequireFromString("0.16")

type Quote struct {
	RoomID        int64           `json:"habitacion_id"`
	Nights        int             `json:"noches"`
	PricePerNight decimal.Decimal `json:"precio_noche"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tasa_impuesto"`
	Tax           decimal.Decimal `json:"impuesto"`
	Total         decimal.Decimal `json:"total"`
}

// QuoteStay prices a stay at the room's base price per night plus tax.
func QuoteStay(room domain.Room, checkIn, checkOut string, taxRate decimal.Decimal) (Quote, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return Quote{}, ErrInvalidDates
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return Quote{}, ErrInvalidDates
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return Quote{}, ErrInvalidDates
	}

	subtotal := room.BasePrice.Mul(decimal.NewFromInt(int64(nights)))
	tax := subtotal.Mul(taxRate).Round(2)
	return Quote{
		RoomID:        room.ID,
		Nights:        nights,
		PricePerNight: room.BasePrice,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		Tax:           tax,
		Total:         subtotal.Add(tax),
	}, nil
}

type Quoter struct {
	rooms   RoomRepository
	taxRate decimal.Decimal
}

func NewQuoter(rooms RoomRepository, taxRate decimal.Decimal) *Quoter {
	if taxRate.IsNegative() {
		taxRate = DefaultTaxRate
	}
	return &Quoter{rooms: rooms, taxRate: taxRate}
}

func (q *Quoter) Quote(ctx context.Context, roomID int64, checkIn, checkOut string) (Quote, error) {
	room, err := q.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return Quote{}, err
	}
	return QuoteStay(*room, checkIn, checkOut, q.taxRate)
}
