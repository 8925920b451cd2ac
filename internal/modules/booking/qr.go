package booking

import (
	qrcode "github.com/skip2/go-qrcode"
)

const DefaultQRSize = 256

// QRCode renders the confirmation reference as a PNG for check-in.
func (c Confirmation) QRCode(size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode("hotelindigo:"+c.Reference, qrcode.Medium, size)
}
