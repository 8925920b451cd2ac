package domain

import "time"

// SessionUser is what the host knows about the logged-in user. It is read
// from the access token claims and the login response, never issued here.
type SessionUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"rol,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}
