package user

import "time"

// User represents a registered traveller account. The password is only ever
// held as a bcrypt hash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
