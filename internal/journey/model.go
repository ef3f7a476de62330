package journey

import "time"

// Status is the closed set of journey lifecycle states.
type Status string

const (
	// StatusActive marks a journey in progress.
	StatusActive Status = "ACTIVE"
	// StatusEnded marks a journey that has been explicitly ended.
	StatusEnded Status = "ENDED"
)

// Journey records a single trip. EndedAt is zero while the journey is active.
type Journey struct {
	ID        string
	UserName  string
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
}
