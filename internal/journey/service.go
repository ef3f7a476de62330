package journey

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/safetravel/safetravel/internal/notification"
)

// guestName is recorded when a journey is started without a user name.
const guestName = "Guest"

// Service exposes journey lifecycle operations.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService builds a journey service instance.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Start records a new active journey. An empty user name defaults to Guest.
func (s *Service) Start(ctx context.Context, userName string) (Journey, error) {
	if userName == "" {
		userName = guestName
	}

	j := Journey{
		ID:        uuid.New().String(),
		UserName:  userName,
		Status:    StatusActive,
		StartedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return Journey{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindJourneyStarted,
			Destination: j.UserName,
			Body:        "journey " + j.ID + " started",
		})
	}

	return j, nil
}

// Get retrieves a journey record.
func (s *Service) Get(ctx context.Context, id string) (Journey, error) {
	return s.repo.Get(ctx, id)
}

// End transitions an active journey to ENDED and returns the updated record.
func (s *Service) End(ctx context.Context, id string) (Journey, error) {
	if err := s.repo.End(ctx, id, time.Now().UTC()); err != nil {
		return Journey{}, err
	}
	return s.repo.Get(ctx, id)
}
