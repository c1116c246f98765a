// Package domain defines the business logic for the extracurricular signup service.
package domain

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"example.com/extracurricular/internal/events"
	"example.com/extracurricular/internal/observability"
)

var (
	// ErrActivityNotFound is returned when an activity name is not in the store.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered indicates the email is already on the activity roster.
	ErrAlreadyRegistered = errors.New("student already signed up")
	// ErrNotRegistered indicates the email is absent from the activity roster.
	ErrNotRegistered = errors.New("student not registered")
	// ErrActivityFull indicates the roster has reached max participants.
	ErrActivityFull = errors.New("activity is full")
)

// RosterRepository captures store operations. AddParticipant and
// RemoveParticipant validate and mutate inside a single critical section so
// concurrent requests for the same roster cannot interleave.
type RosterRepository interface {
	List(ctx context.Context) (map[string]Activity, error)
	Get(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, email string) (*Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (*Activity, error)
}

// Publisher delivers roster change events downstream.
type Publisher interface {
	Publish(ctx context.Context, event events.RosterChanged) error
}

// Service orchestrates roster workflows.
type Service struct {
	repo      RosterRepository
	publisher Publisher
}

// NewService constructs a Service.
func NewService(repo RosterRepository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// ListActivities returns the full store keyed by activity name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.repo.List(ctx)
}

// GetActivity fetches a single activity by name.
func (s *Service) GetActivity(ctx context.Context, name string) (*Activity, error) {
	return s.repo.Get(ctx, name)
}

// Signup adds the email to the activity roster. The repository rejects
// unknown activities, duplicate signups, and full rosters.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	activity, err := s.repo.AddParticipant(ctx, name, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return err
	}

	observability.RecordSignup(activity.Name, len(activity.Participants))
	s.announce(ctx, *activity, email, events.ActionSignup)
	return nil
}

// Unregister removes the email from the activity roster.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	activity, err := s.repo.RemoveParticipant(ctx, name, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return err
	}

	observability.RecordUnregister(activity.Name, len(activity.Participants))
	s.announce(ctx, *activity, email, events.ActionUnregister)
	return nil
}

// announce publishes the roster change downstream. Delivery is best-effort:
// the roster mutation already happened and must not be rolled back, so
// failures are logged and counted only.
func (s *Service) announce(ctx context.Context, activity Activity, email string, action events.RosterAction) {
	if s.publisher == nil {
		return
	}

	event := events.RosterChanged{
		EventID:        uuid.NewString(),
		Activity:       activity.Name,
		Email:          email,
		Action:         action,
		SpotsRemaining: activity.SpotsLeft(),
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		observability.RecordAnnounceFailure()
		log.Printf("roster announce failed for %q: %v", activity.Name, err)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrActivityFull):
		return "activity_full"
	default:
		return "internal"
	}
}
