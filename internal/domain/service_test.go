package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/extracurricular/internal/events"
)

func TestSignupPublishesRosterEvent(t *testing.T) {
	repo := &stubRepo{
		activity: Activity{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []string{"a@mergington.edu", "b@mergington.edu"},
		},
	}
	publisher := &stubPublisher{}
	service := NewService(repo, publisher)

	err := service.Signup(context.Background(), "Chess Club", "c@mergington.edu")
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	require.NotEmpty(t, event.EventID)
	require.Equal(t, "Chess Club", event.Activity)
	require.Equal(t, "c@mergington.edu", event.Email)
	require.Equal(t, events.ActionSignup, event.Action)
	require.Equal(t, 9, event.SpotsRemaining)
	require.False(t, event.OccurredAt.IsZero())
}

func TestUnregisterPublishesRosterEvent(t *testing.T) {
	repo := &stubRepo{
		activity: Activity{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []string{"a@mergington.edu"},
		},
	}
	publisher := &stubPublisher{}
	service := NewService(repo, publisher)

	err := service.Unregister(context.Background(), "Chess Club", "a@mergington.edu")
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	require.Equal(t, events.ActionUnregister, publisher.published[0].Action)
}

func TestRejectedSignupDoesNotPublish(t *testing.T) {
	repo := &stubRepo{err: ErrAlreadyRegistered}
	publisher := &stubPublisher{}
	service := NewService(repo, publisher)

	err := service.Signup(context.Background(), "Chess Club", "a@mergington.edu")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Empty(t, publisher.published)
}

func TestPublishFailureDoesNotFailSignup(t *testing.T) {
	repo := &stubRepo{
		activity: Activity{Name: "Chess Club", MaxParticipants: 12},
	}
	publisher := &stubPublisher{err: errors.New("broker unavailable")}
	service := NewService(repo, publisher)

	err := service.Signup(context.Background(), "Chess Club", "a@mergington.edu")
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
}

type stubRepo struct {
	activity Activity
	err      error
}

func (s *stubRepo) List(ctx context.Context) (map[string]Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]Activity{s.activity.Name: s.activity}, nil
}

func (s *stubRepo) Get(ctx context.Context, name string) (*Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := s.activity
	return &clone, nil
}

func (s *stubRepo) AddParticipant(ctx context.Context, name, email string) (*Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := s.activity
	clone.Participants = append(append([]string{}, clone.Participants...), email)
	return &clone, nil
}

func (s *stubRepo) RemoveParticipant(ctx context.Context, name, email string) (*Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := s.activity
	out := make([]string, 0, len(clone.Participants))
	for _, p := range clone.Participants {
		if p != email {
			out = append(out, p)
		}
	}
	clone.Participants = out
	return &clone, nil
}

type stubPublisher struct {
	published []events.RosterChanged
	err       error
}

func (s *stubPublisher) Publish(ctx context.Context, event events.RosterChanged) error {
	s.published = append(s.published, event)
	if s.err != nil {
		return s.err
	}
	return nil
}
