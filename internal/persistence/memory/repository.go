// Package memory provides the in-memory activity store, the sole source of
// truth for rosters. State lives for the process lifetime.
package memory

import (
	"context"
	"sync"

	"example.com/extracurricular/internal/domain"
)

// Repository stores activities in memory behind a single lock. Activities are
// created by the seed only; runtime mutation is limited to roster membership.
type Repository struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// NewRepository constructs a repository populated with the school's fixed
// activity catalog.
func NewRepository() *Repository {
	repo := NewEmptyRepository()
	repo.seed()
	return repo
}

// NewEmptyRepository constructs a repository without seed data. Tests use it
// to build isolated fixtures.
func NewEmptyRepository() *Repository {
	return &Repository{activities: make(map[string]domain.Activity)}
}

// Put inserts or replaces an activity. Intended for seeding and test setup.
func (r *Repository) Put(activity domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[activity.Name] = cloneActivity(activity)
}

// List returns a deep copy of the full store keyed by activity name.
func (r *Repository) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = cloneActivity(activity)
	}
	return out, nil
}

// Get returns a copy of a single activity.
func (r *Repository) Get(ctx context.Context, name string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	clone := cloneActivity(activity)
	return &clone, nil
}

// AddParticipant validates and appends the email under one lock, so two
// concurrent signups cannot both pass the duplicate or capacity check.
func (r *Repository) AddParticipant(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return nil, domain.ErrAlreadyRegistered
	}
	if len(activity.Participants) >= activity.MaxParticipants {
		return nil, domain.ErrActivityFull
	}

	activity.Participants = append(activity.Participants, email)
	r.activities[name] = activity

	clone := cloneActivity(activity)
	return &clone, nil
}

// RemoveParticipant validates and removes the email under one lock.
func (r *Repository) RemoveParticipant(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}

	index := -1
	for i, p := range activity.Participants {
		if p == email {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, domain.ErrNotRegistered
	}

	activity.Participants = append(activity.Participants[:index:index], activity.Participants[index+1:]...)
	r.activities[name] = activity

	clone := cloneActivity(activity)
	return &clone, nil
}

// cloneActivity copies the activity with an independent, non-nil participant
// slice so callers never alias store state and empty rosters serialize as
// JSON arrays.
func cloneActivity(activity domain.Activity) domain.Activity {
	participants := make([]string, len(activity.Participants))
	copy(participants, activity.Participants)
	activity.Participants = participants
	return activity
}
