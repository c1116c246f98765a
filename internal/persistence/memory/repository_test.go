package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/extracurricular/internal/domain"
)

func TestSeedCatalog(t *testing.T) {
	repo := NewRepository()

	activities, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, activities)

	for name, activity := range activities {
		require.Equal(t, name, activity.Name)
		require.NotEmpty(t, activity.Description)
		require.NotEmpty(t, activity.Schedule)
		require.Positive(t, activity.MaxParticipants)
		require.NotNil(t, activity.Participants)
		require.LessOrEqual(t, len(activity.Participants), activity.MaxParticipants)
	}

	basketball, err := repo.Get(context.Background(), "Basketball Team")
	require.NoError(t, err)
	require.NotEmpty(t, basketball.Participants)
}

func TestAddParticipant(t *testing.T) {
	repo := NewRepository()

	activity, err := repo.AddParticipant(context.Background(), "Chess Club", "new@mergington.edu")
	require.NoError(t, err)
	require.True(t, activity.HasParticipant("new@mergington.edu"))
	require.Equal(t, "new@mergington.edu", activity.Participants[len(activity.Participants)-1])

	_, err = repo.AddParticipant(context.Background(), "Chess Club", "new@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	_, err = repo.AddParticipant(context.Background(), "Knitting Circle", "new@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestAddParticipantCapacity(t *testing.T) {
	repo := NewEmptyRepository()
	repo.Put(domain.Activity{
		Name:            "Robotics Club",
		MaxParticipants: 2,
		Participants:    []string{"a@mergington.edu"},
	})

	_, err := repo.AddParticipant(context.Background(), "Robotics Club", "b@mergington.edu")
	require.NoError(t, err)

	_, err = repo.AddParticipant(context.Background(), "Robotics Club", "c@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityFull)
}

func TestRemoveParticipant(t *testing.T) {
	repo := NewRepository()

	seeded, err := repo.Get(context.Background(), "Basketball Team")
	require.NoError(t, err)
	email := seeded.Participants[0]

	activity, err := repo.RemoveParticipant(context.Background(), "Basketball Team", email)
	require.NoError(t, err)
	require.False(t, activity.HasParticipant(email))

	_, err = repo.RemoveParticipant(context.Background(), "Basketball Team", email)
	require.ErrorIs(t, err, domain.ErrNotRegistered)

	_, err = repo.RemoveParticipant(context.Background(), "Knitting Circle", email)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestRemovePreservesOrder(t *testing.T) {
	repo := NewEmptyRepository()
	repo.Put(domain.Activity{
		Name:            "Robotics Club",
		MaxParticipants: 5,
		Participants:    []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"},
	})

	activity, err := repo.RemoveParticipant(context.Background(), "Robotics Club", "b@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"a@mergington.edu", "c@mergington.edu"}, activity.Participants)
}

func TestListReturnsCopies(t *testing.T) {
	repo := NewRepository()

	first, err := repo.List(context.Background())
	require.NoError(t, err)

	chess := first["Chess Club"]
	chess.Participants[0] = "tampered@mergington.edu"
	delete(first, "Basketball Team")

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Contains(t, second, "Basketball Team")
	require.NotEqual(t, "tampered@mergington.edu", second["Chess Club"].Participants[0])
}

func TestConcurrentDuplicateSignup(t *testing.T) {
	repo := NewRepository()

	const attempts = 50
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AddParticipant(context.Background(), "Gym Class", "racer@mergington.edu")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		}
	}
	require.Equal(t, 1, successes)

	activity, err := repo.Get(context.Background(), "Gym Class")
	require.NoError(t, err)

	count := 0
	for _, p := range activity.Participants {
		if p == "racer@mergington.edu" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestConcurrentSignupsRespectCapacity(t *testing.T) {
	repo := NewEmptyRepository()
	repo.Put(domain.Activity{
		Name:            "Robotics Club",
		MaxParticipants: 10,
	})

	const attempts = 40
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.AddParticipant(context.Background(), "Robotics Club", fmt.Sprintf("student%d@mergington.edu", i))
		}(i)
	}
	wg.Wait()

	activity, err := repo.Get(context.Background(), "Robotics Club")
	require.NoError(t, err)
	require.Len(t, activity.Participants, 10)
}
