package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/internal/service"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateHabitNotFoundError
	stateOwnerNotFoundError
	stateWrongOwner
)

// Variables for tests
var (
	userID    = uuid.New()
	habitID   = uuid.New()
	testHabit = entity.Habit{
		ID:           habitID,
		UserID:       userID,
		Name:         "test_habit",
		GoalDuration: 10,
		StartDate:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Now(),
	}
)

type habitsRepoMock struct {
	state   mockState
	created *entity.Habit
	deleted bool
}

func (hrmock *habitsRepoMock) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	switch hrmock.state {
	case stateOwnerNotFoundError:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		hrmock.created = habit
		return habitID, nil
	}
}

func (hrmock *habitsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return nil, errorvalues.ErrHabitNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		foreign := testHabit
		foreign.UserID = uuid.New()
		return &foreign, nil
	default:
		if hrmock.created != nil {
			h := *hrmock.created
			h.ID = habitID
			return &h, nil
		}
		h := testHabit
		return &h, nil
	}
}

func (hrmock *habitsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	switch hrmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		h := testHabit
		return []*entity.Habit{&h}, nil
	}
}

func (hrmock *habitsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch hrmock.state {
	case stateHabitNotFoundError:
		return errorvalues.ErrHabitNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		hrmock.deleted = true
		return nil
	}
}

func TestParseGoalDuration(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"plain number", "30", 30},
		{"padded number", "  42  ", 42},
		{"empty falls back", "", 365},
		{"non-numeric falls back", "a lot", 365},
		{"zero falls back", "0", 365},
		{"negative falls back", "-5", 365},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.ParseGoalDuration(tc.raw))
		})
	}
}

func TestCreateHabit(t *testing.T) {
	ctx := context.Background()
	startedAt := time.Date(2025, time.March, 1, 18, 30, 0, 0, time.UTC)
	t.Run("created with trimmed name and normalized start date", func(t *testing.T) {
		mock := &habitsRepoMock{state: stateSuccess}
		hs := service.NewHabitsService(mock)
		habit, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Name:         "  Morning run  ",
			GoalDuration: "90",
			StartDate:    startedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "Morning run", habit.Name)
		assert.Equal(t, 90, habit.GoalDuration)
		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), habit.StartDate)
	})
	t.Run("blank name rejected", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateSuccess})
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Name:      "   ",
			StartDate: startedAt,
		})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidInput)
	})
	t.Run("unparseable goal swallowed to default", func(t *testing.T) {
		mock := &habitsRepoMock{state: stateSuccess}
		hs := service.NewHabitsService(mock)
		habit, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Name:         "Read",
			GoalDuration: "not-a-number",
			StartDate:    startedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, 365, habit.GoalDuration)
	})
	t.Run("unexist owner", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateOwnerNotFoundError})
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Name:      "Read",
			StartDate: startedAt,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateDBError})
		_, err := hs.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Name:      "Read",
			StartDate: startedAt,
		})
		assert.Error(t, err)
	})
}

func TestGetUserHabits(t *testing.T) {
	ctx := context.Background()
	t.Run("provided", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateSuccess})
		habits, err := hs.GetUserHabits(ctx, userID)
		require.NoError(t, err)
		require.Len(t, habits, 1)
		assert.Equal(t, testHabit, *habits[0])
	})
	t.Run("db error", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateDBError})
		_, err := hs.GetUserHabits(ctx, userID)
		assert.Error(t, err)
	})
}

func TestDeleteHabit(t *testing.T) {
	ctx := context.Background()
	t.Run("deleted and returned", func(t *testing.T) {
		mock := &habitsRepoMock{state: stateSuccess}
		hs := service.NewHabitsService(mock)
		habit, err := hs.DeleteHabit(ctx, habitID, userID)
		require.NoError(t, err)
		assert.True(t, mock.deleted)
		assert.Equal(t, testHabit.Name, habit.Name)
	})
	t.Run("unexist habit", func(t *testing.T) {
		hs := service.NewHabitsService(&habitsRepoMock{state: stateHabitNotFoundError})
		_, err := hs.DeleteHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("foreign habit stays", func(t *testing.T) {
		mock := &habitsRepoMock{state: stateWrongOwner}
		hs := service.NewHabitsService(mock)
		_, err := hs.DeleteHabit(ctx, habitID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		assert.False(t, mock.deleted)
	})
}
