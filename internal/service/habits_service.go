package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/internal/repository"
	"github.com/Agi91/Habit-Tracker/internal/stats"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

const defaultGoalDuration = 365

type HabitsService struct {
	repo repository.HabitsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo: habitsRepo,
	}
}

// ParseGoalDuration applies the permissive fallback rule: any value
// that is absent, non-numeric or below 1 becomes the 365-day default.
// Parse failures are swallowed on purpose, never surfaced.
func ParseGoalDuration(raw string) int {
	goal, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || goal < 1 {
		return defaultGoalDuration
	}
	return goal
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errorvalues.ErrInvalidInput
	}
	h := entity.Habit{
		UserID:       uid,
		Name:         name,
		GoalDuration: ParseGoalDuration(req.GoalDuration),
		StartDate:    stats.Day(req.StartDate),
	}
	id, err := hs.repo.Create(ctx, &h)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	err = hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}
