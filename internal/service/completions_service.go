package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/internal/repository"
	"github.com/Agi91/Habit-Tracker/internal/stats"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

type CompletionsService struct {
	habitsRepo      repository.HabitsRepositoryI
	completionsRepo repository.CompletionsRepositoryI
}

func NewCompletionsService(habitsRepo repository.HabitsRepositoryI, completionsRepo repository.CompletionsRepositoryI) *CompletionsService {
	if habitsRepo == nil || completionsRepo == nil {
		log.Fatal("on completions service provided nil repos")
	}
	return &CompletionsService{
		habitsRepo:      habitsRepo,
		completionsRepo: completionsRepo,
	}
}

// ToggleCompletion is a pure toggle: any well-formed date flips, past or
// future. Only ownership is checked here.
func (serv *CompletionsService) ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, date time.Time) (bool, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return false, err
		}
		return false, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return false, errorvalues.ErrWrongOwner
	}
	completed, err := serv.completionsRepo.Toggle(ctx, habitID, stats.Day(date))
	if err != nil {
		if errors.Is(err, errorvalues.ErrCompletionExists) {
			return false, err
		}
		return false, errors.New("repository error: " + err.Error())
	}
	return completed, nil
}

func (serv *CompletionsService) Summarize(ctx context.Context, habit *entity.Habit, today time.Time) (*stats.Summary, error) {
	dates, err := serv.completionsRepo.DatesByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	count, err := serv.completionsRepo.CountByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	summary, err := stats.Compute(habit, dates, count, today)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInvalidConfiguration) {
			return nil, err
		}
		return nil, errors.New("stats error: " + err.Error())
	}
	return summary, nil
}
