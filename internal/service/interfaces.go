package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Agi91/Habit-Tracker/internal/stats"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

type RegisterRequest struct {
	Username string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Name string
	// Raw form value. Anything that doesn't parse to a positive integer
	// silently becomes 365
	GoalDuration string
	StartDate    time.Time
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, username, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type HabitsServiceI interface {
	// Creates habit owned by uid. Name is required, goal duration parsed permissively
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	// Lists uid's habits in creation order
	GetUserHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Deletes habitID with its completions if owned by userID. Returns the
	// deleted habit so callers can name it in notices
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
}

type CompletionsServiceI interface {
	// Flips completion state for the date on habitID if owned by userID.
	// Returns the new state
	ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, date time.Time) (bool, error)
	// Assembles the display summary for a habit as of today
	Summarize(ctx context.Context, habit *entity.Habit, today time.Time) (*stats.Summary, error)
}
