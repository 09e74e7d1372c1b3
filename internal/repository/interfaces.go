package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by username. Can be used for login
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Looks up user by uid. Can be used for session middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user with its habits and their completions
	Delete(ctx context.Context, uid uuid.UUID) error
}

type HabitsRepositoryI interface {
	// Creates new habit in database. In habit only UserID, Name, GoalDuration,
	// StartDate are necessary. Returns id of the created row
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid, in creation order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Deletes habit with id and all its completions in one transaction
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompletionsRepositoryI interface {
	// Flips completion state for (habitID, date) in one transaction:
	// deletes the row if present, inserts one otherwise. Returns the new
	// state (true when the day ended up completed)
	Toggle(ctx context.Context, habitID uuid.UUID, date time.Time) (bool, error)
	// Inspects if a completion exists for the date
	Exists(ctx context.Context, habitID uuid.UUID, date time.Time) (bool, error)
	// Provides every completion date recorded for habitID, oldest first
	DatesByHabitID(ctx context.Context, habitID uuid.UUID) ([]time.Time, error)
	// Returns lifetime count of completions for habitID
	CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
