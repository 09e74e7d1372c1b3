package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/pkg/cleanup"
)

type CompletionsRepository struct {
	conn PgConnection
}

func NewCompletionsRepo(cfg DBConfig) *CompletionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for completionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for completionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CompletionsRepository{
		conn: pool,
	}
}

func NewCompletionsRepoWithConn(conn PgConnection) *CompletionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for completionsRepo: " + err.Error())
	}
	return &CompletionsRepository{
		conn: conn,
	}
}

// Toggle deletes the completion for (habitID, date) if one exists,
// otherwise inserts it. Both arms run inside one transaction and the
// table carries UNIQUE (habit_id, completion_date), so overlapping
// toggles cannot leave a doubled row: the loser either flips the state
// back or fails the unique check and rolls back.
func (cr *CompletionsRepository) Toggle(ctx context.Context, habitID uuid.UUID, date time.Time) (bool, error) {
	tx, err := cr.conn.Begin(ctx)
	if err != nil {
		return false, errors.New("beginning toggle tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	ct, err := tx.Exec(ctx, `DELETE FROM habit_completions WHERE habit_id = $1 AND completion_date = $2;`,
		habitID,
		date,
	)
	if err != nil {
		return false, errors.New("deleting completion error: " + err.Error())
	}
	completed := false
	if ct.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `INSERT INTO habit_completions (habit_id, completion_date) VALUES ($1, $2);`,
			habitID,
			date,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				// Unique violation
				case "23505":
					return false, errorvalues.ErrCompletionExists
				// FK violation
				case "23503":
					return false, errorvalues.ErrHabitNotFound
				}
			}
			return false, errors.New("creating completion error: " + err.Error())
		}
		completed = true
	}
	if err = tx.Commit(ctx); err != nil {
		return false, errors.New("committing toggle error: " + err.Error())
	}
	return completed, nil
}

func (cr *CompletionsRepository) Exists(ctx context.Context, habitID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	row := cr.conn.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM habit_completions WHERE habit_id = $1 AND completion_date = $2);`,
		habitID,
		date,
	)
	err := row.Scan(&exists)
	if err != nil {
		return false, errors.New("inspecting if completion exists error: " + err.Error())
	}
	return exists, nil
}

func (cr *CompletionsRepository) DatesByHabitID(ctx context.Context, habitID uuid.UUID) ([]time.Time, error) {
	rows, err := cr.conn.Query(
		ctx,
		`SELECT completion_date FROM habit_completions WHERE habit_id = $1 ORDER BY completion_date;`,
		habitID,
	)
	if err != nil {
		return nil, errors.New("getting completion dates error: " + err.Error())
	}
	defer rows.Close()
	result := make([]time.Time, 0, 8)
	for rows.Next() {
		var date time.Time
		err = rows.Scan(&date)
		if err != nil {
			return nil, errors.New("completion row parsing error: " + err.Error())
		}
		result = append(result, date)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected completion rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (cr *CompletionsRepository) CountByHabitID(ctx context.Context, habitID uuid.UUID) (int, error) {
	row := cr.conn.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM habit_completions WHERE habit_id = $1;`,
		habitID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting completions: " + err.Error())
	}
	return count, nil
}
