package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/internal/repository"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	user := entity.User{
		Username:     "test_user",
		PasswordHash: "test_hash",
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO users (username, password_hash) VALUES ($1, $2);`)
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.Username, user.PasswordHash).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &user)
		assert.NoError(t, err)
	})
	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.Username, user.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		err := repo.Create(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.Username, user.PasswordHash).
			WillReturnError(errors.New("db error"))
		err := repo.Create(ctx, &user)
		assert.Error(t, err)
	})
	t.Run("nil user", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
}

func TestFindUserByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	user := entity.User{
		ID:           uuid.New(),
		Username:     "test_user",
		PasswordHash: "test_hash",
		CreatedAt:    time.Now(),
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE username = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.Username).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
				AddRow(user.ID, user.Username, user.PasswordHash, user.CreatedAt),
			)
		result, err := repo.FindByUsername(ctx, user.Username)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.Username).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByUsername(ctx, user.Username)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestFindUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	user := entity.User{
		ID:           uuid.New(),
		Username:     "test_user",
		PasswordHash: "test_hash",
		CreatedAt:    time.Now(),
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
				AddRow(user.ID, user.Username, user.PasswordHash, user.CreatedAt),
			)
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	completionsQuery := regexp.QuoteMeta(`DELETE FROM habit_completions WHERE habit_id IN (SELECT id FROM habits WHERE user_id = $1);`)
	habitsQuery := regexp.QuoteMeta(`DELETE FROM habits WHERE user_id = $1;`)
	usersQuery := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	t.Run("deleted with habits and completions", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(completionsQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(habitsQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(usersQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()
		err := repo.Delete(ctx, uid)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(completionsQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(habitsQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(usersQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()
		err := repo.Delete(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
