package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Habit struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"uid"`
	Name         string    `json:"name"`
	GoalDuration int       `json:"goal_duration"`
	StartDate    time.Time `json:"start_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type Completion struct {
	ID      int64
	HabitID uuid.UUID
	// Calendar date, midnight UTC, no time component
	Date      time.Time
	CreatedAt time.Time
}
