// Package stats computes the display numbers for a habit: the 7-day
// strip, goal progress, lifetime completed/missed split and the
// 365-day heatmap. Everything here is a pure function of the habit
// row, its completion dates and a reference day.
package stats

import (
	"fmt"
	"math"
	"time"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

const heatmapWindowDays = 365

type DayStatus struct {
	Date      time.Time
	Completed bool
}

type HeatmapCell struct {
	Date      time.Time
	Completed bool
	// CSS class: completed, missed or pending
	Class string
	Title string
}

type Summary struct {
	SevenDays        []DayStatus
	CompletedCount   int
	GoalStatus       string
	ProgressPercent  int
	DaysSinceStart   int
	CompletedPercent float64
	MissedPercent    float64
	Heatmap          []HeatmapCell
}

// Day strips the time component, leaving midnight UTC. Every date that
// enters the engine goes through this so map lookups compare equal.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SevenDays returns the 7 calendar dates ending at today, oldest first.
// Shared by the dashboard header and per-habit strips.
func SevenDays(today time.Time) []time.Time {
	today = Day(today)
	days := make([]time.Time, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// Compute builds the full summary for one habit. completedCount is the
// lifetime completion total, completionDates the distinct dates.
func Compute(habit *entity.Habit, completionDates []time.Time, completedCount int, today time.Time) (*Summary, error) {
	if habit.GoalDuration <= 0 {
		return nil, errorvalues.ErrInvalidConfiguration
	}
	today = Day(today)
	start := Day(habit.StartDate)
	completed := make(map[time.Time]struct{}, len(completionDates))
	for _, d := range completionDates {
		completed[Day(d)] = struct{}{}
	}

	sum := Summary{
		CompletedCount: completedCount,
		GoalStatus:     fmt.Sprintf("%d / %d Days", completedCount, habit.GoalDuration),
	}

	percent := completedCount * 100 / habit.GoalDuration
	if percent > 100 {
		percent = 100
	}
	sum.ProgressPercent = percent

	for _, day := range SevenDays(today) {
		_, ok := completed[day]
		sum.SevenDays = append(sum.SevenDays, DayStatus{Date: day, Completed: ok})
	}

	// Inclusive day count: start day itself counts as day 1
	daysSinceStart := int(today.Sub(start).Hours()/24) + 1
	sum.DaysSinceStart = daysSinceStart
	if daysSinceStart > 0 {
		missedDays := daysSinceStart - completedCount
		if missedDays < 0 {
			missedDays = 0
		}
		sum.CompletedPercent = round1(float64(completedCount) / float64(daysSinceStart) * 100)
		sum.MissedPercent = round1(float64(missedDays) / float64(daysSinceStart) * 100)
	}

	sum.Heatmap = heatmap(start, today, completed)
	return &sum, nil
}

// heatmap walks [max(start, today-364), today] and classifies each day.
// A past day without a completion is missed, today without one is still
// pending; the distinction is what freezes history on the board.
func heatmap(start, today time.Time, completed map[time.Time]struct{}) []HeatmapCell {
	windowStart := today.AddDate(0, 0, -(heatmapWindowDays - 1))
	if windowStart.Before(start) {
		windowStart = start
	}
	if windowStart.After(today) {
		return []HeatmapCell{}
	}
	cells := make([]HeatmapCell, 0, heatmapWindowDays)
	for day := windowStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		cell := HeatmapCell{Date: day}
		if _, ok := completed[day]; ok {
			cell.Completed = true
			cell.Class = "completed"
			cell.Title = "Completed"
		} else if day.Before(today) {
			cell.Class = "missed"
			cell.Title = "Missed"
		} else {
			cell.Class = "pending"
			cell.Title = "Pending"
		}
		cells = append(cells, cell)
	}
	return cells
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
