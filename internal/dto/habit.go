package dto

import (
	"github.com/habitrail/habit-tracker-api/internal/services"
	"github.com/habitrail/habit-tracker-api/internal/timeutil"
)

// HabitStatusDTO represents one habit with its completion state for a day
type HabitStatusDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

// HabitListResponse wraps the day view of a user's habits
type HabitListResponse struct {
	Habits []HabitStatusDTO `json:"habits"`
}

// DaySummaryDTO represents one day in a summary range
type DaySummaryDTO struct {
	Date            string   `json:"date"`
	CompletedHabits []uint64 `json:"completed_habits"`
	TotalHabits     []uint64 `json:"total_habits"`
}

// SummaryResponse wraps a date-range summary
type SummaryResponse struct {
	Summary []DaySummaryDTO `json:"summary"`
}

// ToHabitListResponse converts day statuses to the list response shape
func ToHabitListResponse(statuses []services.HabitDayStatus) HabitListResponse {
	habits := make([]HabitStatusDTO, len(statuses))
	for i, status := range statuses {
		habits[i] = HabitStatusDTO{
			ID:          status.Habit.ID,
			Name:        status.Habit.Name,
			Priority:    status.Habit.Priority,
			IsCompleted: status.IsCompleted,
		}
	}
	return HabitListResponse{Habits: habits}
}

// ToSummaryResponse converts day summaries to the response shape
func ToSummaryResponse(summaries []services.DaySummary) SummaryResponse {
	days := make([]DaySummaryDTO, len(summaries))
	for i, summary := range summaries {
		days[i] = DaySummaryDTO{
			Date:            timeutil.FormatDay(summary.Date),
			CompletedHabits: summary.CompletedHabits,
			TotalHabits:     summary.TotalHabits,
		}
	}
	return SummaryResponse{Summary: days}
}
