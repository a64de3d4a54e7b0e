package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/habitrail/habit-tracker-api/internal/models"
	"github.com/habitrail/habit-tracker-api/internal/repository"
	"github.com/habitrail/habit-tracker-api/internal/timeutil"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("start date is after end date")
)

// ActivityService reconciles the sparse completion event log against each
// habit's lifecycle window to answer per-day questions: what existed, what
// was completed.
type ActivityService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.ActivityLogRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(habitRepo repository.HabitRepository, logRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
	}
}

// HabitDayStatus is one habit's completion state on a given day.
type HabitDayStatus struct {
	Habit       models.Habit
	IsCompleted bool
}

// ListForDay returns the user's active habits with their completion state on
// the given day, ordered by priority. Equal priorities only occur after an
// unvalidated bulk reorder has broken the dense sequence; in that degraded
// case incomplete habits sort before completed ones so the order stays
// deterministic.
func (s *ActivityService) ListForDay(userID uint64, dayStr string) ([]HabitDayStatus, error) {
	day, err := timeutil.ParseDay(dayStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	habits, err := s.habitRepo.ListActive(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	logs, err := s.logRepo.ListForDay(userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	completed := make(map[uint64]bool, len(logs))
	for _, log := range logs {
		completed[log.HabitID] = true
	}

	statuses := make([]HabitDayStatus, len(habits))
	for i, habit := range habits {
		statuses[i] = HabitDayStatus{
			Habit:       habit,
			IsCompleted: completed[habit.ID],
		}
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Habit.Priority != statuses[j].Habit.Priority {
			return statuses[i].Habit.Priority < statuses[j].Habit.Priority
		}
		return !statuses[i].IsCompleted && statuses[j].IsCompleted
	})

	return statuses, nil
}

// Toggle sets the completion state of one habit for one day. It is
// idempotent: marking an already-completed day done, or an unmarked day not
// done, changes nothing. The habit only has to exist and belong to the user;
// completion events are recorded as historical facts even for habits that
// have since been soft-deleted.
func (s *ActivityService) Toggle(userID, habitID uint64, dayStr string, isDone bool) (*models.Habit, error) {
	habit, err := s.habitRepo.FindByID(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	day, err := timeutil.ParseDay(dayStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := s.logRepo.Find(userID, habitID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up completion: %w", err)
	}

	switch {
	case isDone && existing == nil:
		log := &models.ActivityLog{
			UserID:  userID,
			HabitID: habitID,
			Date:    day,
		}
		if err := s.logRepo.Create(log); err != nil {
			return nil, fmt.Errorf("failed to record completion: %w", err)
		}
	case !isDone && existing != nil:
		if err := s.logRepo.Delete(existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove completion: %w", err)
		}
	}

	return habit, nil
}

// DaySummary is the per-day view of one summary range.
type DaySummary struct {
	Date            time.Time
	CompletedHabits []uint64
	TotalHabits     []uint64
}

// Summary reconstructs, for every day in [start, end], which habits existed
// and which were completed. A habit counts toward a day's total when it was
// created on or before that day and not yet soft-deleted as of that day
// (half-open lifecycle window). Completions are reported as recorded, without
// filtering against the total set: an event logged on a day the habit still
// existed stays visible even after the habit is deleted.
func (s *ActivityService) Summary(userID uint64, startStr, endStr string) ([]DaySummary, error) {
	start, err := timeutil.ParseDay(startStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := timeutil.ParseDay(endStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	logs, err := s.logRepo.ListRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	completedByDay := make(map[string][]uint64)
	for _, log := range logs {
		key := timeutil.FormatDay(log.Date)
		completedByDay[key] = append(completedByDay[key], log.HabitID)
	}

	habits, err := s.habitRepo.ListForWindow(userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	days := timeutil.Days(start, end)
	summaries := make([]DaySummary, 0, len(days))
	for _, day := range days {
		total := make([]uint64, 0, len(habits))
		for _, habit := range habits {
			created := timeutil.Truncate(habit.CreatedAt)
			if created.After(day) {
				continue
			}
			if habit.DeletedAt != nil && !timeutil.Truncate(*habit.DeletedAt).After(day) {
				continue
			}
			total = append(total, habit.ID)
		}

		completed := completedByDay[timeutil.FormatDay(day)]
		if completed == nil {
			completed = make([]uint64, 0)
		}

		summaries = append(summaries, DaySummary{
			Date:            day,
			CompletedHabits: completed,
			TotalHabits:     total,
		})
	}

	return summaries, nil
}
