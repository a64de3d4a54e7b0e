package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habitrail/habit-tracker-api/internal/models"
	"github.com/habitrail/habit-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitAlreadyExists = errors.New("habit already exists for this user")
	ErrHabitNameRequired  = errors.New("habit name is required")
	ErrNoEntriesProvided  = errors.New("at least one reorder entry is required")
)

// HabitService owns the per-user habit ordering. Active habits of one user
// always carry priorities 1..N: Create appends at N+1 and Delete closes the
// gap left by the removed habit. BulkReorder is the documented exception.
type HabitService struct {
	habitRepo repository.HabitRepository
}

// NewHabitService creates a new HabitService
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
	}
}

// CreateHabitResult reports the created or reactivated habit.
type CreateHabitResult struct {
	Habit       *models.Habit
	Reactivated bool
}

// Create registers a habit name for the user. A brand-new name gets the next
// free priority slot; a previously soft-deleted name is reactivated and
// appended at the end of the ordering rather than restored to its old slot.
// An active habit with the same name is a conflict.
func (s *HabitService) Create(userID uint64, name string) (*CreateHabitResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	existing, err := s.habitRepo.FindByName(userID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up habit: %w", err)
	}

	activeCount, err := s.habitRepo.CountActive(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active habits: %w", err)
	}

	if existing != nil {
		if existing.Active {
			return nil, ErrHabitAlreadyExists
		}

		existing.Active = true
		existing.Priority = int(activeCount) + 1
		existing.DeletedAt = nil
		if err := s.habitRepo.Save(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate habit: %w", err)
		}
		return &CreateHabitResult{Habit: existing, Reactivated: true}, nil
	}

	habit := &models.Habit{
		UserID:   userID,
		Name:     name,
		Priority: int(activeCount) + 1,
		Active:   true,
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return &CreateHabitResult{Habit: habit}, nil
}

// Delete soft-deletes a habit and compacts the priorities of the user's
// remaining active habits so the sequence stays gap-free. The inactive record
// keeps the priority it held when removed. Deleting an already-removed habit
// reports not found rather than compacting twice.
func (s *HabitService) Delete(userID, habitID uint64) (*models.Habit, error) {
	habit, err := s.habitRepo.FindActiveByID(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	if err := s.habitRepo.DeactivateAndCompact(habit, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to delete habit: %w", err)
	}

	return habit, nil
}

// Rename changes a habit's display name without touching its ordering.
func (s *HabitService) Rename(userID, habitID uint64, name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	habit, err := s.habitRepo.FindByID(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	habit.Name = name
	if err := s.habitRepo.Save(habit); err != nil {
		return nil, fmt.Errorf("failed to rename habit: %w", err)
	}

	return habit, nil
}

// ReorderEntry is one bulk update: a habit id plus the fields to change.
type ReorderEntry struct {
	HabitID  uint64  `json:"id"`
	Priority *int    `json:"priority,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// ReorderFailure reports one entry that could not be applied.
type ReorderFailure struct {
	HabitID uint64 `json:"habit_id"`
	Reason  string `json:"reason"`
}

// BulkReorderResult aggregates the outcome of a bulk reorder.
type BulkReorderResult struct {
	Matched  int64            `json:"matched"`
	Modified int64            `json:"modified"`
	Failures []ReorderFailure `json:"failures,omitempty"`
}

// BulkReorder applies the given priority and name updates exactly as
// submitted, each entry independently. It does not renumber anything else and
// does not check that the result is still a dense 1..N sequence; callers are
// expected to submit a full permutation of the active set. Entries that fail
// are reported individually, the rest still apply.
func (s *HabitService) BulkReorder(userID uint64, entries []ReorderEntry) (*BulkReorderResult, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntriesProvided
	}

	result := &BulkReorderResult{}
	for _, entry := range entries {
		fields := map[string]interface{}{}
		if entry.Priority != nil {
			if *entry.Priority < 1 {
				result.Failures = append(result.Failures, ReorderFailure{
					HabitID: entry.HabitID,
					Reason:  "priority must be at least 1",
				})
				continue
			}
			fields["priority"] = *entry.Priority
		}
		if entry.Name != nil {
			name := strings.TrimSpace(*entry.Name)
			if name == "" {
				result.Failures = append(result.Failures, ReorderFailure{
					HabitID: entry.HabitID,
					Reason:  "name cannot be empty",
				})
				continue
			}
			fields["name"] = name
		}
		if len(fields) == 0 {
			result.Failures = append(result.Failures, ReorderFailure{
				HabitID: entry.HabitID,
				Reason:  "no fields to update",
			})
			continue
		}

		matched, err := s.habitRepo.UpdateFields(userID, entry.HabitID, fields)
		if err != nil {
			result.Failures = append(result.Failures, ReorderFailure{
				HabitID: entry.HabitID,
				Reason:  fmt.Sprintf("update failed: %v", err),
			})
			continue
		}
		if matched == 0 {
			result.Failures = append(result.Failures, ReorderFailure{
				HabitID: entry.HabitID,
				Reason:  "habit not found",
			})
			continue
		}

		result.Matched += matched
		result.Modified += matched
	}

	return result, nil
}
