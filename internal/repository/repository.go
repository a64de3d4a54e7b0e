package repository

import (
	"time"

	"github.com/habitrail/habit-tracker-api/internal/models"
)

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	// Create creates a new habit
	Create(habit *models.Habit) error

	// FindByID finds a habit owned by the user, regardless of active state
	FindByID(userID, habitID uint64) (*models.Habit, error)

	// FindActiveByID finds an active habit owned by the user
	FindActiveByID(userID, habitID uint64) (*models.Habit, error)

	// FindByName finds a habit by name for the user, regardless of active state
	FindByName(userID uint64, name string) (*models.Habit, error)

	// ListActive lists the user's active habits ordered by priority
	ListActive(userID uint64) ([]models.Habit, error)

	// ListForWindow lists habits that are active or were soft-deleted on or
	// after windowStart
	ListForWindow(userID uint64, windowStart time.Time) ([]models.Habit, error)

	// CountActive counts the user's active habits
	CountActive(userID uint64) (int64, error)

	// Save persists all fields of the habit
	Save(habit *models.Habit) error

	// DeactivateAndCompact soft-deletes the habit and closes the gap it leaves
	// in the user's priority sequence, atomically
	DeactivateAndCompact(habit *models.Habit, deletedAt time.Time) error

	// UpdateFields applies the given column updates to one habit of the user,
	// returning the number of rows matched
	UpdateFields(userID, habitID uint64, fields map[string]interface{}) (int64, error)
}

// ActivityLogRepository defines the interface for completion event data access
type ActivityLogRepository interface {
	// Find finds the completion event for one habit on one day
	Find(userID, habitID uint64, day time.Time) (*models.ActivityLog, error)

	// ListRange lists the user's completion events with day in [start, end]
	ListRange(userID uint64, start, end time.Time) ([]models.ActivityLog, error)

	// ListForDay lists the user's completion events for a single day
	ListForDay(userID uint64, day time.Time) ([]models.ActivityLog, error)

	// Create creates a completion event
	Create(log *models.ActivityLog) error

	// Delete removes a completion event
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernameOrEmail finds a user matching either field
	FindByUsernameOrEmail(username, email string) (*models.User, error)

	// Save persists all fields of the user
	Save(user *models.User) error
}

// VerificationTokenRepository defines the interface for email verification tokens
type VerificationTokenRepository interface {
	// Create creates a verification token
	Create(token *models.VerificationToken) error

	// FindByToken finds a verification token by its opaque value
	FindByToken(token string) (*models.VerificationToken, error)

	// Delete removes a verification token
	Delete(id uint64) error
}
