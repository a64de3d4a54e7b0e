package repository

import (
	"time"

	"github.com/habitrail/habit-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// Create creates a new habit
func (r *GormHabitRepository) Create(habit *models.Habit) error {
	return r.db.Create(habit).Error
}

// FindByID finds a habit owned by the user, regardless of active state
func (r *GormHabitRepository) FindByID(userID, habitID uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// FindActiveByID finds an active habit owned by the user
func (r *GormHabitRepository) FindActiveByID(userID, habitID uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.Where("id = ? AND user_id = ? AND active = ?", habitID, userID, true).
		First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// FindByName finds a habit by name for the user, regardless of active state
func (r *GormHabitRepository) FindByName(userID uint64, name string) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.Where("user_id = ? AND name = ?", userID, name).
		First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListActive lists the user's active habits ordered by priority
func (r *GormHabitRepository) ListActive(userID uint64) ([]models.Habit, error) {
	var habits []models.Habit
	if err := r.db.Where("user_id = ? AND active = ?", userID, true).
		Order("priority ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// ListForWindow lists habits that are active or were soft-deleted on or after
// windowStart. Habits deleted before the window cannot have been active inside
// it, so they are excluded up front.
func (r *GormHabitRepository) ListForWindow(userID uint64, windowStart time.Time) ([]models.Habit, error) {
	var habits []models.Habit
	if err := r.db.Where("user_id = ?", userID).
		Where("active = ? OR deleted_at >= ?", true, windowStart).
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// CountActive counts the user's active habits
func (r *GormHabitRepository) CountActive(userID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Habit{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists all fields of the habit
func (r *GormHabitRepository) Save(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

// DeactivateAndCompact soft-deletes the habit and decrements the priority of
// every other active habit of the same user that ranked below it. Runs in a
// transaction; readers see either the pre-state or the compacted post-state.
func (r *GormHabitRepository) DeactivateAndCompact(habit *models.Habit, deletedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		removedPriority := habit.Priority

		habit.Active = false
		habit.DeletedAt = &deletedAt
		if err := tx.Save(habit).Error; err != nil {
			return err
		}

		return tx.Model(&models.Habit{}).
			Where("user_id = ? AND active = ? AND priority > ?", habit.UserID, true, removedPriority).
			UpdateColumn("priority", gorm.Expr("priority - 1")).Error
	})
}

// UpdateFields applies the given column updates to one habit of the user,
// returning the number of rows matched
func (r *GormHabitRepository) UpdateFields(userID, habitID uint64, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
