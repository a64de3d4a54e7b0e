package repository

import (
	"time"

	"github.com/habitrail/habit-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Find finds the completion event for one habit on one day
func (r *GormActivityLogRepository) Find(userID, habitID uint64, day time.Time) (*models.ActivityLog, error) {
	var log models.ActivityLog
	if err := r.db.Where("user_id = ? AND habit_id = ? AND date = ?", userID, habitID, day).
		First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ListRange lists the user's completion events with day in [start, end]
func (r *GormActivityLogRepository) ListRange(userID uint64, start, end time.Time) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListForDay lists the user's completion events for a single day
func (r *GormActivityLogRepository) ListForDay(userID uint64, day time.Time) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.Where("user_id = ? AND date = ?", userID, day).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Create creates a completion event
func (r *GormActivityLogRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

// Delete removes a completion event
func (r *GormActivityLogRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ActivityLog{}, id).Error
}
