package models

import (
	"time"
)

// ActivityLog records that a habit was completed on one calendar day.
// Date is always UTC midnight; the unique index makes the per-day toggle
// idempotent at the store level as well.
type ActivityLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_activity_user_habit_date,unique" json:"user_id"`
	HabitID   uint64    `gorm:"not null;index:idx_activity_user_habit_date,unique" json:"habit_id"`
	Date      time.Time `gorm:"not null;index:idx_activity_user_habit_date,unique" json:"date"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Habit Habit `gorm:"foreignKey:HabitID" json:"-"`
}
