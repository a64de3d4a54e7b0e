package models

import (
	"time"
)

// Habit is a user-owned habit with a position in the user's ordering.
//
// Active habits of one user carry priorities 1..N with no gaps; create and
// delete maintain that, bulk reorder does not (see services.HabitService).
// DeletedAt is a plain column rather than gorm.DeletedAt: soft-deleted rows
// must remain visible to name-reactivation lookups and to summaries covering
// days before the deletion.
type Habit struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	UserID    uint64     `gorm:"not null;index:idx_habits_user_name" json:"user_id"`
	Name      string     `gorm:"type:varchar(255);not null;index:idx_habits_user_name" json:"name"`
	Priority  int        `gorm:"not null" json:"priority"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
