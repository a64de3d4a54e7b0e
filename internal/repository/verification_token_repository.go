package repository

import (
	"github.com/habitrail/habit-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormVerificationTokenRepository is a GORM implementation of VerificationTokenRepository
type GormVerificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &GormVerificationTokenRepository{db: db}
}

// Create creates a verification token
func (r *GormVerificationTokenRepository) Create(token *models.VerificationToken) error {
	return r.db.Create(token).Error
}

// FindByToken finds a verification token by its opaque value
func (r *GormVerificationTokenRepository) FindByToken(token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	if err := r.db.Where("token = ?", token).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

// Delete removes a verification token
func (r *GormVerificationTokenRepository) Delete(id uint64) error {
	return r.db.Delete(&models.VerificationToken{}, id).Error
}
