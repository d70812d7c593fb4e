package repository

import (
	"github.com/LarsJung/StillMind/app/models"
	"gorm.io/gorm"
)

// mindfulnessRepository implements the MindfulnessRepository interface
type mindfulnessRepository struct {
	db *gorm.DB
}

// NewMindfulnessRepository creates a new mindfulness catalog repository instance
func NewMindfulnessRepository(db *gorm.DB) MindfulnessRepository {
	return &mindfulnessRepository{db: db}
}

// GetByID retrieves a catalog session by ID
func (r *mindfulnessRepository) GetByID(id uint) (*models.MindfulnessSession, error) {
	var session models.MindfulnessSession
	err := r.db.First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns the full catalog
func (r *mindfulnessRepository) List() ([]models.MindfulnessSession, error) {
	var sessions []models.MindfulnessSession
	err := r.db.Order("id ASC").Find(&sessions).Error
	return sessions, err
}

// Count returns the catalog size
func (r *mindfulnessRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MindfulnessSession{}).Count(&count).Error
	return count, err
}

// Seed inserts the startup catalog when the table is empty
func (r *mindfulnessRepository) Seed(sessions []models.MindfulnessSession) error {
	count, err := r.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&sessions).Error
}
