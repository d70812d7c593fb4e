package repository

import (
	"time"

	"github.com/LarsJung/StillMind/app/models"
	"gorm.io/gorm"
)

// moodRepository implements the MoodRepository interface
type moodRepository struct {
	db *gorm.DB
}

// NewMoodRepository creates a new mood repository instance
func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

// Create creates a new mood entry
func (r *moodRepository) Create(mood *models.Mood) error {
	return r.db.Create(mood).Error
}

// ListByUser returns all mood entries of a user, newest first
func (r *moodRepository) ListByUser(userID uint) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&moods).Error
	return moods, err
}

// ListByUserInRange returns mood entries within [start, end], oldest first.
// Range queries feed chronological charting, hence the inverted sort order
// compared to ListByUser.
func (r *moodRepository) ListByUserInRange(userID uint, start, end time.Time) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at ASC").Find(&moods).Error
	return moods, err
}

// CountByUser returns the number of mood entries of a user
func (r *moodRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Mood{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
