package repository

import (
	"github.com/LarsJung/StillMind/app/models"
	"gorm.io/gorm"
)

// journalRepository implements the JournalRepository interface
type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository instance
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

// Create creates a new journal entry
func (r *journalRepository) Create(journal *models.Journal) error {
	return r.db.Create(journal).Error
}

// GetByID retrieves a journal entry by ID without ownership filtering
func (r *journalRepository) GetByID(id uint) (*models.Journal, error) {
	var journal models.Journal
	err := r.db.First(&journal, id).Error
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

// ListByUser returns all journal entries of a user, newest first
func (r *journalRepository) ListByUser(userID uint) ([]models.Journal, error) {
	var journals []models.Journal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&journals).Error
	return journals, err
}

// Update saves the full journal row. user_id and id are never touched here;
// callers merge partial input into a loaded row first.
func (r *journalRepository) Update(journal *models.Journal) error {
	return r.db.Model(journal).
		Select("title", "content", "mood").
		Updates(map[string]interface{}{
			"title":   journal.Title,
			"content": journal.Content,
			"mood":    journal.Mood,
		}).Error
}

// Delete removes a journal entry. Returns true if a row was removed,
// false when none existed. Idempotent.
func (r *journalRepository) Delete(id uint) (bool, error) {
	tx := r.db.Delete(&models.Journal{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CountByUser returns the number of journal entries of a user
func (r *journalRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Journal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
