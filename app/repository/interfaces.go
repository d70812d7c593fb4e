package repository

import (
	"time"

	"github.com/LarsJung/StillMind/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations.
// Billing webhook resolution goes through the billing package's own
// repository, not through this one.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByName(name string) (*models.User, error)
	Update(user *models.User) error
}

// JournalRepository defines the interface for journal-related database operations.
// GetByID performs no ownership filtering; authorization happens in the guard
// after the existence check.
type JournalRepository interface {
	Create(journal *models.Journal) error
	GetByID(id uint) (*models.Journal, error)
	ListByUser(userID uint) ([]models.Journal, error)
	Update(journal *models.Journal) error
	Delete(id uint) (bool, error)
	CountByUser(userID uint) (int64, error)
}

// MoodRepository defines the interface for mood-related database operations.
// Moods are append-only; there is no single fetch, update or delete.
type MoodRepository interface {
	Create(mood *models.Mood) error
	ListByUser(userID uint) ([]models.Mood, error)
	ListByUserInRange(userID uint, start, end time.Time) ([]models.Mood, error)
	CountByUser(userID uint) (int64, error)
}

// MindfulnessRepository defines the interface for the global session catalog
type MindfulnessRepository interface {
	GetByID(id uint) (*models.MindfulnessSession, error)
	List() ([]models.MindfulnessSession, error)
	Count() (int64, error)
	Seed(sessions []models.MindfulnessSession) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Journal     JournalRepository
	Mood        MoodRepository
	Mindfulness MindfulnessRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Journal:     NewJournalRepository(db),
		Mood:        NewMoodRepository(db),
		Mindfulness: NewMindfulnessRepository(db),
	}
}
