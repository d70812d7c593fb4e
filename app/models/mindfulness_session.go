package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MindfulnessSession is a global catalog item. It has no owner; premium
// entries are gated by the user's entitlement, not by ownership.
type MindfulnessSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"type:varchar(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"uuid"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	AudioURL    string    `gorm:"type:varchar(512);not null" json:"audio_url"`
	ImageURL    string    `gorm:"type:varchar(512)" json:"image_url"`
	Duration    int       `gorm:"not null" json:"duration"`
	IsPremium   bool      `gorm:"default:false;index" json:"is_premium"`
	PlayCount   int64     `gorm:"default:0" json:"play_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the public UUID used in audio object keys.
func (s *MindfulnessSession) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}
