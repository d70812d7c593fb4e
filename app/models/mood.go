package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Mood is an append-only daily mood rating. There is no update or delete
// path; corrections are new entries.
type Mood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Rating    int       `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Note      *string   `gorm:"type:text;default:null" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (m *Mood) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// OwnerID returns the owning user id for authorization checks.
func (m *Mood) OwnerID() uint {
	return m.UserID
}
