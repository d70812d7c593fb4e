package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Journal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Content   string         `gorm:"type:text;not null" json:"content" validate:"required"`
	Mood      int            `gorm:"not null" json:"mood" validate:"required,min=1,max=5"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (j *Journal) Validate() error {
	v := validator.New()

	return v.Struct(j)
}

// OwnerID returns the owning user id for authorization checks.
func (j *Journal) OwnerID() uint {
	return j.UserID
}
