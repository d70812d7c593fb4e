package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Name                  string     `gorm:"uniqueIndex;type:varchar(150) CHARACTER SET utf8 COLLATE utf8_general_ci" json:"name" validate:"required,min=3,max=150"`
	Email                 string     `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password              string     `gorm:"type:text" json:"-" validate:"required,min=6"`
	IsPremium             bool       `gorm:"default:false" json:"is_premium"`
	BillingCustomerID     string     `gorm:"type:varchar(191);default:null" json:"-"`
	BillingSubscriptionID string     `gorm:"type:varchar(191);default:null;index" json:"-"`
	LastLoginAt           *time.Time `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func CreateUser(username string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     username,
		Email:    email,
		Password: pw,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// HasLinkedSubscription reports whether an external billing subscription is attached.
func (u *User) HasLinkedSubscription() bool {
	return u.BillingSubscriptionID != ""
}
