package user

import (
	"errors"
	"time"
)

// User is a broker account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Email        string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"size:72" json:"-"`
	Name         string    `gorm:"size:255" json:"name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)
