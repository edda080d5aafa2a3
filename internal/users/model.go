package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDuplicateUser = errors.New("username already exists")
	ErrNotFound      = errors.New("user not found")
	// ErrInvalidCredentials is returned for both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const rolePrefix = "ROLE_"

// User is a stored credential record. Username is unique and case-sensitive.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex:idx_users_username;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(64);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

type Repository interface {
	// Create fails with ErrDuplicateUser if the username is taken.
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
