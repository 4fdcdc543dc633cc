package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrTokenRevoked       = errors.New("token revoked")
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleUser    Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:100"`
	FullName     string    `gorm:"size:120"`
	Image        *string
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"size:16;not null;default:'USER';index"`

	// Student classification used by the catalog filter.
	Grade      *string `gorm:"size:64"`
	Division   *string `gorm:"size:64"`
	Curriculum *string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Identity is the authenticated caller as carried by an access token.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAuthor reports whether the caller may create courses.
func (i Identity) CanAuthor() bool {
	return i.Role == RoleAdmin || i.Role == RoleTeacher
}
