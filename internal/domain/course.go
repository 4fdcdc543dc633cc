package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrChapterNotFound       = errors.New("chapter not found")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrNegativePrice         = errors.New("price must not be negative")
	ErrForbidden             = errors.New("forbidden")
	ErrCourseNotPublished    = errors.New("course is not published")
	ErrPurchaseRequired      = errors.New("purchase required")
	ErrInvalidInput          = errors.New("invalid input")
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Description *string
	ImageURL    *string
	Price       decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	IsPublished bool                `gorm:"default:false;index"`

	Grade      *string `gorm:"size:64;index"`
	Curriculum *string `gorm:"size:64;index"`

	Owner     *User            `gorm:"foreignKey:UserID"`
	Divisions []CourseDivision `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	Chapters  []Chapter        `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	Purchases []Purchase       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// CourseDivision is one element of a course's division set.
type CourseDivision struct {
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Division string    `gorm:"primaryKey;size:64"`
}

func (c *Course) DivisionNames() []string {
	names := make([]string, 0, len(c.Divisions))
	for _, d := range c.Divisions {
		names = append(names, d.Division)
	}
	return names
}

func (c *Course) HasPublishedChapter() bool {
	for _, ch := range c.Chapters {
		if ch.IsPublished {
			return true
		}
	}
	return false
}

// ReadyToPublish reports whether every field required for publishing is set.
// A zero price is valid (free course); a missing price is not.
func (c *Course) ReadyToPublish() bool {
	if strings.TrimSpace(c.Title) == "" || isBlank(c.Description) || isBlank(c.ImageURL) {
		return false
	}
	if !c.Price.Valid {
		return false
	}
	return c.HasPublishedChapter()
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

type Chapter struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Description *string
	VideoURL    *string
	Position    int  `gorm:"not null;default:0"`
	IsPublished bool `gorm:"default:false;index"`
	IsFree      bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Purchase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_purchase_user_course;not null"`
	CourseID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_purchase_user_course;index;not null"`
	CreatedAt time.Time
}

type UserProgress struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_progress_user_chapter;not null"`
	ChapterID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_progress_user_chapter;index;not null"`
	IsCompleted bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserProgress) TableName() string {
	return "user_progress"
}
