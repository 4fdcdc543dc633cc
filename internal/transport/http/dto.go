package handlers

import (
	"time"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type chapterResponse struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"courseId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	VideoURL    *string   `json:"videoUrl"`
	Position    int       `json:"position"`
	IsPublished bool      `json:"isPublished"`
	IsFree      bool      `json:"isFree"`
}

func newChapterResponse(ch *domain.Chapter) chapterResponse {
	return chapterResponse{
		ID:          ch.ID,
		CourseID:    ch.CourseID,
		Title:       ch.Title,
		Description: ch.Description,
		VideoURL:    ch.VideoURL,
		Position:    ch.Position,
		IsPublished: ch.IsPublished,
		IsFree:      ch.IsFree,
	}
}

type courseResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	ImageURL    *string           `json:"imageUrl"`
	Price       *float64          `json:"price"`
	PriceLabel  string            `json:"priceLabel"`
	IsPublished bool              `json:"isPublished"`
	Grade       *string           `json:"grade"`
	Divisions   []string          `json:"divisions"`
	Curriculum  *string           `json:"curriculum"`
	Chapters    []chapterResponse `json:"chapters"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func newCourseResponse(c *domain.Course, currency string) courseResponse {
	resp := courseResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Price:       priceValue(c.Price),
		PriceLabel:  usecase.PriceLabel(c.Price, currency),
		IsPublished: c.IsPublished,
		Grade:       c.Grade,
		Divisions:   c.DivisionNames(),
		Curriculum:  c.Curriculum,
		Chapters:    make([]chapterResponse, 0, len(c.Chapters)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.Chapters {
		resp.Chapters = append(resp.Chapters, newChapterResponse(&c.Chapters[i]))
	}
	return resp
}

func priceValue(p decimal.NullDecimal) *float64 {
	if !p.Valid {
		return nil
	}
	f := p.Decimal.InexactFloat64()
	return &f
}

type ownerResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Image    *string   `json:"image"`
}

type catalogEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	ImageURL   *string        `json:"imageUrl"`
	Price      *float64       `json:"price"`
	PriceLabel string         `json:"priceLabel"`
	Grade      *string        `json:"grade"`
	Divisions  []string       `json:"divisions"`
	Curriculum *string        `json:"curriculum"`
	Owner      *ownerResponse `json:"owner"`
	ChapterIDs []uuid.UUID    `json:"chapterIds"`
	Purchased  bool           `json:"purchased"`
	Progress   float64        `json:"progress"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func newCatalogEntryResponse(e domain.CatalogEntry, currency string) catalogEntryResponse {
	c := e.Course
	resp := catalogEntryResponse{
		ID:         c.ID,
		Title:      c.Title,
		ImageURL:   c.ImageURL,
		Price:      priceValue(c.Price),
		PriceLabel: usecase.PriceLabel(c.Price, currency),
		Grade:      c.Grade,
		Divisions:  c.DivisionNames(),
		Curriculum: c.Curriculum,
		ChapterIDs: c.ChapterIDs(),
		Purchased:  e.Purchased,
		Progress:   e.Progress,
		CreatedAt:  c.CreatedAt,
	}
	if c.Owner != nil {
		resp.Owner = &ownerResponse{ID: c.Owner.ID, FullName: c.Owner.FullName, Image: c.Owner.Image}
	}
	return resp
}

type userResponse struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	FullName   string      `json:"fullName"`
	Image      *string     `json:"image"`
	Role       domain.Role `json:"role"`
	Grade      *string     `json:"grade"`
	Division   *string     `json:"division"`
	Curriculum *string     `json:"curriculum"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Image:      u.Image,
		Role:       u.Role,
		Grade:      u.Grade,
		Division:   u.Division,
		Curriculum: u.Curriculum,
		CreatedAt:  u.CreatedAt,
	}
}
