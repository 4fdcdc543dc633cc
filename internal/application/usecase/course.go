package usecase

import (
	"context"
	"strings"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/platform/logger"
	"lmsplatform/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CourseUseCase struct {
	courses *repository.CourseRepository
	cache   CatalogCache
	log     *logger.Logger
}

func NewCourseUseCase(cr *repository.CourseRepository, cache CatalogCache, log *logger.Logger) *CourseUseCase {
	return &CourseUseCase{
		courses: cr,
		cache:   orNoCache(cache),
		log:     log.With("usecase", "Course"),
	}
}

type NewCourse struct {
	Title string
}

func (uc *CourseUseCase) Create(ctx context.Context, caller domain.Identity, in NewCourse) (*domain.Course, error) {
	if !caller.CanAuthor() {
		return nil, domain.ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	course := &domain.Course{
		ID:     uuid.New(),
		UserID: caller.UserID,
		Title:  title,
	}
	if err := uc.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) Get(ctx context.Context, caller domain.Identity, courseID uuid.UUID) (*domain.Course, error) {
	return uc.courses.GetForCaller(ctx, courseID, caller)
}

// CourseUpdate is a partial update. Nil fields are left untouched; an empty
// string for Grade or Curriculum clears the column.
type CourseUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	Price       PriceForm
	Grade       *string
	Curriculum  *string
	Divisions   *[]string
}

func (uc *CourseUseCase) Update(ctx context.Context, caller domain.Identity, courseID uuid.UUID, in CourseUpdate) (*domain.Course, error) {
	if _, err := uc.courses.GetForCaller(ctx, courseID, caller); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}

	price, hasPrice, err := in.Price.Resolve()
	if err != nil {
		return nil, err
	}
	if hasPrice {
		updates["price"] = decimal.NewNullDecimal(price)
	}

	if in.Grade != nil {
		updates["grade"] = nullable(*in.Grade)
	}
	if in.Curriculum != nil {
		updates["curriculum"] = nullable(*in.Curriculum)
	}

	var divisions []string
	if in.Divisions != nil {
		divisions = append([]string{}, (*in.Divisions)...)
	}

	if err := uc.courses.Update(ctx, courseID, updates, divisions); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return uc.courses.GetByID(ctx, courseID)
}

func (uc *CourseUseCase) Delete(ctx context.Context, caller domain.Identity, courseID uuid.UUID) error {
	if _, err := uc.courses.GetForCaller(ctx, courseID, caller); err != nil {
		return err
	}
	if err := uc.courses.Delete(ctx, courseID); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// TogglePublish flips the course's published state. Publishing requires
// every descriptive field, a price (zero allowed) and a published chapter;
// unpublishing is unconditional.
func (uc *CourseUseCase) TogglePublish(ctx context.Context, caller domain.Identity, courseID uuid.UUID) (*domain.Course, error) {
	course, err := uc.courses.GetForCaller(ctx, courseID, caller)
	if err != nil {
		return nil, err
	}

	publish := !course.IsPublished
	if publish && !course.ReadyToPublish() {
		return nil, domain.ErrMissingRequiredFields
	}

	if err := uc.courses.SetPublished(ctx, course.ID, publish); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	state := "unpublished"
	if publish {
		state = "published"
	}
	metrics.CoursePublishToggles.WithLabelValues(state).Inc()
	uc.log.Info("Course publish state changed", "course_id", course.ID.String(), "state", state)

	return uc.courses.GetByID(ctx, course.ID)
}

func (uc *CourseUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
