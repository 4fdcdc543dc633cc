package usecase

import (
	"context"
	"strings"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/platform/logger"

	"github.com/google/uuid"
)

type ChapterUseCase struct {
	courses  *repository.CourseRepository
	chapters *repository.ChapterRepository
	cache    CatalogCache
	log      *logger.Logger
}

func NewChapterUseCase(cr *repository.CourseRepository, chr *repository.ChapterRepository, cache CatalogCache, log *logger.Logger) *ChapterUseCase {
	return &ChapterUseCase{
		courses:  cr,
		chapters: chr,
		cache:    orNoCache(cache),
		log:      log.With("usecase", "Chapter"),
	}
}

type ChapterInput struct {
	Title       *string
	Description *string
	VideoURL    *string
	IsFree      *bool
}

func (uc *ChapterUseCase) Create(ctx context.Context, caller domain.Identity, courseID uuid.UUID, in ChapterInput) (*domain.Chapter, error) {
	if _, err := uc.courses.GetForCaller(ctx, courseID, caller); err != nil {
		return nil, err
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	ch := &domain.Chapter{
		CourseID:    courseID,
		Title:       strings.TrimSpace(*in.Title),
		Description: in.Description,
		VideoURL:    in.VideoURL,
	}
	if in.IsFree != nil {
		ch.IsFree = *in.IsFree
	}
	if err := uc.chapters.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (uc *ChapterUseCase) Update(ctx context.Context, caller domain.Identity, courseID, chapterID uuid.UUID, in ChapterInput) (*domain.Chapter, error) {
	if _, err := uc.courses.GetForCaller(ctx, courseID, caller); err != nil {
		return nil, err
	}
	if _, err := uc.chapters.Get(ctx, courseID, chapterID); err != nil {
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
	if in.VideoURL != nil {
		updates["video_url"] = *in.VideoURL
	}
	if in.IsFree != nil {
		updates["is_free"] = *in.IsFree
	}

	if err := uc.chapters.Update(ctx, chapterID, updates); err != nil {
		return nil, err
	}
	return uc.chapters.Get(ctx, courseID, chapterID)
}

// TogglePublish flips a chapter's published state. Withdrawing the last
// published chapter also withdraws its course.
func (uc *ChapterUseCase) TogglePublish(ctx context.Context, caller domain.Identity, courseID, chapterID uuid.UUID) (*domain.Chapter, error) {
	if _, err := uc.courses.GetForCaller(ctx, courseID, caller); err != nil {
		return nil, err
	}
	ch, err := uc.chapters.Get(ctx, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	publish := !ch.IsPublished
	if publish && strings.TrimSpace(ch.Title) == "" {
		return nil, domain.ErrMissingRequiredFields
	}

	courseUnpublished, err := uc.chapters.SetPublished(ctx, ch, publish)
	if err != nil {
		return nil, err
	}
	if courseUnpublished {
		uc.log.Info("Course unpublished after its last chapter was withdrawn", "course_id", courseID.String())
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn("Catalog cache invalidation failed", "error", err)
	}

	ch.IsPublished = publish
	return ch, nil
}
