package usecase

import (
	"context"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/platform/logger"

	"github.com/google/uuid"
)

type EnrollmentUseCase struct {
	courses   *repository.CourseRepository
	chapters  *repository.ChapterRepository
	purchases *repository.PurchaseRepository
	progress  *repository.ProgressRepository
	log       *logger.Logger
}

func NewEnrollmentUseCase(
	cr *repository.CourseRepository,
	chr *repository.ChapterRepository,
	pr *repository.PurchaseRepository,
	pgr *repository.ProgressRepository,
	log *logger.Logger,
) *EnrollmentUseCase {
	return &EnrollmentUseCase{
		courses:   cr,
		chapters:  chr,
		purchases: pr,
		progress:  pgr,
		log:       log.With("usecase", "Enrollment"),
	}
}

// Purchase enrolls the caller in a published course. Buying twice returns
// the original purchase.
func (uc *EnrollmentUseCase) Purchase(ctx context.Context, caller domain.Identity, courseID uuid.UUID) (*domain.Purchase, error) {
	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, domain.ErrCourseNotPublished
	}

	p, err := uc.purchases.Create(ctx, caller.UserID, courseID)
	if err != nil {
		return nil, err
	}
	uc.log.Info("Course purchased", "course_id", courseID.String(), "user_id", caller.UserID.String())
	return p, nil
}

// SetChapterCompleted records the caller's completion state for a published
// chapter. Paid chapters need a purchase of the course.
func (uc *EnrollmentUseCase) SetChapterCompleted(ctx context.Context, caller domain.Identity, courseID, chapterID uuid.UUID, completed bool) (*domain.UserProgress, error) {
	ch, err := uc.chapters.Get(ctx, courseID, chapterID)
	if err != nil {
		return nil, err
	}
	if !ch.IsPublished {
		return nil, domain.ErrChapterNotFound
	}

	if !ch.IsFree {
		owned, err := uc.purchases.Exists(ctx, caller.UserID, courseID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, domain.ErrPurchaseRequired
		}
	}

	return uc.progress.Upsert(ctx, caller.UserID, chapterID, completed)
}
