package usecase

import (
	"context"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/platform/logger"
	"lmsplatform/internal/platform/metrics"
	"lmsplatform/internal/platform/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const progressWorkers = 8

type CatalogUseCase struct {
	users     *repository.UserRepository
	courses   *repository.CourseRepository
	purchases *repository.PurchaseRepository
	progress  *repository.ProgressRepository
	cache     CatalogCache
	tracer    trace.Tracer
	log       *logger.Logger
}

func NewCatalogUseCase(
	ur *repository.UserRepository,
	cr *repository.CourseRepository,
	pr *repository.PurchaseRepository,
	pgr *repository.ProgressRepository,
	cache CatalogCache,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		users:     ur,
		courses:   cr,
		purchases: pr,
		progress:  pgr,
		cache:     orNoCache(cache),
		tracer:    otel.Tracer(tracing.ServiceName),
		log:       log.With("usecase", "Catalog"),
	}
}

// Search lists the published courses visible to the caller, newest first,
// with the caller's purchase state and completion percentage per course.
func (uc *CatalogUseCase) Search(ctx context.Context, caller domain.Identity, title string) ([]domain.CatalogEntry, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.search")
	defer span.End()

	user, err := uc.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	filter := domain.NewCatalogFilter(user)
	filter.Title = title
	span.SetAttributes(
		attribute.String("user.role", string(user.Role)),
		attribute.Int("filter.grades", len(filter.Grades)),
		attribute.Int("filter.curriculums", len(filter.Curriculums)),
	)

	courses, err := uc.published(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.size", len(courses)))

	entries := make([]domain.CatalogEntry, len(courses))
	if len(courses) == 0 {
		return entries, nil
	}

	owned, err := uc.purchasedSet(ctx, user.ID, courses)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Each goroutine writes only its own slot.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(progressWorkers)
	for i := range courses {
		i := i
		entries[i] = domain.CatalogEntry{
			Course:    courses[i],
			Purchased: owned[courses[i].ID],
		}
		chapterIDs := courses[i].ChapterIDs()
		if len(chapterIDs) == 0 {
			continue
		}
		g.Go(func() error {
			completed, err := uc.progress.CountCompleted(gctx, user.ID, chapterIDs)
			if err != nil {
				return err
			}
			entries[i].Progress = domain.ProgressPercent(completed, int64(len(chapterIDs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return entries, nil
}

func (uc *CatalogUseCase) published(ctx context.Context, filter domain.CatalogFilter) ([]domain.Course, error) {
	key := filter.Key()
	if courses, ok := uc.cache.Get(ctx, key); ok {
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		return courses, nil
	}
	metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()

	courses, err := uc.courses.ListPublished(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, key, courses); err != nil {
		uc.log.Warn("Catalog cache write failed", "error", err)
	}
	return courses, nil
}

func (uc *CatalogUseCase) purchasedSet(ctx context.Context, userID uuid.UUID, courses []domain.Course) (map[uuid.UUID]bool, error) {
	ids := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	purchases, err := uc.purchases.ListForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	owned := make(map[uuid.UUID]bool, len(purchases))
	for _, p := range purchases {
		owned[p.CourseID] = true
	}
	return owned, nil
}
