package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/infrastructure/security"
	"lmsplatform/internal/platform/logger"
	"lmsplatform/internal/platform/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	users     *repository.UserRepository
	courses   *repository.CourseRepository
	chapters  *repository.ChapterRepository
	purchases *repository.PurchaseRepository
	progress  *repository.ProgressRepository
	cache     *memoryCache
	tokens    *memoryTokenStore

	course     *CourseUseCase
	chapter    *ChapterUseCase
	catalog    *CatalogUseCase
	enrollment *EnrollmentUseCase
	auth       *AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	log := logger.Nop()

	f := &fixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		courses:   repository.NewCourseRepository(db),
		chapters:  repository.NewChapterRepository(db),
		purchases: repository.NewPurchaseRepository(db),
		progress:  repository.NewProgressRepository(db),
		cache:     newMemoryCache(),
		tokens:    newMemoryTokenStore(),
	}
	f.course = NewCourseUseCase(f.courses, f.cache, log)
	f.chapter = NewChapterUseCase(f.courses, f.chapters, f.cache, log)
	f.catalog = NewCatalogUseCase(f.users, f.courses, f.purchases, f.progress, f.cache, log)
	f.enrollment = NewEnrollmentUseCase(f.courses, f.chapters, f.purchases, f.progress, log)
	f.auth = NewAuthUseCase(
		f.users,
		f.tokens,
		security.NewPasswordHasherWithCost(bcrypt.MinCost),
		security.NewTokenManager("access-secret", "refresh-secret"),
		log,
	)
	return f
}

type userOpts struct {
	grade, division, curriculum string
}

func (f *fixture) user(t *testing.T, role domain.Role, o userOpts) domain.Identity {
	t.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		FullName:     "Test " + string(role),
		PasswordHash: "x",
		Role:         role,
		Grade:        strPtr(o.grade),
		Division:     strPtr(o.division),
		Curriculum:   strPtr(o.curriculum),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return domain.Identity{UserID: u.ID, Role: role}
}

type courseOpts struct {
	title       string
	description string
	imageURL    string
	price       *decimal.Decimal
	published   bool
	grade       string
	curriculum  string
	divisions   []string
	createdAt   time.Time
}

func (f *fixture) createCourse(t *testing.T, owner domain.Identity, o courseOpts) *domain.Course {
	t.Helper()
	c := &domain.Course{
		ID:          uuid.New(),
		UserID:      owner.UserID,
		Title:       o.title,
		Description: strPtr(o.description),
		ImageURL:    strPtr(o.imageURL),
		IsPublished: o.published,
		Grade:       strPtr(o.grade),
		Curriculum:  strPtr(o.curriculum),
		CreatedAt:   o.createdAt,
	}
	if c.Title == "" {
		c.Title = "Course"
	}
	if o.price != nil {
		c.Price = decimal.NewNullDecimal(*o.price)
	}
	for _, d := range o.divisions {
		c.Divisions = append(c.Divisions, domain.CourseDivision{Division: d})
	}
	require.NoError(t, f.courses.Create(context.Background(), c))
	return c
}

// completeCourse returns options for a course that satisfies every publish
// requirement except the published chapter.
func completeCourse() courseOpts {
	price := decimal.NewFromInt(100)
	return courseOpts{
		title:       "Algebra",
		description: "Linear equations",
		imageURL:    "https://cdn.example.com/algebra.png",
		price:       &price,
	}
}

func (f *fixture) addChapter(t *testing.T, courseID uuid.UUID, published, free bool) *domain.Chapter {
	t.Helper()
	ch := &domain.Chapter{
		CourseID:    courseID,
		Title:       "Chapter",
		IsPublished: published,
		IsFree:      free,
	}
	require.NoError(t, f.chapters.Create(context.Background(), ch))
	return ch
}

func (f *fixture) complete(t *testing.T, userID, chapterID uuid.UUID) {
	t.Helper()
	_, err := f.progress.Upsert(context.Background(), userID, chapterID, true)
	require.NoError(t, err)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type memoryCache struct {
	mu          sync.Mutex
	items       map[string][]domain.Course
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]domain.Course{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]domain.Course, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, courses []domain.Course) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = courses
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string][]domain.Course{}
	c.invalidated++
	return nil
}

func (c *memoryCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: map[string]string{}}
}

func (s *memoryTokenStore) SaveRefresh(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *memoryTokenStore) CheckRefresh(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrTokenRevoked
	}
	return id, nil
}

func (s *memoryTokenStore) DeleteRefresh(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
