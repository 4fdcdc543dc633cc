package repository

import (
	"context"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create records the purchase once; repeated calls return the existing row.
func (r *PurchaseRepository) Create(ctx context.Context, userID, courseID uuid.UUID) (*domain.Purchase, error) {
	p := domain.Purchase{}
	err := r.db.WithContext(ctx).
		Where(domain.Purchase{UserID: userID, CourseID: courseID}).
		Attrs(domain.Purchase{ID: uuid.New(), CreatedAt: time.Now()}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns the caller's purchases among the given courses.
func (r *PurchaseRepository) ListForUser(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	if len(courseIDs) == 0 {
		return purchases, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Find(&purchases).Error
	return purchases, err
}

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CountCompleted counts the chapters among chapterIDs the user has completed.
func (r *ProgressRepository) CountCompleted(ctx context.Context, userID uuid.UUID, chapterIDs []uuid.UUID) (int64, error) {
	if len(chapterIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserProgress{}).
		Where("user_id = ? AND chapter_id IN ? AND is_completed = ?", userID, chapterIDs, true).
		Count(&count).Error
	return count, err
}

// Upsert keeps one progress row per user and chapter.
func (r *ProgressRepository) Upsert(ctx context.Context, userID, chapterID uuid.UUID, completed bool) (*domain.UserProgress, error) {
	row := domain.UserProgress{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(domain.UserProgress{UserID: userID, ChapterID: chapterID}).
			Attrs(domain.UserProgress{ID: uuid.New()}).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
		if row.IsCompleted == completed {
			return nil
		}
		row.IsCompleted = completed
		return tx.Model(&row).Update("is_completed", completed).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
