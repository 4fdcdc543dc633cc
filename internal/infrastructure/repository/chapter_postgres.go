package repository

import (
	"context"
	"errors"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// Create appends the chapter after the course's last position.
func (r *ChapterRepository) Create(ctx context.Context, ch *domain.Chapter) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last struct{ Max *int }
		if err := tx.Model(&domain.Chapter{}).
			Select("MAX(position) AS max").
			Where("course_id = ?", ch.CourseID).
			Scan(&last).Error; err != nil {
			return err
		}
		ch.Position = 1
		if last.Max != nil {
			ch.Position = *last.Max + 1
		}
		return tx.Create(ch).Error
	})
}

func (r *ChapterRepository) Get(ctx context.Context, courseID, chapterID uuid.UUID) (*domain.Chapter, error) {
	var ch domain.Chapter
	err := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", chapterID, courseID).
		First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChapterNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *ChapterRepository) Update(ctx context.Context, chapterID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Chapter{}).
		Where("id = ?", chapterID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrChapterNotFound
	}
	return nil
}

// SetPublished flips the chapter state. When the last published chapter of a
// course is withdrawn the course is unpublished as well; the returned flag
// reports that.
func (r *ChapterRepository) SetPublished(ctx context.Context, ch *domain.Chapter, published bool) (courseUnpublished bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Chapter{}).
			Where("id = ?", ch.ID).
			Update("is_published", published).Error; err != nil {
			return err
		}
		if published {
			return nil
		}

		var remaining int64
		if err := tx.Model(&domain.Chapter{}).
			Where("course_id = ? AND is_published = ?", ch.CourseID, true).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		res := tx.Model(&domain.Course{}).
			Where("id = ? AND is_published = ?", ch.CourseID, true).
			Update("is_published", false)
		if res.Error != nil {
			return res.Error
		}
		courseUnpublished = res.RowsAffected > 0
		return nil
	})
	return courseUnpublished, err
}
