package repository

import (
	"context"
	"errors"
	"strings"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Divisions {
		c.Divisions[i].CourseID = c.ID
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID loads a course with its divisions and all chapters ordered by position.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// GetOwned loads a course that belongs to ownerID.
func (r *CourseRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID))
}

// GetForCaller applies the authoring access rule: administrators reach any
// course, everyone else only their own.
func (r *CourseRepository) GetForCaller(ctx context.Context, id uuid.UUID, caller domain.Identity) (*domain.Course, error) {
	if caller.IsAdmin() {
		return r.GetByID(ctx, id)
	}
	return r.GetOwned(ctx, id, caller.UserID)
}

func (r *CourseRepository) find(ctx context.Context, q *gorm.DB) (*domain.Course, error) {
	var course domain.Course
	err := q.
		Preload("Divisions").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", id).
		Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// Update writes the given columns and, when divisions is non-nil, replaces the
// course's division set in the same transaction.
func (r *CourseRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, divisions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&domain.Course{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrCourseNotFound
			}
		}
		if divisions == nil {
			return nil
		}
		if err := tx.Where("course_id = ?", id).Delete(&domain.CourseDivision{}).Error; err != nil {
			return err
		}
		rows := make([]domain.CourseDivision, 0, len(divisions))
		seen := make(map[string]bool, len(divisions))
		for _, d := range divisions {
			d = strings.TrimSpace(d)
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			rows = append(rows, domain.CourseDivision{CourseID: id, Division: d})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&domain.Chapter{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("chapter_id IN (?)", sub).Delete(&domain.UserProgress{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&domain.Chapter{}, &domain.CourseDivision{}, &domain.Purchase{}} {
			if err := tx.Where("course_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCourseNotFound
		}
		return nil
	})
}

// ListPublished returns published courses matching the filter, newest first.
// Each course carries its owner, divisions and the ids of its published
// chapters.
func (r *CourseRepository) ListPublished(ctx context.Context, f domain.CatalogFilter) ([]domain.Course, error) {
	query := r.db.WithContext(ctx).Model(&domain.Course{}).Where("courses.is_published = ?", true)
	query = applyCatalogFilter(query, f)

	var courses []domain.Course
	err := query.
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "image")
		}).
		Preload("Divisions").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "course_id", "position").
				Where("is_published = ?", true).
				Order("position asc")
		}).
		Order("courses.created_at desc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func applyCatalogFilter(q *gorm.DB, f domain.CatalogFilter) *gorm.DB {
	if len(f.Grades) > 0 {
		parts := make([]string, 0, len(f.Grades))
		args := make([]interface{}, 0, len(f.Grades)*2)
		for _, g := range f.Grades {
			switch {
			case g.Grade == nil:
				parts = append(parts, "courses.grade IS NULL")
			case g.Division != "":
				parts = append(parts, "(courses.grade = ? AND EXISTS (SELECT 1 FROM course_divisions cd WHERE cd.course_id = courses.id AND cd.division = ?))")
				args = append(args, *g.Grade, g.Division)
			default:
				parts = append(parts, "courses.grade = ?")
				args = append(args, *g.Grade)
			}
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	if len(f.Curriculums) > 0 {
		parts := make([]string, 0, len(f.Curriculums))
		args := make([]interface{}, 0, len(f.Curriculums))
		for _, c := range f.Curriculums {
			if c == nil {
				parts = append(parts, "courses.curriculum IS NULL")
				continue
			}
			parts = append(parts, "courses.curriculum = ?")
			args = append(args, *c)
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	if title := strings.TrimSpace(f.Title); title != "" {
		q = q.Where("LOWER(courses.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	return q
}
