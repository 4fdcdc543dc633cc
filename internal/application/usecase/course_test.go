package usecase

import (
	"context"
	"testing"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePublishPublishesCompleteCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, teacher, completeCourse())
	f.addChapter(t, course.ID, true, false)

	got, err := f.course.TogglePublish(ctx, teacher, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.Equal(t, 1, f.cache.invalidations())

	got, err = f.course.TogglePublish(ctx, teacher, course.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)
}

func TestTogglePublishRequiresEveryField(t *testing.T) {
	zero := decimal.Zero
	cases := []struct {
		name   string
		mutate func(*courseOpts)
		chap   bool
	}{
		{"no description", func(o *courseOpts) { o.description = "" }, true},
		{"no image", func(o *courseOpts) { o.imageURL = "" }, true},
		{"no price", func(o *courseOpts) { o.price = nil }, true},
		{"no published chapter", func(o *courseOpts) {}, false},
		{"free course without chapter", func(o *courseOpts) { o.price = &zero }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			teacher := f.user(t, domain.RoleTeacher, userOpts{})
			opts := completeCourse()
			tc.mutate(&opts)
			course := f.createCourse(t, teacher, opts)
			f.addChapter(t, course.ID, tc.chap, false)

			_, err := f.course.TogglePublish(ctx, teacher, course.ID)
			assert.ErrorIs(t, err, domain.ErrMissingRequiredFields)

			stored, err := f.courses.GetByID(ctx, course.ID)
			require.NoError(t, err)
			assert.False(t, stored.IsPublished)
		})
	}
}

func TestTogglePublishAllowsZeroPrice(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	opts := completeCourse()
	zero := decimal.Zero
	opts.price = &zero
	course := f.createCourse(t, teacher, opts)
	f.addChapter(t, course.ID, true, false)

	got, err := f.course.TogglePublish(context.Background(), teacher, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}

func TestTogglePublishUnpublishHasNoPreconditions(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, teacher, courseOpts{title: "Draft", published: true})

	got, err := f.course.TogglePublish(context.Background(), teacher, course.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)
}

func TestTogglePublishHidesForeignCourses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, domain.RoleTeacher, userOpts{})
	other := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, owner, completeCourse())
	f.addChapter(t, course.ID, true, false)

	_, err := f.course.TogglePublish(ctx, other, course.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	_, err = f.course.TogglePublish(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	admin := f.user(t, domain.RoleAdmin, userOpts{})
	got, err := f.course.TogglePublish(ctx, admin, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}

func TestCreateCourseRequiresAuthorRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, domain.RoleUser, userOpts{})
	teacher := f.user(t, domain.RoleTeacher, userOpts{})

	_, err := f.course.Create(ctx, student, NewCourse{Title: "Physics"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.course.Create(ctx, teacher, NewCourse{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := f.course.Create(ctx, teacher, NewCourse{Title: " Physics "})
	require.NoError(t, err)
	assert.Equal(t, "Physics", c.Title)
	assert.Equal(t, teacher.UserID, c.UserID)
	assert.False(t, c.IsPublished)
}

func TestUpdateCoursePrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, teacher, courseOpts{title: "Chemistry"})

	price := decimal.RequireFromString("250.5")
	got, err := f.course.Update(ctx, teacher, course.ID, CourseUpdate{Price: PriceForm{Price: &price}})
	require.NoError(t, err)
	require.True(t, got.Price.Valid)
	assert.True(t, got.Price.Decimal.Equal(decimal.RequireFromString("250.50")))

	got, err = f.course.Update(ctx, teacher, course.ID, CourseUpdate{Price: PriceForm{Price: &price, IsFree: true}})
	require.NoError(t, err)
	require.True(t, got.Price.Valid)
	assert.True(t, got.Price.Decimal.IsZero())

	negative := decimal.NewFromInt(-5)
	_, err = f.course.Update(ctx, teacher, course.ID, CourseUpdate{Price: PriceForm{Price: &negative}})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestUpdateCourseAttributes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, teacher, courseOpts{title: "Biology", divisions: []string{"علمي"}})

	title := "Biology II"
	grade := "الاول الثانوي"
	curriculum := ""
	divisions := []string{"علمي علوم", "علمي رياضة", "علمي علوم"}
	got, err := f.course.Update(ctx, teacher, course.ID, CourseUpdate{
		Title:      &title,
		Grade:      &grade,
		Curriculum: &curriculum,
		Divisions:  &divisions,
	})
	require.NoError(t, err)
	assert.Equal(t, "Biology II", got.Title)
	require.NotNil(t, got.Grade)
	assert.Equal(t, grade, *got.Grade)
	assert.Nil(t, got.Curriculum)
	assert.ElementsMatch(t, []string{"علمي علوم", "علمي رياضة"}, got.DivisionNames())

	empty := ""
	_, err = f.course.Update(ctx, teacher, course.ID, CourseUpdate{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other := f.user(t, domain.RoleTeacher, userOpts{})
	_, err = f.course.Update(ctx, other, course.ID, CourseUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestDeleteCourseRemovesChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	student := f.user(t, domain.RoleUser, userOpts{})
	course := f.createCourse(t, teacher, courseOpts{title: "History", published: true, divisions: []string{"ادبي"}})
	ch := f.addChapter(t, course.ID, true, false)
	_, err := f.purchases.Create(ctx, student.UserID, course.ID)
	require.NoError(t, err)
	f.complete(t, student.UserID, ch.ID)

	require.NoError(t, f.course.Delete(ctx, teacher, course.ID))

	_, err = f.courses.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	var progressRows int64
	require.NoError(t, f.db.Model(&domain.UserProgress{}).Count(&progressRows).Error)
	assert.Zero(t, progressRows)

	assert.ErrorIs(t, f.course.Delete(ctx, teacher, course.ID), domain.ErrCourseNotFound)
}
