package usecase

import (
	"context"
	"testing"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gradeFourth    = "الرابع الابتدائي"
	gradeSecondary = "الثاني الثانوي"
	curriculumAr   = "عربي"
	curriculumEn   = "لغات"
	divisionSci    = "علمي"
	divisionLit    = "ادبي"
)

func titles(entries []domain.CatalogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Course.Title)
	}
	return out
}

func TestSearchFiltersByGradeAndCurriculum(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	student := f.user(t, domain.RoleUser, userOpts{grade: gradeFourth, curriculum: curriculumAr})

	f.createCourse(t, teacher, courseOpts{title: "exact", published: true, grade: gradeFourth, curriculum: curriculumAr})
	f.createCourse(t, teacher, courseOpts{title: "all grades", published: true, grade: domain.AllGrades, curriculum: curriculumAr})
	f.createCourse(t, teacher, courseOpts{title: "legacy", published: true})
	f.createCourse(t, teacher, courseOpts{title: "other grade", published: true, grade: "الخامس الابتدائي", curriculum: curriculumAr})
	f.createCourse(t, teacher, courseOpts{title: "other curriculum", published: true, grade: gradeFourth, curriculum: curriculumEn})
	f.createCourse(t, teacher, courseOpts{title: "draft", grade: gradeFourth, curriculum: curriculumAr})

	entries, err := f.catalog.Search(context.Background(), student, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"exact", "all grades", "legacy"}, titles(entries))
}

func TestSearchMatchesDivisionForTrackedGrades(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	student := f.user(t, domain.RoleUser, userOpts{grade: gradeSecondary, division: divisionSci})

	f.createCourse(t, teacher, courseOpts{title: "science", published: true, grade: gradeSecondary, divisions: []string{divisionSci, divisionLit}})
	f.createCourse(t, teacher, courseOpts{title: "literature", published: true, grade: gradeSecondary, divisions: []string{divisionLit}})
	f.createCourse(t, teacher, courseOpts{title: "no divisions", published: true, grade: gradeSecondary})
	f.createCourse(t, teacher, courseOpts{title: "everyone", published: true, grade: domain.AllGrades})

	entries, err := f.catalog.Search(context.Background(), student, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"science", "everyone"}, titles(entries))
}

func TestSearchTrackedGradeWithoutDivisionMatchesGradeOnly(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	student := f.user(t, domain.RoleUser, userOpts{grade: gradeSecondary})

	f.createCourse(t, teacher, courseOpts{title: "science", published: true, grade: gradeSecondary, divisions: []string{divisionSci}})
	f.createCourse(t, teacher, courseOpts{title: "other", published: true, grade: gradeFourth})

	entries, err := f.catalog.Search(context.Background(), student, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"science"}, titles(entries))
}

func TestSearchIsUnfilteredForStaffAndBareStudents(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{grade: gradeFourth, curriculum: curriculumAr})
	bare := f.user(t, domain.RoleUser, userOpts{})

	f.createCourse(t, teacher, courseOpts{title: "a", published: true, grade: gradeSecondary, curriculum: curriculumEn})
	f.createCourse(t, teacher, courseOpts{title: "b", published: true, grade: gradeFourth})
	f.createCourse(t, teacher, courseOpts{title: "draft"})

	for _, caller := range []domain.Identity{teacher, bare} {
		entries, err := f.catalog.Search(context.Background(), caller, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, titles(entries))
	}
}

func TestSearchByTitleNewestFirst(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	now := time.Now()

	f.createCourse(t, teacher, courseOpts{title: "Physics Basics", published: true, createdAt: now.Add(-2 * time.Hour)})
	f.createCourse(t, teacher, courseOpts{title: "Advanced physics", published: true, createdAt: now.Add(-time.Hour)})
	f.createCourse(t, teacher, courseOpts{title: "Chemistry", published: true, createdAt: now})

	entries, err := f.catalog.Search(context.Background(), teacher, "PHYSICS")
	require.NoError(t, err)
	assert.Equal(t, []string{"Advanced physics", "Physics Basics"}, titles(entries))
}

func TestSearchComputesProgressPerCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	student := f.user(t, domain.RoleUser, userOpts{})

	quarter := f.createCourse(t, teacher, courseOpts{title: "quarter", published: true})
	var first uuid.UUID
	for i := 0; i < 4; i++ {
		ch := f.addChapter(t, quarter.ID, true, false)
		if i == 0 {
			first = ch.ID
		}
	}
	draft := f.addChapter(t, quarter.ID, false, false)
	f.complete(t, student.UserID, first)
	f.complete(t, student.UserID, draft.ID)
	_, err := f.purchases.Create(ctx, student.UserID, quarter.ID)
	require.NoError(t, err)

	f.createCourse(t, teacher, courseOpts{title: "empty", published: true})

	entries, err := f.catalog.Search(ctx, student, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byTitle := map[string]domain.CatalogEntry{}
	for _, e := range entries {
		byTitle[e.Course.Title] = e
	}
	assert.InDelta(t, 25.0, byTitle["quarter"].Progress, 0.0001)
	assert.True(t, byTitle["quarter"].Purchased)
	assert.Len(t, byTitle["quarter"].Course.Chapters, 4)
	assert.Zero(t, byTitle["empty"].Progress)
	assert.False(t, byTitle["empty"].Purchased)
}

func TestSearchUsesCacheUntilInvalidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, domain.RoleTeacher, userOpts{})
	course := f.createCourse(t, teacher, completeCourse())
	f.addChapter(t, course.ID, true, false)

	entries, err := f.catalog.Search(ctx, teacher, "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Written behind the use case's back: a cached list must hide it.
	require.NoError(t, f.courses.SetPublished(ctx, course.ID, true))
	entries, err = f.catalog.Search(ctx, teacher, "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, f.cache.Invalidate(ctx))
	entries, err = f.catalog.Search(ctx, teacher, "")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSearchUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.Search(context.Background(), domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
