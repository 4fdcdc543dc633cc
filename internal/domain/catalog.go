package domain

import (
	"strings"

	"github.com/google/uuid"
)

// GradeMatch is one alternative of the grade group. A nil Grade matches rows
// without a grade; a non-empty Division additionally requires the course to
// list that division.
type GradeMatch struct {
	Grade    *string
	Division string
}

// CatalogFilter narrows the published catalog. Empty groups are not applied.
// Grade alternatives are OR-ed, curriculum alternatives are OR-ed, and the two
// groups are AND-ed.
type CatalogFilter struct {
	Grades      []GradeMatch
	Curriculums []*string
	Title       string
}

// NewCatalogFilter derives the visibility filter for a caller. Only students
// (role USER) are narrowed; everyone else sees the whole published catalog.
func NewCatalogFilter(u *User) CatalogFilter {
	var f CatalogFilter
	if u == nil || u.Role != RoleUser {
		return f
	}

	if grade := deref(u.Grade); grade != "" {
		all := AllGrades
		f.Grades = append(f.Grades, GradeMatch{Grade: &all}, GradeMatch{Grade: nil})

		g := grade
		division := deref(u.Division)
		if GradeTracksDivision(grade) && division != "" {
			f.Grades = append(f.Grades, GradeMatch{Grade: &g, Division: division})
		} else {
			f.Grades = append(f.Grades, GradeMatch{Grade: &g})
		}
	}

	if curriculum := deref(u.Curriculum); curriculum != "" {
		c := curriculum
		f.Curriculums = append(f.Curriculums, &c, nil)
	}

	return f
}

func (f CatalogFilter) IsEmpty() bool {
	return len(f.Grades) == 0 && len(f.Curriculums) == 0 && f.Title == ""
}

// Key is a stable identifier of the filter, used for caching.
func (f CatalogFilter) Key() string {
	var b strings.Builder
	b.WriteString("g=")
	for _, g := range f.Grades {
		if g.Grade == nil {
			b.WriteString("<null>")
		} else {
			b.WriteString(*g.Grade)
		}
		if g.Division != "" {
			b.WriteString("+" + g.Division)
		}
		b.WriteString(",")
	}
	b.WriteString("|c=")
	for _, c := range f.Curriculums {
		if c == nil {
			b.WriteString("<null>")
		} else {
			b.WriteString(*c)
		}
		b.WriteString(",")
	}
	b.WriteString("|t=" + strings.ToLower(strings.TrimSpace(f.Title)))
	return b.String()
}

// CatalogEntry is a published course as seen by one caller.
type CatalogEntry struct {
	Course    Course
	Purchased bool
	Progress  float64
}

// ChapterIDs returns the ids of the course's loaded chapters.
func (c *Course) ChapterIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Chapters))
	for _, ch := range c.Chapters {
		ids = append(ids, ch.ID)
	}
	return ids
}

// ProgressPercent is completed/total*100, or 0 when there is nothing to complete.
func ProgressPercent(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
