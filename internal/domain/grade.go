package domain

// AllGrades marks a course as visible to every grade.
const AllGrades = "الكل"

var elementaryGrades = []string{
	"الرابع الابتدائي",
	"الخامس الابتدائي",
	"السادس الابتدائي",
}

var intermediateGrades = []string{
	"الاول الاعدادي",
	"الثاني الاعدادي",
	"الثالث الاعدادي",
}

// GradeTracksDivision reports whether students of the grade are further split
// into divisions. Only secondary grades are.
func GradeTracksDivision(grade string) bool {
	for _, g := range elementaryGrades {
		if g == grade {
			return false
		}
	}
	for _, g := range intermediateGrades {
		if g == grade {
			return false
		}
	}
	return true
}
