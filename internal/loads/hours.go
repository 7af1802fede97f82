package loads

import (
	"fmt"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

// NominalHours returns the section's faculty hours override, or the course
// default when the section has none.
func NominalHours(course *model.Course, section *model.Section) float64 {
	if section.FacultyHours != nil {
		return *section.FacultyHours
	}
	return course.FacultyHours
}

// FacultyHours returns the hours each instructor of the section is credited
// with. ok is false for a section without instructors.
func FacultyHours(course *model.Course, section *model.Section) (hours float64, ok bool) {
	n := len(section.Instructors)
	if n == 0 {
		return 0, false
	}
	return NominalHours(course, section) / float64(n), true
}

// SectionName returns the label of a teaching section, e.g. "CS-101-A".
func SectionName(course *model.Course, section *model.Section) string {
	return fmt.Sprintf("%s-%s-%s", course.Prefix(), course.Number, section.Letter)
}

// Label returns the loads table label of a section: the activity name for
// non-teaching sections, SectionName otherwise.
func Label(course *model.Course, section *model.Section) string {
	if section.IsNonTeaching {
		return section.InstructionalMethod
	}
	return SectionName(course, section)
}
