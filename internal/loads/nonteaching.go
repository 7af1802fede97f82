package loads

import (
	"github.com/rhyrak/go-facultyload/pkg/model"
)

// FormToSection builds a non-teaching section from the load form together
// with the blank course that holds it.
func FormToSection(in model.NonTeachingLoadInput) (model.Course, model.Section) {
	course := model.Course{Prefixes: []string{}, Sections: []model.Section{}}

	selected := []model.Term{}
	for _, t := range in.Terms {
		if t.Checked {
			selected = append(selected, t.Term)
		}
	}
	hours := 0.0
	if in.FacultyHours != nil {
		hours = *in.FacultyHours
	}
	section := model.Section{
		Term:                model.TermList(selected...),
		Instructors:         append([]string{}, in.Instructor...),
		FacultyHours:        model.Hours(hours),
		InstructionalMethod: in.Activity,
		IsNonTeaching:       true,
		Meetings:            []model.Meeting{},
	}
	return course, section
}

// SectionToForm fills the load form from an existing section. A nil data
// yields an empty form.
func SectionToForm(data *model.CourseSectionMeeting) model.NonTeachingLoadInput {
	if data == nil {
		return model.NonTeachingLoadInput{Instructor: []string{}, Terms: CheckboxList(nil)}
	}
	in := model.NonTeachingLoadInput{
		Activity:   data.Section.InstructionalMethod,
		Instructor: append([]string{}, data.Section.Instructors...),
		Terms:      CheckboxList(data.Section.Term.Values),
	}
	if h := data.Section.FacultyHours; h != nil && *h > -1 {
		in.FacultyHours = model.Hours(*h)
	}
	return in
}

// CheckboxList aligns terms to model.Terms: one entry per canonical term,
// checked when terms contains it.
func CheckboxList(terms []model.Term) []model.CheckboxTerm {
	out := make([]model.CheckboxTerm, len(model.Terms))
	for i, t := range model.Terms {
		for _, selected := range terms {
			if selected == t {
				out[i] = model.Checked(t)
				break
			}
		}
	}
	return out
}

// AddNonTeachingLoad returns a copy of schedule with the load appended as a
// new code-less course.
func AddNonTeachingLoad(schedule *model.Schedule, in model.NonTeachingLoadInput) model.Schedule {
	course, section := FormToSection(in)
	course.Sections = append(course.Sections, section)
	courses := make([]model.Course, 0, len(schedule.Courses)+1)
	courses = append(courses, schedule.Courses...)
	return model.Schedule{Courses: append(courses, course)}
}
