package loads

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

func cs101() model.Course {
	return model.Course{
		Prefixes:     []string{"CS"},
		Number:       "101",
		Name:         "Intro to Computing",
		FacultyHours: 3,
		StudentHours: 45,
		Sections: []model.Section{{
			Term:        model.SingleTerm(model.Fall),
			Year:        model.NumericYear(2024),
			Letter:      "A",
			Instructors: []string{"Smith", "Jones"},
			Meetings: []model.Meeting{{
				StartTime: "9:00 AM",
				Duration:  50,
				Days:      []string{"M", "W"},
				Location:  model.Location{Building: "Hall", RoomNumber: "101"},
			}},
		}},
	}
}

func committee(name string, hours float64, instructors ...string) model.Course {
	return model.Course{
		Prefixes: []string{""},
		Sections: []model.Section{{
			Term:                model.TermList(model.Fall, model.Spring),
			Year:                model.NumericYear(2024),
			Instructors:         instructors,
			FacultyHours:        model.Hours(hours),
			InstructionalMethod: name,
			IsNonTeaching:       true,
		}},
	}
}

func rowFor(t *testing.T, rows []model.FacultyRow, faculty string) model.FacultyRow {
	t.Helper()
	for _, r := range rows {
		if r.Faculty == faculty {
			return r
		}
	}
	require.Failf(t, "missing row", "no row for %s", faculty)
	return model.FacultyRow{}
}

type missCounter struct{ misses []string }

func (m *missCounter) Aggregated(int)                 {}
func (m *missCounter) ClassificationMiss(term string) { m.misses = append(m.misses, term) }
func (m *missCounter) Exported(string, int)           {}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		section model.Section
		want    model.Bucket
		ok      bool
	}{
		{"fall", model.Section{Term: model.SingleTerm(model.Fall)}, model.BucketFall, true},
		{"spring", model.Section{Term: model.SingleTerm(model.Spring)}, model.BucketSpring, true},
		{"summer", model.Section{Term: model.SingleTerm(model.Summer)}, model.BucketSummer, true},
		{"interim", model.Section{Term: model.SingleTerm(model.Interim)}, model.BucketSummer, true},
		{"non-teaching ignores term", model.Section{Term: model.SingleTerm(model.Fall), IsNonTeaching: true}, model.BucketOther, true},
		{"non-teaching term list", model.Section{Term: model.TermList(model.Spring), IsNonTeaching: true}, model.BucketOther, true},
		{"unknown term", model.Section{Term: model.SingleTerm("Winter")}, "", false},
		{"teaching term list", model.Section{Term: model.TermList(model.Fall)}, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Classify(&c.section)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFacultyHours(t *testing.T) {
	course := cs101()
	h, ok := FacultyHours(&course, &course.Sections[0])
	require.True(t, ok)
	assert.Equal(t, 1.5, h)

	course.Sections[0].FacultyHours = model.Hours(4)
	h, _ = FacultyHours(&course, &course.Sections[0])
	assert.Equal(t, 2.0, h)

	course.Sections[0].FacultyHours = model.Hours(0)
	h, _ = FacultyHours(&course, &course.Sections[0])
	assert.Zero(t, h, "a zero override still wins over the course default")

	course.Sections[0].Instructors = nil
	_, ok = FacultyHours(&course, &course.Sections[0])
	assert.False(t, ok)
}

func TestAggregateSplitsHoursAmongInstructors(t *testing.T) {
	schedule := &model.Schedule{Courses: []model.Course{cs101()}}
	rows := Aggregate(schedule)
	require.Len(t, rows, 2)
	for _, name := range []string{"Smith", "Jones"} {
		r := rowFor(t, rows, name)
		assert.Equal(t, "CS-101-A", r.FallCourseSections)
		require.NotNil(t, r.FallHours)
		assert.Equal(t, 1.5, *r.FallHours)
		assert.Equal(t, 1.5, r.TotalHours)
		assert.Nil(t, r.SpringHours)
	}
	assert.Equal(t, "Smith", rows[0].Faculty, "ties keep first-seen order")
}

func TestAggregateMergeDividesPreviousHours(t *testing.T) {
	second := model.Course{
		Prefixes:     []string{"CS"},
		Number:       "201",
		FacultyHours: 3,
		Sections: []model.Section{{
			Term:        model.SingleTerm(model.Fall),
			Letter:      "B",
			Instructors: []string{"Smith", "Brown"},
		}},
	}
	schedule := &model.Schedule{Courses: []model.Course{cs101(), second}}

	rows := Aggregate(schedule)
	smith := rowFor(t, rows, "Smith")
	assert.Equal(t, "CS-101-A, CS-201-B", smith.FallCourseSections)
	// 1.5 already credited is divided by CS-201-B's two instructors: 1.5/2 + 1.5.
	assert.Equal(t, 2.25, *smith.FallHours)
	assert.Equal(t, 2.25, smith.TotalHours)
	assert.Equal(t, "Smith", rows[0].Faculty)

	summed := NewAggregator(MergeSum, nil, nil).Aggregate(schedule)
	assert.Equal(t, 3.0, *rowFor(t, summed, "Smith").FallHours)
}

func TestAggregateMergeWithSoleInstructor(t *testing.T) {
	second := model.Course{
		Prefixes:     []string{"MATH"},
		Number:       "171",
		FacultyHours: 4,
		Sections: []model.Section{{
			Term:         model.SingleTerm(model.Fall),
			Letter:       "C",
			FacultyHours: model.Hours(3),
			Instructors:  []string{"Smith"},
		}},
	}
	rows := Aggregate(&model.Schedule{Courses: []model.Course{cs101(), second}})
	smith := rowFor(t, rows, "Smith")
	assert.Equal(t, "CS-101-A, MATH-171-C", smith.FallCourseSections)
	assert.Equal(t, 4.5, *smith.FallHours)
}

func TestAggregateNonTeaching(t *testing.T) {
	schedule := &model.Schedule{Courses: []model.Course{
		committee("Committee Work", 2, "Lee"),
	}}
	rows := Aggregate(schedule)
	require.Len(t, rows, 1)
	lee := rows[0]
	assert.Equal(t, "Committee Work (2)", lee.OtherDuties)
	assert.Equal(t, 2.0, *lee.OtherHours)
	assert.Equal(t, 2.0, lee.TotalHours)

	schedule.Courses = append(schedule.Courses, committee("Advising", 1, "Lee"))
	lee = Aggregate(schedule)[0]
	assert.Equal(t, "Committee Work (2), Advising (1)", lee.OtherDuties)
	assert.Equal(t, 3.0, *lee.OtherHours)
}

func TestAggregateNonTeachingSharedDuty(t *testing.T) {
	schedule := &model.Schedule{Courses: []model.Course{
		committee("Accreditation", 1, "Lee", "Kim", "Ortiz"),
	}}
	rows := Aggregate(schedule)
	require.Len(t, rows, 3)
	kim := rowFor(t, rows, "Kim")
	assert.Equal(t, "Accreditation (0.3333333333333333)", kim.OtherDuties)
	assert.InDelta(t, 1.0/3, *kim.OtherHours, 1e-12)
}

func TestAggregateSummerAbsorbsInterim(t *testing.T) {
	course := cs101()
	course.Sections[0].Term = model.SingleTerm(model.Interim)
	course.Sections = append(course.Sections, model.Section{
		Term:        model.SingleTerm(model.Summer),
		Letter:      "S",
		Instructors: []string{"Jones"},
	})
	rows := Aggregate(&model.Schedule{Courses: []model.Course{course}})
	jones := rowFor(t, rows, "Jones")
	assert.Equal(t, "CS-101-A, CS-101-S", jones.SummerCourseSections)
	assert.Equal(t, 1.5/1+3, *jones.SummerHours)
	assert.Equal(t, "Jones", rows[0].Faculty)
}

func TestAggregateUnknownTermIsSkipped(t *testing.T) {
	course := cs101()
	course.Sections[0].Term = model.SingleTerm("Winter")
	course.Sections = append(course.Sections, model.Section{
		Term:        model.SingleTerm(model.Spring),
		Letter:      "B",
		Instructors: []string{"Jones"},
	})
	rec := &missCounter{}
	rows := NewAggregator(DefaultMergeRule, nil, rec).Aggregate(&model.Schedule{Courses: []model.Course{course}})

	assert.Equal(t, []string{"Winter"}, rec.misses)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jones", rows[0].Faculty)
	assert.Equal(t, 3.0, rows[0].TotalHours)
	smith := rows[1]
	assert.Equal(t, "Smith", smith.Faculty)
	assert.Zero(t, smith.TotalHours)
	assert.Empty(t, smith.FallCourseSections)
}

func TestAggregateSectionWithoutInstructors(t *testing.T) {
	course := cs101()
	course.Sections[0].Instructors = []string{}
	rows := Aggregate(&model.Schedule{Courses: []model.Course{course}})
	assert.Empty(t, rows)
}

func TestAggregateEmptySchedule(t *testing.T) {
	rows := Aggregate(&model.Schedule{})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func randomSchedule(r *rand.Rand) *model.Schedule {
	faculty := []string{"Smith", "Jones", "Lee", "Kim", "Ortiz", "Brown", "Nguyen"}
	terms := []model.Term{model.Fall, model.Spring, model.Summer, model.Interim, "Winter"}
	s := &model.Schedule{}
	for c := 0; c < 12; c++ {
		course := model.Course{
			Prefixes:     []string{"CS"},
			Number:       fmt.Sprint(100 + c),
			FacultyHours: float64(r.Intn(5)),
		}
		for k := 0; k < 1+r.Intn(3); k++ {
			section := model.Section{
				Term:          model.SingleTerm(terms[r.Intn(len(terms))]),
				Letter:        string(rune('A' + k)),
				IsNonTeaching: r.Intn(5) == 0,
			}
			if r.Intn(2) == 0 {
				section.FacultyHours = model.Hours(float64(r.Intn(8)) / 2)
			}
			for _, i := range r.Perm(len(faculty))[:r.Intn(4)] {
				section.Instructors = append(section.Instructors, faculty[i])
			}
			course.Sections = append(course.Sections, section)
		}
		s.Courses = append(s.Courses, course)
	}
	return s
}

func TestAggregateProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		schedule := randomSchedule(r)
		for _, rule := range []MergeRule{MergeDividePrevious, MergeSum} {
			rows := NewAggregator(rule, nil, nil).Aggregate(schedule)
			seen := map[string]bool{}
			for j, row := range rows {
				assert.InDelta(t, row.SumHours(), row.TotalHours, 1e-9)
				assert.False(t, seen[row.Faculty], "duplicate row for %s", row.Faculty)
				seen[row.Faculty] = true
				if j > 0 {
					assert.GreaterOrEqual(t, rows[j-1].TotalHours, row.TotalHours)
				}
			}
		}
	}
}

func TestAggregateSumRuleConservesHours(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		schedule := randomSchedule(r)
		var nominal float64
		for ci := range schedule.Courses {
			course := &schedule.Courses[ci]
			for si := range course.Sections {
				section := &course.Sections[si]
				if _, ok := Classify(section); ok && len(section.Instructors) > 0 {
					nominal += NominalHours(course, section)
				}
			}
		}
		var total float64
		for _, row := range NewAggregator(MergeSum, nil, nil).Aggregate(schedule) {
			total += row.TotalHours
		}
		assert.InDelta(t, nominal, total, 1e-9)
	}
}

func TestParseMergeRule(t *testing.T) {
	rule, err := ParseMergeRule("")
	require.NoError(t, err)
	assert.Equal(t, MergeDividePrevious, rule)
	rule, err = ParseMergeRule("sum")
	require.NoError(t, err)
	assert.Equal(t, MergeSum, rule)
	assert.Equal(t, "sum", rule.String())
	_, err = ParseMergeRule("average")
	assert.Error(t, err)
}
