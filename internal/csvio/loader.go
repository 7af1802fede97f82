package csvio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

// ErrUnsupportedFormat is returned for schedule files that are neither JSON
// nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported schedule format")

// LoadSchedule reads a schedule from a .json file or a flat .csv file.
func LoadSchedule(path string, delim rune) (*model.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeSchedule(f)
	case ".csv":
		return LoadFlatSchedule(f, delim)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// DecodeSchedule reads a JSON schedule.
func DecodeSchedule(r io.Reader) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := json.NewDecoder(r).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &schedule, nil
}

// LoadFlatSchedule reads a flat schedule with one row per meeting. Rows with
// the same course columns form one course, rows that also share the section
// columns form one section. Rows without a start time, days and building add
// no meeting.
func LoadFlatSchedule(r io.Reader, delim rune) (*model.Schedule, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	var rows []*model.ScheduleCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("parse flat schedule: %w", err)
	}

	schedule := &model.Schedule{Courses: []model.Course{}}
	courseIndex := map[string]int{}
	sectionIndex := map[string]int{}
	for i, row := range rows {
		courseKey := strings.Join([]string{row.Prefix, row.Number, row.Name}, "\x00")
		ci, ok := courseIndex[courseKey]
		if !ok {
			ci = len(schedule.Courses)
			courseIndex[courseKey] = ci
			schedule.Courses = append(schedule.Courses, model.Course{
				Prefixes:     []string{row.Prefix},
				Number:       row.Number,
				Name:         row.Name,
				StudentHours: row.CourseStudentHours,
				FacultyHours: row.CourseFacultyHours,
				Sections:     []model.Section{},
			})
		}
		course := &schedule.Courses[ci]

		sectionKey := strings.Join([]string{courseKey, row.Term, row.Year, row.Letter, row.InstructionalMethod, row.Instructors}, "\x00")
		si, ok := sectionIndex[sectionKey]
		if !ok {
			section, err := sectionFromRow(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			si = len(course.Sections)
			sectionIndex[sectionKey] = si
			course.Sections = append(course.Sections, section)
		}
		if row.StartTime == "" && row.Days == "" && row.Building == "" {
			continue
		}
		section := &course.Sections[si]
		section.Meetings = append(section.Meetings, model.Meeting{
			StartTime: row.StartTime,
			Duration:  row.Duration,
			Days:      strings.Split(strings.ReplaceAll(row.Days, " ", ""), ""),
			Location:  model.Location{Building: row.Building, RoomNumber: row.RoomNumber},
		})
	}
	return schedule, nil
}

func sectionFromRow(row *model.ScheduleCSVRow) (model.Section, error) {
	section := model.Section{
		Letter:              row.Letter,
		Instructors:         splitList(row.Instructors),
		InstructionalMethod: row.InstructionalMethod,
		IsNonTeaching:       row.NonTeaching,
		Meetings:            []model.Meeting{},
	}
	if row.NonTeaching {
		var terms []model.Term
		for _, t := range splitList(row.Term) {
			terms = append(terms, model.Term(t))
		}
		section.Term = model.TermList(terms...)
	} else {
		section.Term = model.SingleTerm(model.Term(strings.TrimSpace(row.Term)))
	}
	if n, err := strconv.Atoi(strings.TrimSpace(row.Year)); err == nil {
		section.Year = model.NumericYear(n)
	} else {
		section.Year = model.EncodedYear(row.Year)
	}
	var err error
	if section.StudentHours, err = optionalHours(row.StudentHours); err != nil {
		return section, fmt.Errorf("student_hours: %w", err)
	}
	if section.FacultyHours, err = optionalHours(row.FacultyHours); err != nil {
		return section, fmt.Errorf("faculty_hours: %w", err)
	}
	return section, nil
}

// splitList splits a cell holding values separated by semicolons or line
// breaks.
func splitList(cell string) []string {
	out := []string{}
	for _, v := range strings.FieldsFunc(cell, func(r rune) bool { return r == ';' || r == '\n' }) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func optionalHours(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	h, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
