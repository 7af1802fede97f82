package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-facultyload/internal/loads"
	"github.com/rhyrak/go-facultyload/internal/logger"
	"github.com/rhyrak/go-facultyload/internal/metrics"
	"github.com/rhyrak/go-facultyload/pkg/model"
)

const (
	TeachingHeader    = "Term,Section Name,Stu Cred,Fac Load,Room,Days,Meeting Time,Short Title,Faculty\n"
	NonTeachingHeader = "Term(s),Non-Teaching Activity,Fac Load,Faculty\n"
)

// Exporter renders schedules as CSV text. The zero value is ready to use.
type Exporter struct {
	Logger  logger.Logger
	Metrics metrics.Recorder
}

// TeachingCSV renders the teaching sections of schedule.
func TeachingCSV(schedule *model.Schedule) string {
	return (&Exporter{}).Teaching(schedule)
}

// NonTeachingCSV renders the non-teaching activities of schedule.
func NonTeachingCSV(schedule *model.Schedule) string {
	return (&Exporter{}).NonTeaching(schedule)
}

// Teaching renders one row per section of every course that has a prefix or
// a number. Multi-meeting sections put one line per meeting in the room,
// days and meeting time cells.
func (e *Exporter) Teaching(schedule *model.Schedule) string {
	var b strings.Builder
	b.WriteString(TeachingHeader)
	rows := 0
	for ci := range schedule.Courses {
		course := &schedule.Courses[ci]
		if !course.HasCode() {
			continue
		}
		for si := range course.Sections {
			section := &course.Sections[si]
			var times, rooms, days strings.Builder
			for _, m := range section.Meetings {
				label := MeetingTimeLabel(m.StartTime, m.Duration)
				if label == "\n" {
					e.logger().Debugf("%s: unparsable start time %q", loads.SectionName(course, section), m.StartTime)
				}
				times.WriteString(label)
				rooms.WriteString(m.Location.Building)
				if m.Location.RoomNumber != "" {
					rooms.WriteString(" " + m.Location.RoomNumber)
				}
				rooms.WriteByte('\n')
				days.WriteString(strings.Join(m.Days, "") + "\n")
			}

			studentHours := course.StudentHours
			if section.StudentHours != nil {
				studentHours = *section.StudentHours
			}
			fields := []string{
				TermLabel(section),
				quote(loads.SectionName(course, section)),
				Fixed2(studentHours),
				Fixed2(loads.NominalHours(course, section)),
				quote(dropLast(rooms.String())),
				quote(dropLast(days.String())),
				quote(dropLast(times.String())),
				quote(course.Name),
				quote(strings.Join(section.Instructors, "\n")),
			}
			b.WriteString(strings.Join(fields, ",") + "\n")
			rows++
		}
	}
	e.recorder().Exported("teaching", rows)
	return b.String()
}

// NonTeaching renders one row per section of every course without prefix
// and number.
func (e *Exporter) NonTeaching(schedule *model.Schedule) string {
	var b strings.Builder
	b.WriteString(NonTeachingHeader)
	rows := 0
	for ci := range schedule.Courses {
		course := &schedule.Courses[ci]
		if course.HasCode() {
			continue
		}
		for si := range course.Sections {
			section := &course.Sections[si]
			fields := []string{
				quoteIfNeeded(TermLabel(section)),
				quoteIfNeeded(section.InstructionalMethod),
				Fixed2(loads.NominalHours(course, section)),
				quote(strings.Join(section.Instructors, "\n")),
			}
			b.WriteString(strings.Join(fields, ",") + "\n")
			rows++
		}
	}
	e.recorder().Exported("non-teaching", rows)
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

// dropLast removes the line break closing the last meeting line.
func dropLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}

// WriteLoads writes the faculty loads table with its column headers.
func WriteLoads(w io.Writer, rows []model.FacultyRow) error {
	if rows == nil {
		rows = []model.FacultyRow{}
	}
	return gocsv.Marshal(&rows, w)
}

// ExportPaths names the files written by ExportFiles.
type ExportPaths struct {
	Teaching    string
	NonTeaching string
	Loads       string
}

// ExportFiles writes both CSV bodies of schedule and its loads table into
// the given paths, replacing existing files.
func (e *Exporter) ExportFiles(schedule *model.Schedule, rows []model.FacultyRow, paths ExportPaths) error {
	if err := writeFile(paths.Teaching, func(w io.Writer) error {
		_, err := io.WriteString(w, e.Teaching(schedule))
		return err
	}); err != nil {
		return err
	}
	if err := writeFile(paths.NonTeaching, func(w io.Writer) error {
		_, err := io.WriteString(w, e.NonTeaching(schedule))
		return err
	}); err != nil {
		return err
	}
	if err := writeFile(paths.Loads, func(w io.Writer) error {
		return WriteLoads(w, rows)
	}); err != nil {
		return err
	}
	e.recorder().Exported("loads", len(rows))
	e.logger().Infof("exported %s, %s and %s", paths.Teaching, paths.NonTeaching, paths.Loads)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

func (e *Exporter) logger() logger.Logger {
	if e.Logger == nil {
		return logger.NopLogger{}
	}
	return e.Logger
}

func (e *Exporter) recorder() metrics.Recorder {
	if e.Metrics == nil {
		return metrics.NopRecorder{}
	}
	return e.Metrics
}
