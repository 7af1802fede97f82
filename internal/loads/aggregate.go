package loads

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/rhyrak/go-facultyload/internal/logger"
	"github.com/rhyrak/go-facultyload/internal/metrics"
	"github.com/rhyrak/go-facultyload/pkg/model"
)

// MergeRule decides how a bucket's hours change when a faculty member is seen
// again in the same bucket.
type MergeRule int

const (
	// MergeDividePrevious divides the hours already in the bucket by the
	// instructor count of the incoming section before adding its share.
	// Published load reports were produced this way, so it stays the default
	// until the registrar confirms the plain sum.
	MergeDividePrevious MergeRule = iota
	// MergeSum adds the incoming share to the hours already in the bucket.
	MergeSum
)

// DefaultMergeRule is used by Aggregate and by a zero Aggregator.
const DefaultMergeRule = MergeDividePrevious

// ParseMergeRule maps the configuration names "legacy" and "sum".
func ParseMergeRule(name string) (MergeRule, error) {
	switch name {
	case "", "legacy":
		return MergeDividePrevious, nil
	case "sum":
		return MergeSum, nil
	}
	return 0, fmt.Errorf("unknown merge rule %q", name)
}

func (r MergeRule) String() string {
	if r == MergeSum {
		return "sum"
	}
	return "legacy"
}

// Aggregator builds faculty load tables. It keeps no state between calls.
type Aggregator struct {
	Rule    MergeRule
	Logger  logger.Logger
	Metrics metrics.Recorder
}

// NewAggregator returns an Aggregator. Nil collaborators are replaced by
// no-op implementations.
func NewAggregator(rule MergeRule, log logger.Logger, rec metrics.Recorder) *Aggregator {
	return &Aggregator{Rule: rule, Logger: log, Metrics: rec}
}

// Aggregate builds the faculty load table of schedule with the default rule.
func Aggregate(schedule *model.Schedule) []model.FacultyRow {
	return (&Aggregator{}).Aggregate(schedule)
}

// Aggregate folds every (course, section, instructor) of schedule into one
// row per faculty member, then sorts the rows by total hours, highest first.
// Rows with equal totals keep the order their faculty were first seen in.
func (a *Aggregator) Aggregate(schedule *model.Schedule) []model.FacultyRow {
	log := a.logger()
	rows := []*model.FacultyRow{}
	byFaculty := make(map[string]*model.FacultyRow)

	for ci := range schedule.Courses {
		course := &schedule.Courses[ci]
		for si := range course.Sections {
			section := &course.Sections[si]
			hours, ok := FacultyHours(course, section)
			if !ok {
				continue
			}
			if math.IsNaN(hours) || math.IsInf(hours, 0) {
				log.Warnf("skipping %s: faculty hours %v", SectionName(course, section), hours)
				continue
			}
			label := Label(course, section)
			bucket, classified := Classify(section)
			if !classified {
				log.Warnf("section %s of %v has unknown term %q", label, section.Instructors, section.Term.String())
				a.recorder().ClassificationMiss(section.Term.String())
			}
			for _, instructor := range section.Instructors {
				row, seen := byFaculty[instructor]
				if !seen {
					row = &model.FacultyRow{Faculty: instructor}
					byFaculty[instructor] = row
					rows = append(rows, row)
				}
				if classified {
					a.add(row, bucket, label, hours, len(section.Instructors))
				}
			}
		}
	}

	out := make([]model.FacultyRow, 0, len(rows))
	for _, r := range rows {
		r.TotalHours = r.SumHours()
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(x, y model.FacultyRow) int {
		switch {
		case x.TotalHours > y.TotalHours:
			return -1
		case x.TotalHours < y.TotalHours:
			return 1
		}
		return 0
	})
	a.recorder().Aggregated(len(out))
	log.Debugw("faculty loads built", map[string]any{"rows": len(out), "rule": a.Rule.String()})
	return out
}

// add records one instructor's share of a section in bucket.
func (a *Aggregator) add(row *model.FacultyRow, bucket model.Bucket, label string, hours float64, instructors int) {
	names := row.SectionsField(bucket)
	if *names != "" {
		*names += ", " + label
	} else {
		*names = label
	}

	field := row.HoursField(bucket)
	if *field != nil && **field != 0 {
		*field = model.Hours(a.merge(**field, hours, instructors))
	} else {
		*field = model.Hours(hours)
	}

	if bucket == model.BucketOther {
		*names += " (" + FormatHours(hours) + ")"
	}
}

func (a *Aggregator) merge(previous, share float64, instructors int) float64 {
	if a.Rule == MergeSum {
		return previous + share
	}
	return previous/float64(instructors) + share
}

// FormatHours renders hours with the shortest exact decimal form: 2, 1.5,
// 0.3333333333333333.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func (a *Aggregator) logger() logger.Logger {
	if a.Logger == nil {
		return logger.NopLogger{}
	}
	return a.Logger
}

func (a *Aggregator) recorder() metrics.Recorder {
	if a.Metrics == nil {
		return metrics.NopRecorder{}
	}
	return a.Metrics
}
