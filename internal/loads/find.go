package loads

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

// ErrSectionNotFound is returned when no section matches a lookup.
var ErrSectionNotFound = errors.New("section not found")

// LookupOrder returns the terms a bucket cell is looked up in, in order.
// The other bucket holds activity names and has no lookup.
func LookupOrder(b model.Bucket) []model.Term {
	switch b {
	case model.BucketFall:
		return []model.Term{model.Fall}
	case model.BucketSpring:
		return []model.Term{model.Spring}
	case model.BucketSummer:
		return []model.Term{model.Summer, model.Interim}
	}
	return nil
}

// FindSection returns the section labelled label that is offered in term.
func FindSection(schedule *model.Schedule, label string, term model.Term) (model.CourseSectionMeeting, error) {
	for ci := range schedule.Courses {
		course := &schedule.Courses[ci]
		for si := range course.Sections {
			section := &course.Sections[si]
			if !section.Term.Is(term) || SectionName(course, section) != label {
				continue
			}
			found := model.CourseSectionMeeting{Course: *course, Section: *section}
			if len(section.Meetings) > 0 {
				m := section.Meetings[0]
				found.Meeting = &m
			}
			return found, nil
		}
	}
	return model.CourseSectionMeeting{}, fmt.Errorf("%w: %s in %s", ErrSectionNotFound, label, term)
}

// FindSectionIn tries FindSection with each term in order and returns the
// first match.
func FindSectionIn(schedule *model.Schedule, label string, terms []model.Term) (model.CourseSectionMeeting, error) {
	for _, t := range terms {
		found, err := FindSection(schedule, label, t)
		if err == nil {
			return found, nil
		}
	}
	return model.CourseSectionMeeting{}, fmt.Errorf("%w: %s in %v", ErrSectionNotFound, label, terms)
}

// FirstLabel returns the first label of a loads table cell.
func FirstLabel(cell string) string {
	first, _, _ := strings.Cut(cell, ", ")
	return first
}

// FindCellSection resolves a clicked section cell of bucket b.
func FindCellSection(schedule *model.Schedule, cell string, b model.Bucket) (model.CourseSectionMeeting, error) {
	return FindSectionIn(schedule, FirstLabel(cell), LookupOrder(b))
}
