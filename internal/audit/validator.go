package audit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rhyrak/go-facultyload/internal/csvio"
	"github.com/rhyrak/go-facultyload/internal/loads"
	"github.com/rhyrak/go-facultyload/pkg/model"
)

type booking struct {
	section string
	room    string
	term    model.Term
	year    string
	days    []string
	start   int
	end     int
}

// Validate checks a schedule for records the loads table and exports can
// only degrade on, and for rooms booked twice at the same time.
// Returns false and a report for schedules with problems.
func Validate(schedule *model.Schedule) (bool, string) {
	var message string
	var valid bool = true
	var hasUnstaffed bool = false
	var hasUnknownTerm bool = false
	var hasBadTime bool = false
	var hasRoomCollision bool = false

	var bookings []booking
	for ci := range schedule.Courses {
		course := &schedule.Courses[ci]
		for si := range course.Sections {
			section := &course.Sections[si]
			label := loads.Label(course, section)
			if len(section.Instructors) == 0 {
				valid = false
				hasUnstaffed = true
				message += fmt.Sprintf("- %s has no instructors\n", label)
			}
			if _, ok := loads.Classify(section); !ok {
				valid = false
				hasUnknownTerm = true
				message += fmt.Sprintf("- %s has unknown term %q\n", label, section.Term.String())
			}
			term, single := section.Term.Single()
			for _, m := range section.Meetings {
				start, ok := csvio.ParseStartTime(m.StartTime)
				if !ok {
					valid = false
					hasBadTime = true
					message += fmt.Sprintf("- %s meets at unparsable time %q\n", label, m.StartTime)
					continue
				}
				if section.IsNonTeaching || !single || m.Location.RoomNumber == "" {
					continue
				}
				from := start.Hour()*60 + start.Minute()
				bookings = append(bookings, booking{
					section: label,
					room:    m.Location.Building + " " + m.Location.RoomNumber,
					term:    term,
					year:    section.Year.String(),
					days:    m.Days,
					start:   from,
					end:     from + m.Duration,
				})
			}
		}
	}

	for i, b1 := range bookings {
		for _, b2 := range bookings[i+1:] {
			if b1.room != b2.room || b1.term != b2.term || b1.year != b2.year {
				continue
			}
			if b1.start >= b2.end || b2.start >= b1.end || !sharesDay(b1.days, b2.days) {
				continue
			}
			valid = false
			hasRoomCollision = true
			message += fmt.Sprintf("- Room %s booked by %s and %s at the same time\n", b1.room, b1.section, b2.section)
		}
	}

	if hasRoomCollision {
		message = "[FAIL]: Room collision check.\n" + message
	} else {
		message = "[  OK]: Room collision check.\n" + message
	}
	if hasBadTime {
		message = "[FAIL]: Meeting time check.\n" + message
	} else {
		message = "[  OK]: Meeting time check.\n" + message
	}
	if hasUnknownTerm {
		message = "[FAIL]: Term check.\n" + message
	} else {
		message = "[  OK]: Term check.\n" + message
	}
	if hasUnstaffed {
		message = "[FAIL]: Section has instructor check.\n" + message
	} else {
		message = "[  OK]: Section has instructor check.\n" + message
	}

	return valid, strings.TrimSuffix(message, "\n")
}

func sharesDay(d1, d2 []string) bool {
	for _, d := range d1 {
		if slices.Contains(d2, d) {
			return true
		}
	}
	return false
}
