package model

// Course is a catalogue entry with its offered sections. A course with an
// empty first prefix and an empty number holds non-teaching duties.
type Course struct {
	Prefixes     []string  `json:"prefixes"`
	Number       string    `json:"number"`
	Name         string    `json:"name"`
	StudentHours float64   `json:"studentHours"`
	FacultyHours float64   `json:"facultyHours"`
	Sections     []Section `json:"sections"`
}

// Prefix returns the first prefix, or "" when there is none.
func (c *Course) Prefix() string {
	if len(c.Prefixes) == 0 {
		return ""
	}
	return c.Prefixes[0]
}

// HasCode reports whether the course has a prefix or a number. Courses
// without either are exported as non-teaching activities.
func (c *Course) HasCode() bool {
	return c.Prefix() != "" || c.Number != ""
}

// Section is one offering of a course, or one non-teaching duty.
type Section struct {
	Term         TermField `json:"term"`
	Year         Year      `json:"year"`
	Letter       string    `json:"letter"`
	Instructors  []string  `json:"instructors"`
	FacultyHours *float64  `json:"facultyHours,omitempty"`
	StudentHours *float64  `json:"studentHours,omitempty"`
	// InstructionalMethod is also the activity name of non-teaching sections.
	InstructionalMethod string    `json:"instructionalMethod"`
	IsNonTeaching       bool      `json:"isNonTeaching"`
	Meetings            []Meeting `json:"meetings"`
}

// Meeting is a recurring weekly class meeting.
type Meeting struct {
	StartTime string   `json:"startTime"`
	Duration  int      `json:"duration"`
	Days      []string `json:"days"`
	Location  Location `json:"location"`
}

type Location struct {
	Building   string `json:"building"`
	RoomNumber string `json:"roomNumber,omitempty"`
}

// Hours returns a pointer to h, for filling optional hour overrides.
func Hours(h float64) *float64 {
	return &h
}
