package model

// Schedule is the full set of courses being analysed.
type Schedule struct {
	Courses []Course `json:"courses"`
}

// CourseSectionMeeting points at one section of a schedule together with its
// course and first meeting.
type CourseSectionMeeting struct {
	Course  Course   `json:"course"`
	Section Section  `json:"section"`
	Meeting *Meeting `json:"meeting,omitempty"`
}

// ScheduleCSVRow is one meeting of a flat schedule file. Rows sharing the
// same course and section columns belong to one section.
type ScheduleCSVRow struct {
	Prefix              string  `csv:"prefix"`
	Number              string  `csv:"number"`
	Name                string  `csv:"name"`
	CourseStudentHours  float64 `csv:"course_student_hours"`
	CourseFacultyHours  float64 `csv:"course_faculty_hours"`
	Term                string  `csv:"term"`
	Year                string  `csv:"year"`
	Letter              string  `csv:"letter"`
	Instructors         string  `csv:"instructors"`
	StudentHours        string  `csv:"student_hours"`
	FacultyHours        string  `csv:"faculty_hours"`
	InstructionalMethod string  `csv:"instructional_method"`
	NonTeaching         bool    `csv:"non_teaching"`
	StartTime           string  `csv:"start_time"`
	Duration            int     `csv:"duration"`
	Days                string  `csv:"days"`
	Building            string  `csv:"building"`
	RoomNumber          string  `csv:"room_number"`
}
