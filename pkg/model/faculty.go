package model

// FacultyRow is the load summary of one faculty member. Hour fields are nil
// until a section of the matching bucket is seen.
type FacultyRow struct {
	Faculty              string   `json:"faculty" csv:"Faculty"`
	TotalHours           float64  `json:"totalHours" csv:"Total Hours"`
	FallCourseSections   string   `json:"fallCourseSections,omitempty" csv:"Fall Course Sections"`
	FallHours            *float64 `json:"fallHours,omitempty" csv:"Fall Hours"`
	SpringCourseSections string   `json:"springCourseSections,omitempty" csv:"Spring Course Sections"`
	SpringHours          *float64 `json:"springHours,omitempty" csv:"Spring Hours"`
	SummerCourseSections string   `json:"summerCourseSections,omitempty" csv:"Summer Course Sections"`
	SummerHours          *float64 `json:"summerHours,omitempty" csv:"Summer Hours"`
	OtherDuties          string   `json:"otherDuties,omitempty" csv:"Other Duties"`
	OtherHours           *float64 `json:"otherHours,omitempty" csv:"Other Hours"`
	LoadNotes            string   `json:"loadNotes,omitempty" csv:"Load Notes"`
}

// HoursField returns the hours field of bucket b.
func (r *FacultyRow) HoursField(b Bucket) **float64 {
	switch b {
	case BucketFall:
		return &r.FallHours
	case BucketSpring:
		return &r.SpringHours
	case BucketSummer:
		return &r.SummerHours
	case BucketOther:
		return &r.OtherHours
	}
	return nil
}

// SectionsField returns the section names field of bucket b.
func (r *FacultyRow) SectionsField(b Bucket) *string {
	switch b {
	case BucketFall:
		return &r.FallCourseSections
	case BucketSpring:
		return &r.SpringCourseSections
	case BucketSummer:
		return &r.SummerCourseSections
	case BucketOther:
		return &r.OtherDuties
	}
	return nil
}

// Hours returns the hours of bucket b, 0 when unset.
func (r *FacultyRow) Hours(b Bucket) float64 {
	f := r.HoursField(b)
	if f == nil || *f == nil {
		return 0
	}
	return **f
}

// SumHours adds up the four bucket hour fields.
func (r *FacultyRow) SumHours() float64 {
	var total float64
	for _, b := range Buckets {
		total += r.Hours(b)
	}
	return total
}
