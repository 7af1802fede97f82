package loads

import (
	"github.com/rhyrak/go-facultyload/pkg/model"
)

// Classify returns the loads table bucket of a section. Non-teaching sections
// always go to the other bucket. ok is false when a teaching section's term
// matches no bucket.
func Classify(section *model.Section) (bucket model.Bucket, ok bool) {
	if section.IsNonTeaching {
		return model.BucketOther, true
	}
	term, single := section.Term.Single()
	if !single {
		return "", false
	}
	switch term {
	case model.Fall:
		return model.BucketFall, true
	case model.Spring:
		return model.BucketSpring, true
	case model.Summer, model.Interim:
		return model.BucketSummer, true
	}
	return "", false
}
