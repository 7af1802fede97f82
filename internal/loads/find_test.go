package loads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

func TestFindSection(t *testing.T) {
	schedule := &model.Schedule{Courses: []model.Course{cs101()}}

	found, err := FindSection(schedule, "CS-101-A", model.Fall)
	require.NoError(t, err)
	assert.Equal(t, "101", found.Course.Number)
	assert.Equal(t, "A", found.Section.Letter)
	require.NotNil(t, found.Meeting)
	assert.Equal(t, "9:00 AM", found.Meeting.StartTime)

	_, err = FindSection(schedule, "CS-101-A", model.Spring)
	assert.ErrorIs(t, err, ErrSectionNotFound)
	_, err = FindSection(schedule, "CS-101-B", model.Fall)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestFindSectionWithoutMeetings(t *testing.T) {
	course := cs101()
	course.Sections[0].Meetings = nil
	found, err := FindSection(&model.Schedule{Courses: []model.Course{course}}, "CS-101-A", model.Fall)
	require.NoError(t, err)
	assert.Nil(t, found.Meeting)
}

func TestFindCellSectionFallsBackToInterim(t *testing.T) {
	course := cs101()
	course.Sections[0].Term = model.SingleTerm(model.Interim)
	schedule := &model.Schedule{Courses: []model.Course{course}}

	found, err := FindCellSection(schedule, "CS-101-A, CS-102-B", model.BucketSummer)
	require.NoError(t, err)
	assert.True(t, found.Section.Term.Is(model.Interim))

	_, err = FindCellSection(schedule, "CS-101-A", model.BucketFall)
	assert.ErrorIs(t, err, ErrSectionNotFound)
	_, err = FindCellSection(schedule, "Committee Work (2)", model.BucketOther)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestLookupOrder(t *testing.T) {
	assert.Equal(t, []model.Term{model.Summer, model.Interim}, LookupOrder(model.BucketSummer))
	assert.Equal(t, []model.Term{model.Fall}, LookupOrder(model.BucketFall))
	assert.Equal(t, []model.Term{model.Spring}, LookupOrder(model.BucketSpring))
	assert.Empty(t, LookupOrder(model.BucketOther))
}

func TestFirstLabel(t *testing.T) {
	assert.Equal(t, "CS-101-A", FirstLabel("CS-101-A, CS-201-B"))
	assert.Equal(t, "CS-101-A", FirstLabel("CS-101-A"))
	assert.Equal(t, "", FirstLabel(""))
}
