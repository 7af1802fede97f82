package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTermOrder(t *testing.T) {
	assert.Equal(t, []Term{Fall, Spring, Summer, Interim}, Terms)
}

func TestTermFieldJSON(t *testing.T) {
	var s Section
	require.NoError(t, json.Unmarshal([]byte(`{"term":"Fall","year":2024}`), &s))
	assert.True(t, s.Term.Is(Fall))
	assert.False(t, s.Term.List)
	n, ok := s.Year.Number()
	assert.True(t, ok)
	assert.Equal(t, 2024, n)

	require.NoError(t, json.Unmarshal([]byte(`{"term":["Fall",false,"Summer",false],"year":"2025"}`), &s))
	assert.True(t, s.Term.List)
	assert.Equal(t, []Term{Fall, Summer}, s.Term.Values)
	assert.False(t, s.Term.Is(Fall))
	assert.True(t, s.Term.Contains(Summer))
	assert.Equal(t, "Fall,Summer", s.Term.String())
	enc, ok := s.Year.Encoded()
	assert.True(t, ok)
	assert.Equal(t, "2025", enc)

	out, err := json.Marshal(s.Term)
	require.NoError(t, err)
	assert.JSONEq(t, `["Fall","Summer"]`, string(out))
	out, err = json.Marshal(SingleTerm(Spring))
	require.NoError(t, err)
	assert.Equal(t, `"Spring"`, string(out))
}

func TestYearJSONKeepsRepresentation(t *testing.T) {
	out, err := json.Marshal([]Year{NumericYear(2024), EncodedYear("2024")})
	require.NoError(t, err)
	assert.Equal(t, `[2024,"2024"]`, string(out))
}

func TestCheckboxTermJSON(t *testing.T) {
	var boxes []CheckboxTerm
	require.NoError(t, json.Unmarshal([]byte(`["Fall",false,false,"Interim"]`), &boxes))
	assert.Equal(t, []CheckboxTerm{Checked(Fall), Unchecked, Unchecked, Checked(Interim)}, boxes)
	out, err := json.Marshal(boxes)
	require.NoError(t, err)
	assert.Equal(t, `["Fall",false,false,"Interim"]`, string(out))
}

func TestFacultyRowSumHours(t *testing.T) {
	r := FacultyRow{Faculty: "Lee", FallHours: Hours(1.5), OtherHours: Hours(2)}
	assert.InDelta(t, 3.5, r.SumHours(), 1e-9)
	assert.Zero(t, r.Hours(BucketSpring))
	assert.Nil(t, r.HoursField(Bucket("winter")))
}

func TestCourseHasCode(t *testing.T) {
	assert.True(t, (&Course{Prefixes: []string{"CS"}}).HasCode())
	assert.True(t, (&Course{Number: "101"}).HasCode())
	assert.False(t, (&Course{Prefixes: []string{""}}).HasCode())
	assert.False(t, (&Course{}).HasCode())
}
