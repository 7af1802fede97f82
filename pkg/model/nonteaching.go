package model

import (
	"bytes"
	"encoding/json"
)

// CheckboxTerm is one entry of the term checkbox list: the term when checked,
// false otherwise.
type CheckboxTerm struct {
	Term    Term
	Checked bool
}

// Unchecked is the false entry of a checkbox list.
var Unchecked = CheckboxTerm{}

// Checked returns a checked entry for t.
func Checked(t Term) CheckboxTerm {
	return CheckboxTerm{Term: t, Checked: true}
}

func (c CheckboxTerm) MarshalJSON() ([]byte, error) {
	if !c.Checked {
		return []byte("false"), nil
	}
	return json.Marshal(c.Term)
}

func (c *CheckboxTerm) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*c = Unchecked
		return nil
	}
	var t Term
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	if t == "" {
		*c = Unchecked
		return nil
	}
	*c = Checked(t)
	return nil
}

// NonTeachingLoadInput is the add/edit form of a non-teaching load.
type NonTeachingLoadInput struct {
	Activity     string         `json:"activity" validate:"required"`
	FacultyHours *float64       `json:"facultyHours,omitempty" validate:"omitempty,gte=0"`
	Instructor   []string       `json:"instructor" validate:"required,min=1,dive,required"`
	Terms        []CheckboxTerm `json:"terms"`
}
