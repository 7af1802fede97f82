package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Term is an academic term a section is offered in.
type Term string

const (
	Fall    Term = "Fall"
	Spring  Term = "Spring"
	Summer  Term = "Summer"
	Interim Term = "Interim"
)

// Terms is the canonical term order. Checkbox lists in the non-teaching load
// form are aligned to it.
var Terms = []Term{Fall, Spring, Summer, Interim}

// Bucket is a column group of the faculty loads table.
type Bucket string

const (
	BucketFall   Bucket = "fall"
	BucketSpring Bucket = "spring"
	BucketSummer Bucket = "summer"
	BucketOther  Bucket = "other"
)

// Buckets lists the buckets in table column order.
var Buckets = []Bucket{BucketFall, BucketSpring, BucketSummer, BucketOther}

// TermField holds the term of a section. Teaching sections carry a single
// term, non-teaching sections may carry a list of terms instead.
type TermField struct {
	Values []Term
	List   bool
}

// SingleTerm returns a TermField holding one term.
func SingleTerm(t Term) TermField {
	return TermField{Values: []Term{t}}
}

// TermList returns a TermField holding a list of terms.
func TermList(terms ...Term) TermField {
	return TermField{Values: terms, List: true}
}

// Single returns the term when the field holds exactly one non-list value.
func (f TermField) Single() (Term, bool) {
	if f.List || len(f.Values) != 1 {
		return "", false
	}
	return f.Values[0], true
}

// Is reports whether the field is the single term t.
func (f TermField) Is(t Term) bool {
	v, ok := f.Single()
	return ok && v == t
}

// Contains reports whether t is one of the held terms.
func (f TermField) Contains(t Term) bool {
	for _, v := range f.Values {
		if v == t {
			return true
		}
	}
	return false
}

// String renders the field the way labels show it: a single term as is,
// a list comma-joined.
func (f TermField) String() string {
	var buf bytes.Buffer
	for i, v := range f.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(string(v))
	}
	return buf.String()
}

func (f TermField) MarshalJSON() ([]byte, error) {
	if f.List {
		if f.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.Values)
	}
	if len(f.Values) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(f.Values[0])
}

// UnmarshalJSON accepts either a term string or an array of terms. Entries
// of an array that are not strings (unchecked form boxes) are dropped.
func (f *TermField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = TermField{}
		return nil
	}
	switch data[0] {
	case '"':
		var t Term
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		if t == "" {
			*f = TermField{}
			return nil
		}
		*f = SingleTerm(t)
		return nil
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := TermField{List: true, Values: []Term{}}
		for _, r := range raw {
			if s, ok := r.(string); ok {
				out.Values = append(out.Values, Term(s))
			}
		}
		*f = out
		return nil
	}
	return fmt.Errorf("term: unexpected JSON %s", data)
}
