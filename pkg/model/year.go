package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Year is either a calendar year number or an academic-year string such as
// "2024" or "2023-2024". The two forms are labelled differently, see
// csvio.TermLabel.
type Year struct {
	num     int
	encoded string
	isText  bool
}

// NumericYear returns a Year holding a calendar year number.
func NumericYear(y int) Year {
	return Year{num: y}
}

// EncodedYear returns a Year holding an academic-year string.
func EncodedYear(s string) Year {
	return Year{encoded: s, isText: true}
}

// Number returns the numeric year and true for numeric years.
func (y Year) Number() (int, bool) {
	return y.num, !y.isText
}

// Encoded returns the year string and true for encoded years.
func (y Year) Encoded() (string, bool) {
	return y.encoded, y.isText
}

func (y Year) String() string {
	if y.isText {
		return y.encoded
	}
	return strconv.Itoa(y.num)
}

func (y Year) MarshalJSON() ([]byte, error) {
	if y.isText {
		return json.Marshal(y.encoded)
	}
	return []byte(strconv.Itoa(y.num)), nil
}

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = Year{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = EncodedYear(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = NumericYear(n)
	return nil
}
