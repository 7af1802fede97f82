package csvio

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

// Layouts accepted for meeting start times.
var startTimeLayouts = []string{"3:04 PM", "3:04PM", "3:04:05 PM", "3:04:05PM", "15:04", "15:04:05"}

const clockLayout = "3:04PM"

// TermLabel returns the academic-year/term label of a section, e.g. "24/Fall".
//
// Numeric years are calendar years: fall keeps the year, later terms belong
// to the academic year named after the following calendar year. Encoded years
// already name the academic year: fall uses the previous year's digits and the
// other terms use the digits as given.
func TermLabel(section *model.Section) string {
	fall := section.Term.Is(model.Fall)
	var yy string
	if n, ok := section.Year.Number(); ok {
		if fall {
			yy = lastTwo(strconv.Itoa(n))
		} else {
			yy = lastTwo(strconv.Itoa(n + 1))
		}
	} else {
		encoded, _ := section.Year.Encoded()
		yy = lastTwo(encoded)
		if fall {
			yy = previousYearDigits(yy)
		}
	}
	return yy + "/" + section.Term.String()
}

func lastTwo(s string) string {
	if len(s) <= 2 {
		return s
	}
	return s[len(s)-2:]
}

// previousYearDigits subtracts one from a two digit year without padding:
// "24" gives "23", "10" gives "9". Unparsable digits give "NaN".
func previousYearDigits(yy string) string {
	yy = strings.TrimSpace(yy)
	if yy == "" {
		return "-1"
	}
	v, err := strconv.ParseFloat(yy, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v-1, 'f', -1, 64)
}

// ParseStartTime parses a 12-hour clock time such as "9:00 AM". 24-hour
// times are accepted as well.
func ParseStartTime(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MeetingTimeLabel renders "9:00AM - 9:50AM\n". An unparsable start yields
// a bare line break.
func MeetingTimeLabel(start string, durationMinutes int) string {
	t, ok := ParseStartTime(start)
	if !ok {
		return "\n"
	}
	end := t.Add(time.Duration(durationMinutes) * time.Minute)
	return t.Format(clockLayout) + " - " + end.Format(clockLayout) + "\n"
}

// Fixed2 renders v with exactly two decimals. Values exactly halfway between
// two cents round away from zero.
func Fixed2(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	scaled := new(big.Float).SetPrec(256).SetFloat64(v)
	scaled.Mul(scaled, big.NewFloat(100))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Abs(frac).Cmp(big.NewFloat(0.5)) == 0 {
		s, _ := scaled.Float64()
		return strconv.FormatFloat(math.Round(s)/100, 'f', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
