package catalog

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Period is a named segment of the school year.
type Period string

const (
	PeriodYearStart      Period = "year-start"      // 학년초 (3월)
	PeriodSemester1      Period = "semester1"       // 1학기 (4-6월)
	PeriodSemester1End   Period = "semester1-end"   // 1학기말 (7월)
	PeriodSemester2Start Period = "semester2-start" // 2학기초 (8-9월)
	PeriodSemester2      Period = "semester2"       // 2학기 (10-11월)
	PeriodSemester2End   Period = "semester2-end"   // 2학기말 (12월)
	PeriodYearEnd        Period = "year-end"        // 학년말 (1-2월)
	PeriodAlways         Period = "always"          // 수시
)

var (
	ErrUnknownPeriod = errors.New("unknown period")

	// ActivePeriods are the periods shown as tabs, in school-year order. PeriodAlways is not one of them.
	ActivePeriods = []Period{
		PeriodYearStart,
		PeriodSemester1,
		PeriodSemester1End,
		PeriodSemester2Start,
		PeriodSemester2,
		PeriodSemester2End,
		PeriodYearEnd,
	}

	periodLabels = map[Period]string{
		PeriodYearStart:      "학년초 (3월)",
		PeriodSemester1:      "1학기 (4~6월)",
		PeriodSemester1End:   "1학기말 (7월)",
		PeriodSemester2Start: "2학기초 (8~9월)",
		PeriodSemester2:      "2학기 (10~11월)",
		PeriodSemester2End:   "2학기말 (12월)",
		PeriodYearEnd:        "학년말 (1~2월)",
		PeriodAlways:         "수시",
	}

	periodShortLabels = map[Period]string{
		PeriodYearStart:      "학년초",
		PeriodSemester1:      "1학기",
		PeriodSemester1End:   "1학기말",
		PeriodSemester2Start: "2학기초",
		PeriodSemester2:      "2학기",
		PeriodSemester2End:   "2학기말",
		PeriodYearEnd:        "학년말",
		PeriodAlways:         "수시",
	}

	// monthPeriods maps month-1 to its period.
	monthPeriods = [12]Period{
		PeriodYearEnd,        // 1
		PeriodYearEnd,        // 2
		PeriodYearStart,      // 3
		PeriodSemester1,      // 4
		PeriodSemester1,      // 5
		PeriodSemester1,      // 6
		PeriodSemester1End,   // 7
		PeriodSemester2Start, // 8
		PeriodSemester2Start, // 9
		PeriodSemester2,      // 10
		PeriodSemester2,      // 11
		PeriodSemester2End,   // 12
	}
)

func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

func (p Period) Label() string      { return periodLabels[p] }
func (p Period) ShortLabel() string { return periodShortLabels[p] }
func (p Period) String() string     { return string(p) }

// ParsePeriod returns the Period named `s`.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", errors.Wrapf(ErrUnknownPeriod, "%q", s)
	}
	return p, nil
}

// ResolvePeriod maps a calendar month (1..12) to its active period.
// Months come from the system clock, so an out-of-range month is a programming error and panics.
func ResolvePeriod(month int) Period {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("catalog.ResolvePeriod: month %d out of range", month))
	}
	return monthPeriods[month-1]
}

// CurrentPeriod resolves the period of `now`, in now's location.
func CurrentPeriod(now time.Time) Period {
	return ResolvePeriod(int(now.Month()))
}
