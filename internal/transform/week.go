package transform

import (
	"strconv"
	"time"
)

const weekRangeLayout = "01.02"

// WeekRange turns an ISO year-week code such as "202537" into the
// Monday~Sunday range "09.08~09.14". Codes that cannot be parsed are
// returned unchanged.
func WeekRange(code string) string {
	monday, ok := isoWeekMonday(code)
	if !ok {
		return code
	}
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(weekRangeLayout) + "~" + sunday.Format(weekRangeLayout)
}

func isoWeekMonday(code string) (time.Time, bool) {
	if len(code) != 6 {
		return time.Time{}, false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return time.Time{}, false
		}
	}
	year, err := strconv.Atoi(code[:4])
	if err != nil || year < 1 {
		return time.Time{}, false
	}
	week, err := strconv.Atoi(code[4:])
	if err != nil {
		return time.Time{}, false
	}

	// January 4th always falls in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	firstMonday := jan4.AddDate(0, 0, -sinceMonday)
	return firstMonday.AddDate(0, 0, 7*(week-1)), true
}
