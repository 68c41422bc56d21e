package transform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRange(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"202537", "09.08~09.14"},
		{"202501", "12.30~01.05"}, // week 1 starts in the previous year
		{"202601", "12.29~01.04"},
		{"202053", "12.28~01.03"}, // 53-week year, ends in the next year
		{"201901", "12.31~01.06"},
		{"202101", "01.04~01.10"}, // Jan 4th is a Monday
		{"202452", "12.23~12.29"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekRange(tc.code))
		})
	}
}

func TestWeekRangePassThrough(t *testing.T) {
	for _, code := range []string{"", "2025", "2025370", "2025ab", "abcdef", "2025-1", "000001", "20253 "} {
		assert.Equal(t, code, WeekRange(code), "code %q", code)
	}
}

func TestWeekRangeSpansSixDays(t *testing.T) {
	for year := 2015; year <= 2030; year++ {
		for week := 1; week <= 53; week++ {
			code := fmt.Sprintf("%04d%02d", year, week)
			monday, ok := isoWeekMonday(code)
			require.True(t, ok, code)
			assert.Equal(t, time.Monday, monday.Weekday(), code)

			got := WeekRange(code)
			require.Len(t, got, len("MM.DD~MM.DD"), code)
			assert.Equal(t, byte('~'), got[5])
			assert.Equal(t, monday.AddDate(0, 0, 6).Format(weekRangeLayout), got[6:])
		}
	}
}

func TestFirstWeekMondayBounds(t *testing.T) {
	for year := 2000; year <= 2040; year++ {
		code := fmt.Sprintf("%04d01", year)
		monday, ok := isoWeekMonday(code)
		require.True(t, ok)

		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		dec29 := time.Date(year-1, time.December, 29, 0, 0, 0, 0, time.UTC)
		assert.False(t, monday.After(jan4), code)
		assert.False(t, monday.Before(dec29), code)

		isoYear, isoWeek := monday.ISOWeek()
		assert.Equal(t, year, isoYear)
		assert.Equal(t, 1, isoWeek)
	}
}
