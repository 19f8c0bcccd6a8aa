package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Reminder expressions recognized inside comment text, in priority order.
// Day-relative words are matched in both Russian and English.
var (
	dayWordTimeRe = regexp.MustCompile(`(?i)(сегодня|завтра|today|tomorrow)\s+(\d{1,2}):(\d{2})`)
	dateTimeRe    = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\s+(\d{1,2}):(\d{2})`)
	bareTimeRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

var tomorrowWords = map[string]bool{"завтра": true, "tomorrow": true}

// ExtractReminder scans comment text for the first date/time pattern and
// resolves it to an absolute timestamp in loc. The matched substring is
// removed from the returned comment. A nil timestamp means no valid pattern
// was found; malformed time values are deliberately inert, not errors.
//
// The returned timestamp is the literal stated time; the dispatch lead offset
// belongs to the scheduler.
func ExtractReminder(comment string, now time.Time, loc *time.Location) (string, *time.Time) {
	now = now.In(loc)

	if m := dayWordTimeRe.FindStringSubmatchIndex(comment); m != nil {
		word := strings.ToLower(comment[m[2]:m[3]])
		hour, minute, ok := parseClock(comment[m[4]:m[5]], comment[m[6]:m[7]])
		if ok {
			day := now
			if tomorrowWords[word] {
				day = day.AddDate(0, 0, 1)
			}
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
			return cutMatch(comment, m[0], m[1]), &at
		}
	}

	if m := dateTimeRe.FindStringSubmatchIndex(comment); m != nil {
		day, _ := strconv.Atoi(comment[m[2]:m[3]])
		month, _ := strconv.Atoi(comment[m[4]:m[5]])
		hour, minute, ok := parseClock(comment[m[6]:m[7]], comment[m[8]:m[9]])
		if ok && validCalendarDay(day, month) {
			at := time.Date(now.Year(), time.Month(month), day, hour, minute, 0, 0, loc)
			// Date without a year means the next occurrence of it.
			if !at.After(now) {
				at = time.Date(now.Year()+1, time.Month(month), day, hour, minute, 0, 0, loc)
			}
			if at.Day() == day && at.Month() == time.Month(month) {
				return cutMatch(comment, m[0], m[1]), &at
			}
		}
	}

	if m := bareTimeRe.FindStringSubmatchIndex(comment); m != nil {
		hour, minute, ok := parseClock(comment[m[2]:m[3]], comment[m[4]:m[5]])
		if ok {
			at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
			// A time already past today means tomorrow.
			if !at.After(now) {
				at = at.AddDate(0, 0, 1)
			}
			return cutMatch(comment, m[0], m[1]), &at
		}
	}

	return comment, nil
}

func parseClock(hh, mm string) (hour, minute int, ok bool) {
	hour, _ = strconv.Atoi(hh)
	minute, _ = strconv.Atoi(mm)
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func validCalendarDay(day, month int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12
}

// cutMatch removes comment[start:end] and collapses the whitespace left
// around the cut.
func cutMatch(comment string, start, end int) string {
	before := strings.TrimRight(comment[:start], " \t")
	after := strings.TrimLeft(comment[end:], " \t")
	switch {
	case before == "":
		return after
	case after == "":
		return before
	default:
		return before + " " + after
	}
}
