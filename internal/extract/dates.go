// Package extract provides pattern-based feature extraction over raw text:
// date mentions, monetary amounts, named entities and action items. All
// entry points are pure over their inputs; the only shared state is the
// lazily-initialized language model.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"dayplan/models"
)

type dateFormat int

const (
	formatNumeric dateFormat = iota // MM/DD/YYYY or DD/MM/YYYY
	formatISO                       // YYYY-MM-DD
	formatDayMonth                  // DD Month YYYY
	formatMonthDay                  // Month DD, YYYY
	formatRelative                  // today, tomorrow, next week, ...
	formatWeekday                   // Monday ... Sunday
)

var datePatterns = []struct {
	re     *regexp.Regexp
	format dateFormat
}{
	{regexp.MustCompile(`(?i)\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`), formatNumeric},
	{regexp.MustCompile(`(?i)\d{4}[/-]\d{1,2}[/-]\d{1,2}`), formatISO},
	{regexp.MustCompile(`(?i)\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}`), formatDayMonth},
	{regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{2,4}`), formatMonthDay},
	{regexp.MustCompile(`(?i)today|tomorrow|yesterday|next week|next month`), formatRelative},
	{regexp.MustCompile(`(?i)Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday`), formatWeekday},
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

// DateExtractor finds date mentions in text. Relative phrases resolve
// against Now, injected so callers get deterministic output.
type DateExtractor struct {
	Now func() time.Time
}

// NewDateExtractor returns a DateExtractor anchored at the given clock;
// a nil clock means time.Now.
func NewDateExtractor(now func() time.Time) *DateExtractor {
	if now == nil {
		now = time.Now
	}
	return &DateExtractor{Now: now}
}

// ExtractDates applies the ordered pattern list and returns every match
// that resolves to a timestamp. Absolute patterns get confidence 0.8,
// relative phrases 0.6. Unparsable matches are dropped.
func (e *DateExtractor) ExtractDates(text string) []models.ExtractedDate {
	var dates []models.ExtractedDate
	now := e.Now()

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			parsed, ok := parseDate(matched, p.format, now)
			if !ok {
				continue
			}
			confidence := 0.8
			if p.format == formatRelative {
				confidence = 0.6
			}
			dates = append(dates, models.ExtractedDate{
				Text:       matched,
				Parsed:     &parsed,
				Start:      loc[0],
				End:        loc[1],
				Confidence: confidence,
			})
		}
	}
	return dates
}

func parseDate(text string, format dateFormat, now time.Time) (time.Time, bool) {
	switch format {
	case formatNumeric:
		return parseNumericDate(text, false)
	case formatISO:
		return parseNumericDate(text, true)
	case formatDayMonth, formatMonthDay:
		return parseMonthNameDate(text)
	case formatRelative:
		return parseRelativeDate(text, now)
	case formatWeekday:
		return parseWeekday(text, now)
	}
	return time.Time{}, false
}

// parseNumericDate handles MM/DD/YYYY (month first, swapping when the
// first field cannot be a month) and YYYY-MM-DD forms with - or /
// separators and 2- or 4-digit years.
func parseNumericDate(text string, yearFirst bool) (time.Time, bool) {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	if yearFirst {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		month, day, year = nums[0], nums[1], nums[2]
		if month > 12 && day <= 12 {
			month, day = day, month
		}
	}
	if year < 100 {
		year += 2000
	}
	return makeDate(year, month, day)
}

func parseMonthNameDate(text string) (time.Time, bool) {
	cleaned := strings.ReplaceAll(text, ",", " ")
	fields := strings.Fields(cleaned)
	if len(fields) != 3 {
		return time.Time{}, false
	}

	var month time.Month
	var monthIdx = -1
	for i, f := range fields {
		prefix := strings.ToLower(f)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		if m, ok := monthsByPrefix[prefix]; ok {
			month = m
			monthIdx = i
			break
		}
	}
	if monthIdx == -1 {
		return time.Time{}, false
	}

	var numeric []int
	for i, f := range fields {
		if i == monthIdx {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, false
		}
		numeric = append(numeric, n)
	}
	if len(numeric) != 2 {
		return time.Time{}, false
	}

	day, year := numeric[0], numeric[1]
	if year < 100 {
		year += 2000
	}
	return makeDate(year, int(month), day)
}

func parseRelativeDate(text string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(text) {
	case "today":
		return now, true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "next week":
		return now.AddDate(0, 0, 7), true
	case "next month":
		return now.AddDate(0, 0, 30), true
	}
	return time.Time{}, false
}

// parseWeekday resolves a weekday name to its next occurrence strictly
// after today; a name matching today advances a full week.
func parseWeekday(text string, now time.Time) (time.Time, bool) {
	target, ok := weekdaysByName[strings.ToLower(text)]
	if !ok {
		return time.Time{}, false
	}
	daysAhead := int(target) - int(now.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return now.AddDate(0, 0, daysAhead), true
}

// makeDate rejects out-of-range components rather than letting time.Date
// normalize them into a different day.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}
