package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultMinYear is the earliest year accepted as a transaction date. Older
// parses are almost always reference numbers read as dates.
const DefaultMinYear = 2010

const monthAlt = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Pre-filter evidence: a cell must show one of these before a parse is tried.
var (
	monthToken   = regexp.MustCompile(`(?:` + monthAlt + `)`)
	fourDigitYr  = regexp.MustCompile(`\b\d{4}\b`)
	dateSepToken = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`)
	timeOfDay    = regexp.MustCompile(`^[\d\s:]*(?:am|pm)[\d\s:]*$`)
	nullTokens   = regexp.MustCompile(`\b(?:nan|none)\b`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Candidate date layouts, tried together; the leftmost match wins.
var (
	// 2024-01-05, 2024/01/05
	isoDate = regexp.MustCompile(`(?:^|\D)(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})(?:[^\d:]|$)`)
	// 05/01/2024, 5-1-24 (day first)
	numDate = regexp.MustCompile(`(?:^|\D)(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})(?:[^\d:]|$)`)
	// 5 Jan 2024, 05-Jan-24, 5th January, 2024
	dayMonthYear = regexp.MustCompile(`(?:^|\D)(\d{1,2})(?:st|nd|rd|th)?[\s\-/.,]*(` + monthAlt +
		`)[a-z]*\.?[\s\-/.,]*(\d{4}|'\d{2}|\d{2})(?:[^\d:]|$)`)
	// Jan 5, 2024, January 5 2024
	monthDayYear = regexp.MustCompile(`(?:^|[^a-z])(` + monthAlt +
		`)[a-z]*\.?[\s\-/.]*(\d{1,2})(?:st|nd|rd|th)?(?:,\s*|[\s\-/.]+)(\d{4})(?:[^\d:]|$)`)
)

// DateParser normalizes date cells. The zero value uses DefaultMinYear.
type DateParser struct {
	MinYear int
}

// NewDateParser returns a parser that rejects years before minYear.
func NewDateParser(minYear int) DateParser {
	return DateParser{MinYear: minYear}
}

// Date parses a cell with the default year floor.
func Date(cell string) (time.Time, bool) {
	return DateParser{}.Parse(cell)
}

// Parse extracts the first day-first calendar date from a cell, ignoring
// surrounding text. It returns false for cells without date evidence,
// time-of-day values, dates lacking a day or year, and dates before the
// year floor.
func (p DateParser) Parse(cell string) (t time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()

	s := cleanDateCell(cell)
	if s == "" {
		return time.Time{}, false
	}
	if !LooksLikeDate(s) || timeOfDay.MatchString(s) {
		return time.Time{}, false
	}

	t, ok = fuzzyDate(s)
	if !ok || t.Year() < p.minYear() {
		return time.Time{}, false
	}
	return t, true
}

func (p DateParser) minYear() int {
	if p.MinYear == 0 {
		return DefaultMinYear
	}
	return p.MinYear
}

func cleanDateCell(cell string) string {
	s := strings.ToLower(strings.TrimSpace(Fold(cell)))
	s = nullTokens.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LooksLikeDate reports whether a cleaned, lower-cased string carries any
// date evidence: a month abbreviation, a four-digit year, or d/m/y digits.
func LooksLikeDate(s string) bool {
	return monthToken.MatchString(s) || fourDigitYr.MatchString(s) || dateSepToken.MatchString(s)
}

// HasYearOrMonth reports whether s looks like the continuation of a date
// split across cells, e.g. the "2024" after a "Jan 5" cell.
func HasYearOrMonth(s string) bool {
	s = strings.ToLower(s)
	return fourDigitYr.MatchString(s) || monthToken.MatchString(s)
}

type dateMatch struct {
	start   int
	y, m, d string
	month   string // textual month, if any
}

func fuzzyDate(s string) (time.Time, bool) {
	var best *dateMatch
	consider := func(dm dateMatch) {
		if best == nil || dm.start < best.start {
			best = &dm
		}
	}

	if m := isoDate.FindStringSubmatchIndex(s); m != nil {
		consider(dateMatch{start: m[2], y: s[m[2]:m[3]], m: s[m[4]:m[5]], d: s[m[6]:m[7]]})
	}
	if m := numDate.FindStringSubmatchIndex(s); m != nil {
		consider(dateMatch{start: m[2], d: s[m[2]:m[3]], m: s[m[4]:m[5]], y: s[m[6]:m[7]]})
	}
	if m := dayMonthYear.FindStringSubmatchIndex(s); m != nil {
		consider(dateMatch{start: m[2], d: s[m[2]:m[3]], month: s[m[4]:m[5]], y: s[m[6]:m[7]]})
	}
	if m := monthDayYear.FindStringSubmatchIndex(s); m != nil {
		consider(dateMatch{start: m[2], month: s[m[2]:m[3]], d: s[m[4]:m[5]], y: s[m[6]:m[7]]})
	}
	if best == nil {
		return time.Time{}, false
	}
	return best.date()
}

func (dm dateMatch) date() (time.Time, bool) {
	day, err := strconv.Atoi(dm.d)
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimPrefix(dm.y, "'"))
	if err != nil {
		return time.Time{}, false
	}
	if len(strings.TrimPrefix(dm.y, "'")) <= 2 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}

	var month int
	if dm.month != "" {
		month = int(months[dm.month])
	} else {
		month, err = strconv.Atoi(dm.m)
		if err != nil {
			return time.Time{}, false
		}
		// Day-first, unless the month slot cannot be a month.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
	}
	return makeDate(year, month, day)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// leadingMonthDate matches a "Jan 5, 2024" prefix crammed into a longer cell.
var leadingMonthDate = regexp.MustCompile(`(?i)^\s*((?:` + monthAlt + `)[a-z]*\.?\s+\d{1,2},?\s+\d{4})\b\s*(.*)$`)

// leadingDate matches any supported date layout at the start of a cell.
var leadingDate = regexp.MustCompile(`(?i)^\s*(?:` +
	`\d{4}[-/.]\d{1,2}[-/.]\d{1,2}` +
	`|\d{1,2}[-/.]\d{1,2}[-/.](?:\d{4}|\d{2})` +
	`|\d{1,2}(?:st|nd|rd|th)?[\s\-/.,]*(?:` + monthAlt + `)[a-z]*\.?[\s\-/.,]*(?:\d{4}|'?\d{2})` +
	`|(?:` + monthAlt + `)[a-z]*\.?\s+\d{1,2},?\s+\d{4}` +
	`)\b[\s,:\-]*`)

// PeelLeadingDate splits a cell that starts with a "Mon d, yyyy" date into
// the date and the remaining text.
func (p DateParser) PeelLeadingDate(cell string) (time.Time, string, bool) {
	m := leadingMonthDate.FindStringSubmatch(Fold(cell))
	if m == nil {
		return time.Time{}, "", false
	}
	t, ok := p.Parse(m[1])
	if !ok {
		return time.Time{}, "", false
	}
	return t, strings.TrimSpace(m[2]), true
}

// StripLeadingDate removes a date prefix of any supported layout.
func StripLeadingDate(cell string) string {
	s := Fold(cell)
	if loc := leadingDate.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return strings.TrimSpace(s)
}
