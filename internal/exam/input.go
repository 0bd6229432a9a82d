package exam

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FirstYear is the earliest session available on the portal.
const FirstYear = 2005

// Year is a four digit calendar year between FirstYear and the current year.
type Year int

// Month identifies one of the three exam sessions by its calendar month.
type Month int

const (
	February Month = 2
	May      Month = 5
	October  Month = 10
)

// SeasonWord returns the abbreviation the portal uses for the session
// inside file names.
func (m Month) SeasonWord() string {
	switch m {
	case February:
		return "febr"
	case May:
		return "maj"
	case October:
		return "okt"
	}
	return ""
}

// String implements fmt.Stringer.
func (m Month) String() string {
	switch m {
	case February:
		return "february"
	case May:
		return "may"
	case October:
		return "october"
	}
	return strconv.Itoa(int(m))
}

// Level is the difficulty tier, stored as the letter the portal uses.
type Level string

const (
	LevelStandard Level = "k" // középszint
	LevelAdvanced Level = "e" // emelt szint
)

// String implements fmt.Stringer.
func (l Level) String() string {
	return string(l)
}

// Request is a fully normalized (year, session, level) triple.
type Request struct {
	Year  Year
	Month Month
	Level Level
}

// ParseYear normalizes a year against the current calendar year.
func ParseYear(raw string) (Year, error) {
	return ParseYearAt(raw, time.Now())
}

// ParseYearAt normalizes a year, accepting two digit shorthands (0-99 means
// 2000-2099). The result must fall between FirstYear and now's year.
func ParseYearAt(raw string, now time.Time) (Year, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid(FieldYear, raw)
	}

	if value >= 0 && value <= 99 {
		value += 2000
	}
	if value < FirstYear || value > now.Year() {
		return 0, invalid(FieldYear, raw)
	}

	return Year(value), nil
}

// ParseMonth normalizes a session given either as its month number or by
// its Hungarian or English name. Only the first letter of a name counts:
// m(ájus)/t(avasz) mean May, o(któber)/ő(sz) mean October, f(ebruár) means
// February.
func ParseMonth(raw string) (Month, error) {
	trimmed := strings.TrimSpace(raw)

	if value, err := strconv.Atoi(trimmed); err == nil {
		switch m := Month(value); m {
		case February, May, October:
			return m, nil
		}
	}

	switch firstLetter(trimmed) {
	case 'm', 't':
		return May, nil
	case 'o', 'ő':
		return October, nil
	case 'f':
		return February, nil
	}

	return 0, invalid(FieldMonth, raw)
}

// ParseLevel normalizes a level. "k"/"közép"/"mid" select the standard
// level, "e"/"emelt"/"advanced" the advanced one.
func ParseLevel(raw string) (Level, error) {
	switch firstLetter(strings.TrimSpace(raw)) {
	case 'k', 'm':
		return LevelStandard, nil
	case 'e', 'a':
		return LevelAdvanced, nil
	}
	return "", invalid(FieldLevel, raw)
}

// ParseRequest normalizes all three inputs and returns the first failure.
func ParseRequest(year, month, level string) (Request, error) {
	y, err := ParseYear(year)
	if err != nil {
		return Request{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return Request{}, err
	}
	l, err := ParseLevel(level)
	if err != nil {
		return Request{}, err
	}
	return Request{Year: y, Month: m, Level: l}, nil
}

// firstLetter returns the lowercased first rune of s, or utf8.RuneError
// when s is empty.
func firstLetter(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	_, size := utf8.DecodeRuneInString(s)
	// A Caser is stateful, so each call gets its own.
	r, _ := utf8.DecodeRuneInString(cases.Lower(language.Hungarian).String(s[:size]))
	return r
}
