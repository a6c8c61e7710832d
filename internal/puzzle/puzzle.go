package puzzle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://adventofcode.com"
	MinDay         = 1
	MaxDay         = 31
)

// Day is a day of the month identifying one puzzle
type Day int

// Pad returns the day zero-padded to two digits ("03")
func (d Day) Pad() string {
	return fmt.Sprintf("%02d", int(d))
}

// Validate checks that the day is a valid day of the month
func (d Day) Validate() error {
	if d < MinDay || d > MaxDay {
		return fmt.Errorf("invalid day %d: must be between %d and %d", int(d), MinDay, MaxDay)
	}
	return nil
}

// ParseDay parses a day number such as "3" or "03"
func ParseDay(s string) (Day, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parsing day %q: %w", s, err)
	}
	d := Day(n)
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d, nil
}

// DayFromDate returns the day of the month of t
func DayFromDate(t time.Time) Day {
	return Day(t.Day())
}

// Puzzle identifies one day's puzzle on the website
type Puzzle struct {
	Year int
	Day  Day
}

// New creates a Puzzle for the given year and day
func New(year int, day Day) (Puzzle, error) {
	if year < 2015 {
		return Puzzle{}, fmt.Errorf("invalid year %d", year)
	}
	if err := day.Validate(); err != nil {
		return Puzzle{}, err
	}
	return Puzzle{Year: year, Day: day}, nil
}

// DescriptionURL returns the URL of the puzzle description page
func (p Puzzle) DescriptionURL(baseURL string) string {
	return fmt.Sprintf("%s/%d/day/%d", strings.TrimRight(baseURL, "/"), p.Year, int(p.Day))
}

// InputURL returns the URL of the raw puzzle input
func (p Puzzle) InputURL(baseURL string) string {
	return p.DescriptionURL(baseURL) + "/input"
}

func (p Puzzle) String() string {
	return fmt.Sprintf("%d day %s", p.Year, p.Day.Pad())
}
