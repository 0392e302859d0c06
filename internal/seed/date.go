package seed

import (
	"fmt"
	"regexp"
	"time"

	"github.com/roach88/wordseed/internal/model"
)

// maxRangeDays bounds DateRange so a typo cannot request decades of seeds.
const maxRangeDays = 366

var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ParseDate parses a strict YYYY-MM-DD calendar date.
// Impossible dates such as 2025-02-30 are rejected.
func ParseDate(date string) (time.Time, error) {
	if !datePattern.MatchString(date) {
		return time.Time{}, model.NewValidationError("seed.ParseDate", fmt.Sprintf("date %q must be formatted YYYY-MM-DD", date))
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil || t.Format(time.DateOnly) != date {
		return time.Time{}, model.NewValidationError("seed.ParseDate", fmt.Sprintf("date %q is not a real calendar date", date))
	}
	return t, nil
}

// DateRange returns every date from first through last inclusive.
func DateRange(first, last string) ([]string, error) {
	from, err := ParseDate(first)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(last)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, model.NewValidationError("seed.DateRange", fmt.Sprintf("range end %s is before start %s", last, first))
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(dates) == maxRangeDays {
			return nil, model.NewValidationError("seed.DateRange", fmt.Sprintf("range exceeds %d days", maxRangeDays))
		}
		dates = append(dates, d.Format(time.DateOnly))
	}
	return dates, nil
}
