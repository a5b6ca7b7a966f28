package spacedrep

import "fmt"

// DayLoad is the number of items scheduled on one calendar date.
type DayLoad struct {
	Date  string
	Count int
}

// Upcoming returns the per-day revision load for the days starting at from.
// An item counts on a day if any of its revision dates falls on it.
func Upcoming(s Schedule, from string, days int) ([]DayLoad, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: negative day count %d", ErrInvalidArgument, days)
	}
	if _, err := ParseDate(from); err != nil {
		return nil, err
	}
	loads := make([]DayLoad, 0, days)
	for i := 0; i < days; i++ {
		date, err := AddDays(from, i)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, e := range s.Entries {
			if e.ScheduledOn(date) {
				count++
			}
		}
		loads = append(loads, DayLoad{Date: date, Count: count})
	}
	return loads, nil
}
