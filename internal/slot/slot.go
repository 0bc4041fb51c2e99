// Package slot finds the next free one-hour appointment slot for a day.
package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Business hours: slots start on the hour from opening up to (but not
// including) closing. The lunch hour is never bookable.
const (
	OpeningHour = 8
	ClosingHour = 19
	LunchHour   = 12
)

var (
	ErrPastDate     = errors.New("cannot book appointments for past dates")
	ErrTooLateToday = errors.New("cannot book appointments after closing today")
	ErrFullyBooked  = errors.New("all slots for the date are booked")
)

// Label formats the one-hour slot starting at hour, e.g. "09:00 to 10:00".
func Label(hour int) string {
	return fmt.Sprintf("%02d:00 to %02d:00", hour, hour+1)
}

// StartOf returns the "HH:MM" start of a slot label. Labels that do not
// contain " to " are returned as-is so malformed rows never match a
// candidate.
func StartOf(label string) string {
	start, _, _ := strings.Cut(label, " to ")
	return start
}

// Labels enumerates every bookable slot label for a day, in order.
func Labels() []string {
	var out []string
	for h := OpeningHour; h < ClosingHour; h++ {
		if h == LunchHour {
			continue
		}
		out = append(out, Label(h))
	}
	return out
}

// Next returns the earliest unbooked slot label for the requested day.
// requested must be a calendar day (time-of-day ignored); booked holds
// the timeslot labels already taken on that day. The scan starts at
// opening, skips lunch, and gives up at closing.
func Next(requested, now time.Time, booked []string) (string, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, time.UTC)

	if day.Before(today) {
		return "", ErrPastDate
	}
	if day.Equal(today) && now.Hour() >= ClosingHour {
		return "", ErrTooLateToday
	}

	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[StartOf(b)] = true
	}

	for h := OpeningHour; ; h++ {
		if h == LunchHour {
			continue
		}
		if h >= ClosingHour {
			return "", ErrFullyBooked
		}
		if !taken[fmt.Sprintf("%02d:00", h)] {
			return Label(h), nil
		}
	}
}
