package slot_test

import (
	"errors"
	"testing"
	"time"

	"carebook/internal/slot"
)

var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return noon.AddDate(0, 0, offset)
}

func TestNextEmptyDay(t *testing.T) {
	got, err := slot.Next(day(1), noon, nil)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got != "08:00 to 09:00" {
		t.Errorf("expected opening slot, got %q", got)
	}
}

func TestNextSkipsBookedAndLunch(t *testing.T) {
	booked := []string{"08:00 to 09:00", "09:00 to 10:00", "10:00 to 11:00"}
	got, err := slot.Next(day(1), noon, booked)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	// 11:00 is free; 12:00 would be lunch even though unbooked
	if got != "11:00 to 12:00" {
		t.Errorf("expected 11:00 to 12:00, got %q", got)
	}

	booked = append(booked, "11:00 to 12:00")
	got, err = slot.Next(day(1), noon, booked)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got != "13:00 to 14:00" {
		t.Errorf("expected lunch skipped, got %q", got)
	}
}

func TestNextPastDate(t *testing.T) {
	for _, offset := range []int{-1, -30} {
		if _, err := slot.Next(day(offset), noon, nil); !errors.Is(err, slot.ErrPastDate) {
			t.Errorf("offset %d: expected ErrPastDate, got %v", offset, err)
		}
	}
}

func TestNextTodayNotPast(t *testing.T) {
	// same calendar day is bookable even though midnight has passed
	if _, err := slot.Next(day(0), noon, nil); err != nil {
		t.Errorf("today should be bookable before closing: %v", err)
	}
}

func TestNextTooLateToday(t *testing.T) {
	late := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	if _, err := slot.Next(day(0), late, nil); !errors.Is(err, slot.ErrTooLateToday) {
		t.Errorf("expected ErrTooLateToday at 19:00, got %v", err)
	}

	// tomorrow is still fine at 19:00
	if _, err := slot.Next(day(1), late, nil); err != nil {
		t.Errorf("tomorrow should be bookable after closing: %v", err)
	}
}

func TestNextFullyBooked(t *testing.T) {
	booked := slot.Labels()
	if _, err := slot.Next(day(1), noon, booked); !errors.Is(err, slot.ErrFullyBooked) {
		t.Errorf("expected ErrFullyBooked, got %v", err)
	}

	// one free slot left at the end of the day
	if _, last := booked[0], booked[len(booked)-1]; last != "18:00 to 19:00" {
		t.Fatalf("unexpected last label %q", last)
	}
	got, err := slot.Next(day(1), noon, booked[:len(booked)-1])
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got != "18:00 to 19:00" {
		t.Errorf("expected last slot, got %q", got)
	}
}

func TestLabels(t *testing.T) {
	labels := slot.Labels()
	if len(labels) != 10 {
		t.Fatalf("expected 10 bookable slots, got %d", len(labels))
	}
	for _, l := range labels {
		if l == "12:00 to 13:00" {
			t.Error("lunch hour must not be bookable")
		}
	}
	if labels[0] != "08:00 to 09:00" {
		t.Errorf("first label: %q", labels[0])
	}
}

func TestStartOf(t *testing.T) {
	if got := slot.StartOf("09:00 to 10:00"); got != "09:00" {
		t.Errorf("got %q", got)
	}
	if got := slot.StartOf("garbage"); got != "garbage" {
		t.Errorf("malformed label should pass through, got %q", got)
	}
}
