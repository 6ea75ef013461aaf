package booking

import (
	"errors"
	"time"
)

const (
	MinDuration = 30 * time.Minute
	MaxDuration = 4 * time.Hour

	// Minimum gap between now and a booking's start before it may be
	// modified or cancelled.
	ModificationLeadTime = time.Hour
)

var (
	ErrDurationTooShort = errors.New("booking must be at least 30 minutes")
	ErrDurationTooLong  = errors.New("booking must be at most 4 hours")
	ErrInvalidTimeSlot  = errors.New("start time must be before end time")
	ErrInvalidDate      = errors.New("invalid calendar date")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

const dateLayout = "2006-01-02"

// Timestamps arrive as ISO-8601 local wall-clock values with no zone.
// A zoned RFC 3339 form is accepted too; the offset is kept as given,
// not normalized.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// Date is a plain ISO calendar date. Bookings only ever conflict within
// the same date.
type Date struct {
	value string
}

func NewDate(value string) (Date, error) {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{value: value}, nil
}

func DateOf(t time.Time) Date {
	return Date{value: t.Format(dateLayout)}
}

func (d Date) String() string {
	return d.value
}

func (d Date) Equal(other Date) bool {
	return d.value == other.value
}

// Less orders dates; ISO dates compare correctly as strings.
func (d Date) Less(other Date) bool {
	return d.value < other.value
}

func (d Date) IsZero() bool {
	return d.value == ""
}

func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// ValidateDuration enforces the booking duration policy. A reversed
// interval has negative duration and fails the minimum bound, matching
// the create-path validation order.
func ValidateDuration(start, end time.Time) error {
	d := end.Sub(start)
	if d < MinDuration {
		return ErrDurationTooShort
	}
	if d > MaxDuration {
		return ErrDurationTooLong
	}
	return nil
}

// TimeSlot is a half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap, so back-to-back bookings are fine.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

func (ts TimeSlot) MeetsLeadTimeAt(now time.Time, leadTime time.Duration) bool {
	return ts.start.Sub(now) >= leadTime
}

func (ts TimeSlot) Format(layout string) (string, string) {
	return ts.start.Format(layout), ts.end.Format(layout)
}
