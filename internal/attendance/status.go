package attendance

import (
	"math"
	"time"
)

// Status is the day-level attendance classification stored on a record.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"

	// StatusNotMarked is returned by day queries when no record exists.
	// It is never persisted.
	StatusNotMarked Status = "not-marked"
)

// Day identifies a calendar day ("2006-01-02"). It is deliberately a
// separate type from time.Time: records are keyed by day, not by instant,
// and every lookup must normalize the same way check-in did.
type Day string

const dayLayout = "2006-01-02"

// DayOf normalizes an instant to its calendar day in local time. This is the
// single day boundary shared by check-in, check-out and all queries.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

func (d Day) String() string { return string(d) }

// MonthRange returns the first and last day of the given month.
func MonthRange(year int, month time.Month) (Day, Day) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return DayOf(first), DayOf(last)
}

// Cutoff is a fixed clock time (hour/minute) compared against event
// timestamps on the event's own calendar day.
type Cutoff struct {
	Hour   int
	Minute int
}

// OnDay places the cutoff on the same calendar day as t.
//
// Cutoffs use the server's local clock with no timezone handling. If users
// span timezones this is ambiguous; known limitation, kept as-is.
func (c Cutoff) OnDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// Rules holds the configured cutoffs. The zero value is not usable; start
// from DefaultRules.
type Rules struct {
	LateCutoff    Cutoff // check-in after this is "late"
	HalfDayCutoff Cutoff // check-out before this is "half-day"
}

// DefaultRules: late after 11:00, half-day before 13:30.
var DefaultRules = Rules{
	LateCutoff:    Cutoff{Hour: 11, Minute: 0},
	HalfDayCutoff: Cutoff{Hour: 13, Minute: 30},
}

// CheckInStatus classifies a check-in instant. Strictly after the late
// cutoff means late; at or before it means present. Total over all inputs.
func (r Rules) CheckInStatus(now time.Time) Status {
	if now.After(r.LateCutoff.OnDay(now)) {
		return StatusLate
	}
	return StatusPresent
}

// CheckOutOutcome computes the final status and worked hours for a checkout.
//
// The half-day rule is checkout-time-only: a checkout strictly before the
// half-day cutoff yields half-day no matter how late the check-in was.
// Otherwise the status assigned at check-in stands. This precedence is a
// documented policy; keep it exact.
func (r Rules) CheckOutOutcome(checkIn, checkOut time.Time, prior Status) (Status, float64, error) {
	if checkOut.Before(checkIn) {
		return prior, 0, ErrInvalidTimestampOrder
	}

	hours := RoundHours(checkOut.Sub(checkIn))

	if checkOut.Before(r.HalfDayCutoff.OnDay(checkOut)) {
		return StatusHalfDay, hours, nil
	}
	return prior, hours, nil
}

// RoundHours converts a duration to hours rounded half-up to 2 decimals.
func RoundHours(d time.Duration) float64 {
	return math.Floor(d.Hours()*100+0.5) / 100
}
