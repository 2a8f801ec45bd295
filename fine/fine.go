package fine

import (
	"errors"
	"time"
)

// DefaultRatePerDay is the fine in currency units charged for every whole day a book is overdue.
const DefaultRatePerDay Amount = 5

// ErrNegativeRate is returned when a Policy is built with a negative rate per day.
var ErrNegativeRate = errors.New("fine rate per day must not be negative")

// Amount is a non-negative amount of currency units.
type Amount = int64

// Policy maps a due date and the current date to an owed amount.
type Policy struct {
	ratePerDay Amount
}

// NewPolicy creates a Policy charging ratePerDay for each whole overdue day.
func NewPolicy(ratePerDay Amount) (Policy, error) {
	if ratePerDay < 0 {
		return Policy{}, ErrNegativeRate
	}

	return Policy{ratePerDay: ratePerDay}, nil
}

// DefaultPolicy returns a Policy with DefaultRatePerDay.
func DefaultPolicy() Policy {
	return Policy{ratePerDay: DefaultRatePerDay}
}

// RatePerDay returns the configured rate.
func (p Policy) RatePerDay() Amount {
	return p.ratePerDay
}

// Fine returns the amount owed for a book due on dueDate, as seen on today.
//
// It is zero when dueDate is unset (zero time) or today is not strictly after dueDate.
// Otherwise it is the number of whole calendar days between both dates times the rate.
func (p Policy) Fine(dueDate time.Time, today time.Time) Amount {
	if dueDate.IsZero() {
		return 0
	}

	daysOverdue := DaysBetween(dueDate, today)
	if daysOverdue <= 0 {
		return 0
	}

	return Amount(daysOverdue) * p.ratePerDay
}

// ToDate drops the time of day, keeping the calendar date as seen in t's own location.
// The result is midnight UTC of that date, so that two dates always differ by whole days.
func ToDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from "from" to "to", negative if "to" is earlier.
func DaysBetween(from time.Time, to time.Time) int {
	return dayNumber(to) - dayNumber(from)
}

// dayNumber counts days since 0000-03-01 in the proleptic Gregorian calendar, taken from t's own date.
// It avoids time.Duration, which overflows for spans of about 292 years.
func dayNumber(t time.Time) int {
	year, month, day := t.Date()

	m := int(month)
	if m <= 2 {
		year--
		m += 12
	}

	era := year / 400
	if year < 0 && year%400 != 0 {
		era--
	}
	yearOfEra := year - era*400
	dayOfYear := (153*(m-3)+2)/5 + day - 1
	dayOfEra := yearOfEra*365 + yearOfEra/4 - yearOfEra/100 + dayOfYear

	return era*146097 + dayOfEra
}

// AddDays returns the calendar date n days after date (n may be negative).
func AddDays(date time.Time, n int) time.Time {
	return ToDate(date).AddDate(0, 0, n)
}
