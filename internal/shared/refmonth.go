package shared

import (
	"errors"
	"fmt"
	"time"
)

// ReferenceMonth identifies a dues reference month in YYYY-MM form.
type ReferenceMonth string

// ErrInvalidReferenceMonth indicates a malformed reference month value.
var ErrInvalidReferenceMonth = errors.New("reference month must be YYYY-MM")

const refMonthLayout = "2006-01"

// ParseReferenceMonth validates and normalises a YYYY-MM string.
func ParseReferenceMonth(raw string) (ReferenceMonth, error) {
	t, err := time.Parse(refMonthLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidReferenceMonth, raw)
	}
	return ReferenceMonth(t.Format(refMonthLayout)), nil
}

// CurrentReferenceMonth returns the reference month containing t.
func CurrentReferenceMonth(t time.Time) ReferenceMonth {
	return ReferenceMonth(t.Format(refMonthLayout))
}

// String implements fmt.Stringer.
func (m ReferenceMonth) String() string { return string(m) }

// Valid reports whether the value parses as YYYY-MM.
func (m ReferenceMonth) Valid() bool {
	_, err := time.Parse(refMonthLayout, string(m))
	return err == nil
}

// FirstDay returns midnight UTC on the first day of the month.
func (m ReferenceMonth) FirstDay() (time.Time, error) {
	return time.Parse(refMonthLayout, string(m))
}

// Prev returns the preceding reference month.
func (m ReferenceMonth) Prev() ReferenceMonth {
	t, err := m.FirstDay()
	if err != nil {
		return m
	}
	return ReferenceMonth(t.AddDate(0, -1, 0).Format(refMonthLayout))
}
