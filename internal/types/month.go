// Package types implements special types for the Moneta backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Month is a month in a specific year. It is the canonical key for
// everything that is tracked per calendar month, most importantly the
// per-month overrides of cost entries. Its string form is "YYYY-MM".
type Month time.Time

// labels are the month labels the web UI uses, indexed by time.Month - 1.
var labels = [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}

var ErrMonthLabelInvalid = errors.New("the month label is not one of Jan, Feb, Mär, Apr, Mai, Jun, Jul, Aug, Sep, Okt, Nov, Dez")

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Label returns the month label used by the UI, e.g. "Mär" for March.
func (m Month) Label() string {
	return labels[int(time.Time(m).Month())-1]
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Number returns the month number in the range 1 to 12.
func (m Month) Number() int {
	return int(time.Time(m).Month())
}

// MarshalText implements the encoding.TextMarshaler interface.
// Because overrides are a map keyed by Month, this also controls
// the JSON keys of that map, keeping the wire format canonical.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It accepts "YYYY-MM" and the full date form "YYYY-MM-DD", from which
// everything except year and month is ignored.
func (m *Month) UnmarshalText(data []byte) error {
	value := string(data)
	if value == "" || value == "null" {
		return nil
	}

	month, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// ParseMonth parses a "YYYY-MM" or "YYYY-MM-DD" string and returns the Month
// value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return Month{}, err
		}
	}

	return MonthOf(t), nil
}

// ParseLabel returns the Month for a UI month label and a year.
func ParseLabel(label string, year int) (Month, error) {
	for i, l := range labels {
		if l == label {
			return NewMonth(year, time.Month(i+1)), nil
		}
	}

	return Month{}, ErrMonthLabelInvalid
}

// Scan reads the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = Month(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
