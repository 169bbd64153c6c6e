package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

const (
	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"
	// MonthLayout is the wire format for month keys.
	MonthLayout = "2006-01"
)

// Date is a calendar day with no time-of-day or zone component. It
// marshals as a "YYYY-MM-DD" string and stores as a SQL DATE, so the
// same day round-trips identically through JSON and the database.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year, month, day int) Date {
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d holds no date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String renders d in the wire format.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Month returns the "YYYY-MM" key of the month containing d.
func (d Date) Month() string {
	return d.t.Format(MonthLayout)
}

// Time exposes the underlying instant, midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.t
}

// MarshalJSON renders d as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date literal %s", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner. Postgres hands back a time.Time for
// DATE columns; sqlite hands back the stored text.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), int(v.Month()), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells the ORM to map Date to a DATE column.
func (d Date) GormDataType() string {
	return "date"
}
