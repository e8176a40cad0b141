package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 calendar date layout used on the wire.
const Format = "2006-01-02"

// readFormat is lenient on single-digit month and day.
const readFormat = "2006-1-2"

// Date is a calendar date with day granularity. The zero value is not a valid day.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the calendar day of t in its own location, dropping the time of day.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current local date.
func Today() Date { return Of(time.Now()) }

// time is the canonical instant of that day, midnight UTC.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.time() }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns the date shifted by the given number of calendar days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Sub returns the number of whole days from x to d (negative if d is before x).
func (d Date) Sub(x Date) int {
	// Both instants are midnight UTC, so the difference is an exact multiple of a day.
	return int(d.time().Sub(x.time()) / (24 * time.Hour))
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// Parse reads a calendar date. It accepts "2023-01-02", the lenient "2023-1-2",
// and RFC 3339 timestamps whose time of day is dropped.
func Parse(str string) (Date, error) {
	if on, err := time.Parse(readFormat, str); err == nil {
		return Of(on), nil
	}
	if on, err := time.Parse(time.RFC3339, str); err == nil {
		return Of(on), nil
	}
	// Backends frequently emit timestamps without a zone.
	if on, err := time.Parse("2006-01-02T15:04:05", str); err == nil {
		return Of(on), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, Format)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	on, err := Parse(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
