// Package journal holds the value types shared by every daily record:
// the calendar-day key, the closed set of entry categories, and the clock.
package journal

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const keyLayout = "2006-01-02"

// DateKey identifies a calendar day. Keys are comparable with == and
// totally ordered by Compare.
type DateKey struct {
	year  int
	month time.Month
	day   int
}

// DayOf returns the calendar day containing t, evaluated in t's location.
// Pass local time (for example from Clock.Now) to get the local day.
func DayOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{year: y, month: m, day: d}
}

// NewDateKey builds a key from its parts. Out-of-range values are
// normalized the way time.Date normalizes them.
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDateKey parses a YYYY-MM-DD string.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(keyLayout, strings.TrimSpace(s))
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (k DateKey) Year() int { return k.year }
func (k DateKey) Month() time.Month { return k.month }
func (k DateKey) Day() int { return k.day }
func (k DateKey) IsZero() bool { return k == DateKey{} }
func (k DateKey) Weekday() time.Weekday { return k.civil().Weekday() }

// Time returns midnight at the start of the day in loc.
func (k DateKey) Time(loc *time.Location) time.Time {
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, loc)
}

// civil is the day at UTC midnight; arithmetic on it never crosses a DST edge.
func (k DateKey) civil() time.Time {
	return k.Time(time.UTC)
}

// AddDays returns the key n days later (earlier when n is negative).
func (k DateKey) AddDays(n int) DateKey {
	return DayOf(k.civil().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether k is before, equal to
// or after other.
func (k DateKey) Compare(other DateKey) int {
	if c := cmp.Compare(k.year, other.year); c != 0 {
		return c
	}
	if c := cmp.Compare(k.month, other.month); c != 0 {
		return c
	}
	return cmp.Compare(k.day, other.day)
}

func (k DateKey) Before(other DateKey) bool { return k.Compare(other) < 0 }
func (k DateKey) After(other DateKey) bool { return k.Compare(other) > 0 }

// String formats the key as YYYY-MM-DD. The zero key formats as "".
func (k DateKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.civil().Format(keyLayout)
}

func (k DateKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DateKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = DateKey{}
		return nil
	}
	parsed, err := ParseDateKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Scan implements sql.Scanner. Days are stored as YYYY-MM-DD text.
func (k *DateKey) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return k.UnmarshalText([]byte(v))
	case []byte:
		return k.UnmarshalText(v)
	case time.Time:
		*k = DayOf(v)
		return nil
	case nil:
		*k = DateKey{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateKey", src)
	}
}

// Value implements driver.Valuer.
func (k DateKey) Value() (driver.Value, error) {
	if k.IsZero() {
		return nil, nil
	}
	return k.String(), nil
}
