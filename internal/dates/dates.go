// Package dates converts calendar dates to and from the YYYY-MM-DD text form
// that every storage backend persists.
//
// Writes are strict: only well-formed dates are accepted from clients. Reads
// are tolerant: a stored value that does not parse is carried through verbatim
// so one malformed row never breaks a list query.
package dates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/lifetracker/internal/constants"
)

// Date is a calendar date without a time of day. A Date read from storage
// that failed to parse keeps its raw text and reports Valid() == false.
type Date struct {
	t     time.Time
	raw   string
	valid bool
}

// Of returns the date for the given year, month and day.
func Of(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	return Of(t.Year(), t.Month(), t.Day())
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(now.In(loc))
}

// Parse strictly parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t, valid: true}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromStored converts a value read from storage. It never fails: values that
// are not parseable date strings are kept as-is.
func FromStored(v any) Date {
	switch x := v.(type) {
	case nil:
		return Date{}
	case Date:
		return x
	case time.Time:
		return FromTime(x)
	case []byte:
		return FromStored(string(x))
	case string:
		if d, err := Parse(x); err == nil {
			return d
		}
		return Date{raw: x}
	default:
		return Date{raw: fmt.Sprint(x)}
	}
}

// Valid reports whether d holds a parsed calendar date.
func (d Date) Valid() bool { return d.valid }

// IsZero reports whether d holds neither a date nor a raw stored value.
func (d Date) IsZero() bool { return !d.valid && d.raw == "" }

// Time returns midnight UTC of d. It is the zero time for invalid dates.
func (d Date) Time() time.Time { return d.t }

// String returns the storage form of d: YYYY-MM-DD for valid dates, the raw
// stored text otherwise.
func (d Date) String() string {
	if d.valid {
		return d.t.Format(constants.DateFormat)
	}
	return d.raw
}

// AddDays returns d shifted by n days. Invalid dates are returned unchanged.
func (d Date) AddDays(n int) Date {
	if !d.valid {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n), valid: true}
}

// Equal reports whether both dates have the same storage form.
func (d Date) Equal(o Date) bool { return d.String() == o.String() }

// Window returns the inclusive range of `days` days ending on end.
func Window(end Date, days int) (from, to Date) {
	return end.AddDays(-(days - 1)), end
}

// Value implements driver.Valuer; dates are always persisted as text.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner using the tolerant read path.
func (d *Date) Scan(src any) error {
	*d = FromStored(src)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a YYYY-MM-DD string")
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
