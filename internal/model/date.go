package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07:00",
}

// Date is a calendar date that may be absent. Stored values that are NULL or
// cannot be parsed scan into an invalid Date instead of failing the query.
type Date struct {
	Time  time.Time
	Valid bool
}

func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ParseDate never fails; unparsable input yields an invalid Date.
func ParseDate(raw string) Date {
	d, err := parseDateStrict(raw)
	if err != nil {
		return Date{}
	}
	return d
}

func parseDateStrict(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return NewDate(parsed), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

func (Date) GormDataType() string {
	return "date"
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v)
	case string:
		*d = ParseDate(v)
	case []byte:
		*d = ParseDate(string(v))
	default:
		*d = Date{}
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.String(), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := parseDateStrict(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive window compared at day granularity.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(d Date) bool {
	if !d.Valid {
		return false
	}
	start := NewDate(r.Start).Time
	end := NewDate(r.End).Time
	return !d.Time.Before(start) && !d.Time.After(end)
}

func (r DateRange) StartDate() string {
	return NewDate(r.Start).String()
}

func (r DateRange) EndDate() string {
	return NewDate(r.End).String()
}
