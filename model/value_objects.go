// Package model provides value objects for API parameter validation.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// now returns the current time at the precision the store persists.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Now returns the current UTC time truncated to seconds.
func Now() time.Time {
	return now()
}

// ParseID parses a positive integer identifier.
func ParseID(s, name string) (int64, error) {
	if s == "" {
		return 0, NewFieldError(name, "this field is required")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewFieldError(name, "must be a positive integer")
	}
	return id, nil
}

// dateLayout is the wire and storage format of Date.
const dateLayout = "2006-01-02"

// Date represents a calendar date without a time component.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (*Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, NewValidationError("invalid date format. Use YYYY-MM-DD")
	}
	return &Date{t: t}, nil
}

// NewDate creates a Date from the calendar day of t.
func NewDate(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String returns the YYYY-MM-DD representation.
func (d *Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns the date at midnight UTC.
func (d *Date) Time() time.Time {
	return d.t
}

// Equal reports whether both dates are the same day. Nil dates are equal to each other.
func (d *Date) Equal(other *Date) bool {
	if d == nil || other == nil {
		return d == nil && other == nil
	}
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t.Format(dateLayout))
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return NewValidationError("invalid date format. Use YYYY-MM-DD")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// DateRange represents a date range value object.
type DateRange struct {
	from time.Time
	to   time.Time
}

// NewDateRange creates a new date range value object.
func NewDateRange(fromStr, toStr string) (*DateRange, error) {
	var fromTime, toTime time.Time
	var err error

	// Process from parameter
	if fromStr != "" {
		fromTime, err = parseDateTime(fromStr)
		if err != nil {
			return nil, NewValidationError("invalid from parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
	} else {
		defaultFrom, _ := getDefaultDateRange()
		fromTime = defaultFrom
	}

	// Process to parameter
	if toStr != "" {
		toTime, err = parseDateTime(toStr)
		if err != nil {
			return nil, NewValidationError("invalid to parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
	} else {
		_, defaultTo := getDefaultDateRange()
		toTime = defaultTo
	}

	fromTime = normalizeToBeginOfDay(fromTime)
	toTime = normalizeToEndOfDay(toTime)

	if fromTime.After(toTime) {
		return nil, NewValidationError("from must not be after to")
	}

	return &DateRange{from: fromTime, to: toTime}, nil
}

// From returns the start date.
func (d *DateRange) From() time.Time {
	return d.from
}

// To returns the end date.
func (d *DateRange) To() time.Time {
	return d.to
}

// getDefaultDateRange calculates the default date range for the latest week + 52 weeks.
func getDefaultDateRange() (time.Time, time.Time) {
	t := time.Now().UTC()
	weekday := int(t.Weekday())
	latestWeekStart := t.AddDate(0, 0, -weekday)
	defaultFrom := latestWeekStart.AddDate(0, 0, -52*7)
	return defaultFrom, t
}

// normalizeToBeginOfDay normalizes time to beginning of day (00:00:00) in UTC.
func normalizeToBeginOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// normalizeToEndOfDay normalizes time to end of day (23:59:59) in UTC.
func normalizeToEndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// parseDateTime parses date string with flexible format support.
func parseDateTime(dateStr string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, dateStr); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date")
}

// Pagination represents pagination parameters value object.
type Pagination struct {
	limit  int
	offset int
}

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// NewPagination creates a new pagination value object.
func NewPagination(limitStr, offsetStr string) (*Pagination, error) {
	limit := defaultLimit
	offset := 0

	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, NewValidationError("invalid limit parameter: must be a positive integer")
		}
		if parsedLimit <= 0 {
			return nil, NewValidationError("limit must be greater than 0")
		}
		if parsedLimit > maxLimit {
			parsedLimit = maxLimit
		}
		limit = parsedLimit
	}

	if offsetStr != "" {
		parsedOffset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, NewValidationError("invalid offset parameter: must be a non-negative integer")
		}
		if parsedOffset < 0 {
			return nil, NewValidationError("offset must be non-negative")
		}
		offset = parsedOffset
	}

	return &Pagination{limit: limit, offset: offset}, nil
}

// DefaultPagination returns the first page with the default limit.
func DefaultPagination() *Pagination {
	return &Pagination{limit: defaultLimit}
}

// Limit returns the limit value.
func (p *Pagination) Limit() int {
	return p.limit
}

// Offset returns the offset value.
func (p *Pagination) Offset() int {
	return p.offset
}

// TaskOrdering is the sort key of a task listing. A leading "-" means descending.
type TaskOrdering string

// DefaultTaskOrdering lists newest tasks first.
const DefaultTaskOrdering TaskOrdering = "-created_at"

// ParseTaskOrdering validates an ordering parameter.
func ParseTaskOrdering(s string) (TaskOrdering, error) {
	if s == "" {
		return DefaultTaskOrdering, nil
	}
	switch strings.TrimPrefix(s, "-") {
	case "created_at", "due_date", "status":
		return TaskOrdering(s), nil
	}
	return "", NewFieldError("ordering", "must be one of created_at, due_date, status (optionally prefixed with -)")
}

// TaskFilter narrows a task listing. Nil fields are not applied.
type TaskFilter struct {
	Status     *TaskStatus
	DueDate    *Date
	AssignedTo *int64
	ProjectID  *int64
	Search     string
	Ordering   TaskOrdering
	Pagination *Pagination
}
