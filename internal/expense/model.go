package expense

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("expense not found")

// Expense is the canonical expense record; json tags are the wire
// shape the client consumes.
type Expense struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	Date        time.Time `db:"spent_on" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Fields carries the writable expense fields; updates replace all of
// them at once.
type Fields struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
}

type CategorySummary struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int64   `json:"count"`
}

// DateRange is an optional inclusive [Start, End] filter.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// ParseDate accepts the two formats clients send: a bare date or a
// full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseDateRange builds a DateRange from the startDate/endDate query
// params; either side may be empty.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var rng DateRange
	if strings.TrimSpace(startDate) != "" {
		t, err := ParseDate(startDate)
		if err != nil {
			return rng, errors.New("startDate must be YYYY-MM-DD")
		}
		rng.Start = &t
	}
	if strings.TrimSpace(endDate) != "" {
		t, err := ParseDate(endDate)
		if err != nil {
			return rng, errors.New("endDate must be YYYY-MM-DD")
		}
		rng.End = &t
	}
	return rng, nil
}
