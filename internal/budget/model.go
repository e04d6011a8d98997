package budget

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("budget not found")
	ErrDuplicateCategory = errors.New("budget for category already exists")
)

// Budget is a per-user, per-category spending ceiling. At most one
// exists per (user, category) pair.
type Budget struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Category  string    `db:"category" json:"category"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SummaryRow joins a budget against aggregated spending. PercentUsed
// is a 2-decimal string clamped to 100 for progress-bar display;
// Remaining may go negative to signal overspend.
type SummaryRow struct {
	Category    string  `json:"category"`
	Budgeted    float64 `json:"budgeted"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed string  `json:"percentUsed"`
}
