package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one audit row: who did what to which record.
type Entry struct {
	UserID     string
	Action     string // e.g. "expense.create", "auth.login"
	EntityType string
	EntityID   string
	IP         string
	Metadata   map[string]any
}

// Recorder writes audit entries best-effort. A nil Recorder or a nil
// pool is a no-op so handlers never need to guard their calls.
type Recorder struct {
	Pool *pgxpool.Pool
}

func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.Pool == nil {
		return
	}

	var metadata any
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err == nil {
			metadata = json.RawMessage(raw)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := r.Pool.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip, metadata)
VALUES (NULLIF($1,'')::uuid, $2, $3, NULLIF($4,''), NULLIF($5,''), $6)
`, e.UserID, e.Action, e.EntityType, e.EntityID, e.IP, metadata)
	if err != nil {
		slog.Warn("audit write failed", "action", e.Action, "error", err)
	}
}
