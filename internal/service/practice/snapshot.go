package practice

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const snapshotVersion = 1

// snapshot is the persisted form of an in-progress session.
type snapshot struct {
	Version       int              `json:"version"`
	UserID        uuid.UUID        `json:"user_id"`
	Queue         []uuid.UUID      `json:"queue"`
	Direction     domain.Direction `json:"direction"`
	Order         domain.OrderMode `json:"order"`
	AllowReguess  bool             `json:"allow_reguess"`
	CorrectCount  int              `json:"correct_count"`
	TotalAttempts int              `json:"total_attempts"`
	Mistakes      []domain.Mistake `json:"mistakes"`
	LastCheck     *CheckResult     `json:"last_check,omitempty"`
	SavedAt       time.Time        `json:"saved_at"`
}

func encodeSnapshot(s snapshot) ([]byte, error) {
	s.Version = snapshotVersion
	if s.Queue == nil {
		s.Queue = []uuid.UUID{}
	}
	if s.Mistakes == nil {
		s.Mistakes = []domain.Mistake{}
	}
	return json.Marshal(s)
}

// decodeSnapshot reads a snapshot field by field. Unknown fields are
// ignored; missing or malformed fields fall back to defaults. Only a
// payload that is not a JSON object is an error.
func decodeSnapshot(payload []byte, defaults Settings) (snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if fields == nil {
		return snapshot{}, fmt.Errorf("decode snapshot: not an object")
	}

	s := snapshot{
		Direction:    defaults.Direction,
		Order:        defaults.Order,
		AllowReguess: defaults.AllowReguess,
	}

	field(fields, "version", &s.Version)
	field(fields, "user_id", &s.UserID)
	field(fields, "queue", &s.Queue)
	field(fields, "allow_reguess", &s.AllowReguess)
	field(fields, "correct_count", &s.CorrectCount)
	field(fields, "total_attempts", &s.TotalAttempts)
	field(fields, "mistakes", &s.Mistakes)
	field(fields, "last_check", &s.LastCheck)
	field(fields, "saved_at", &s.SavedAt)

	var dir domain.Direction
	if field(fields, "direction", &dir) && dir.IsValid() {
		s.Direction = dir
	}
	var order domain.OrderMode
	if field(fields, "order", &order) && order.IsValid() {
		s.Order = order
	}

	s.TotalAttempts = max(s.TotalAttempts, 0)
	s.CorrectCount = min(max(s.CorrectCount, 0), s.TotalAttempts)

	return s, nil
}

// field decodes fields[name] into dst and reports whether it succeeded.
// dst is left untouched on failure.
func field[T any](fields map[string]json.RawMessage, name string, dst *T) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}
