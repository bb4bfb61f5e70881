package state

import (
	"context"
	"encoding/json"
)

// Step identifies where a user's dialogue currently stands.
type Step string

const (
	StepAwaitingExactName   Step = "waiting_for_exact_name"
	StepAwaitingDescription Step = "waiting_for_description"
	StepAwaitingType        Step = "waiting_for_type"
)

// Payload carries the data collected so far. Which fields are populated
// depends on the step: candidate ids while disambiguating, machine fields once
// a machine is confirmed, the description once captured.
type Payload struct {
	MachineID    int64   `json:"machine_id,omitempty"`
	MachineName  string  `json:"machine_name,omitempty"`
	Location     string  `json:"location,omitempty"`
	CandidateIDs []int64 `json:"candidate_ids,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// Session is one user's persisted dialogue state.
type Session struct {
	UserID  string
	Step    Step
	Payload Payload
}

// Store persists at most one Session per user across stateless requests.
//
// Get returns (nil, nil) when the user has no session. Upsert replaces step
// and payload wholesale, never partially. Clear is a no-op for absent users.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Upsert(ctx context.Context, userID string, step Step, payload Payload) error
	Clear(ctx context.Context, userID string) error
}

// decodePayload tolerates corrupt stored payloads by falling back to the zero
// value so the engine can still reach its recovery replies.
func decodePayload(raw string) Payload {
	var p Payload
	if raw == "" {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}
	}
	return p
}
