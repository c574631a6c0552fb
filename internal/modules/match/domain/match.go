package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchWaiting  MatchStatus = "waiting"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

type DecisionValue string

const (
	DecisionAccept DecisionValue = "accept"
	DecisionReject DecisionValue = "reject"
)

func ParseDecisionValue(raw string) (DecisionValue, error) {
	switch DecisionValue(raw) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	default:
		return "", fmt.Errorf("invalid decision value - '%s'", raw)
	}
}

// Match is a proposed pairing of exactly two pool members. The participant
// pair is stored in canonical order so (pool_id, participant_a, participant_b)
// identifies the unordered pair.
type Match struct {
	ID           uuid.UUID   `db:"id" json:"match_id"`
	PoolID       uuid.UUID   `db:"pool_id" json:"pool_id"`
	ParticipantA uuid.UUID   `db:"participant_a" json:"participant_a"`
	ParticipantB uuid.UUID   `db:"participant_b" json:"participant_b"`
	Status       MatchStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

func (m Match) HasParticipant(userID uuid.UUID) bool {
	return m.ParticipantA == userID || m.ParticipantB == userID
}

// CanonicalPair orders two participant IDs with the lexicographically
// smaller one first.
func CanonicalPair(p1, p2 uuid.UUID) (uuid.UUID, uuid.UUID) {
	if p2.String() < p1.String() {
		return p2, p1
	}
	return p1, p2
}

// Decision is a single participant's current answer for a match. At most one
// row exists per (match, participant) - resubmission overwrites.
type Decision struct {
	MatchID   uuid.UUID     `db:"match_id" json:"match_id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	Value     DecisionValue `db:"value" json:"decision"`
	DecidedAt time.Time     `db:"decided_at" json:"decided_at"`
}

// ComputeStatus derives a match's status from its current decision set.
// Evaluated in strict priority order: any reject ends the match, two accepts
// resolve it, anything less keeps it waiting. The result depends only on the
// set, never on submission order.
func ComputeStatus(decisions []Decision) MatchStatus {
	accepts := 0
	for _, d := range decisions {
		switch d.Value {
		case DecisionReject:
			return MatchRejected
		case DecisionAccept:
			accepts++
		}
	}

	if accepts == 2 {
		return MatchAccepted
	}

	return MatchWaiting
}

type DecisionSummary struct {
	AcceptCount  int `json:"accept_count"`
	RejectCount  int `json:"reject_count"`
	PendingCount int `json:"pending_count"`
}

func Summarize(decisions []Decision) DecisionSummary {
	var summary DecisionSummary
	for _, d := range decisions {
		switch d.Value {
		case DecisionAccept:
			summary.AcceptCount++
		case DecisionReject:
			summary.RejectCount++
		}
	}

	summary.PendingCount = 2 - summary.AcceptCount - summary.RejectCount
	return summary
}
