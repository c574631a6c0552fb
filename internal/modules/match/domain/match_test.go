package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func decision(value DecisionValue) Decision {
	return Decision{
		MatchID: uuid.New(),
		UserID:  uuid.New(),
		Value:   value,
	}
}

func Test_ComputeStatus_Returns_Waiting_For_No_Decisions(t *testing.T) {
	// Act
	status := ComputeStatus(nil)

	// Assert
	require.Equal(t, MatchWaiting, status)
}

func Test_ComputeStatus_Returns_Waiting_For_Single_Accept(t *testing.T) {
	// Arrange
	decisions := []Decision{decision(DecisionAccept)}

	// Act
	status := ComputeStatus(decisions)

	// Assert
	require.Equal(t, MatchWaiting, status)
}

func Test_ComputeStatus_Returns_Accepted_For_Two_Accepts(t *testing.T) {
	// Arrange
	decisions := []Decision{decision(DecisionAccept), decision(DecisionAccept)}

	// Act
	status := ComputeStatus(decisions)

	// Assert
	require.Equal(t, MatchAccepted, status)
}

func Test_ComputeStatus_Single_Reject_Dominates_Accept(t *testing.T) {
	// Arrange
	decisions := []Decision{decision(DecisionAccept), decision(DecisionReject)}

	// Act
	status := ComputeStatus(decisions)

	// Assert
	require.Equal(t, MatchRejected, status)
}

func Test_ComputeStatus_Is_Order_Independent(t *testing.T) {
	// Arrange
	accept := decision(DecisionAccept)
	reject := decision(DecisionReject)

	// Act
	first := ComputeStatus([]Decision{accept, reject})
	second := ComputeStatus([]Decision{reject, accept})

	// Assert
	require.Equal(t, first, second)
	require.Equal(t, MatchRejected, first)
}

func Test_ComputeStatus_Returns_Rejected_For_Single_Reject(t *testing.T) {
	// Arrange
	decisions := []Decision{decision(DecisionReject)}

	// Act
	status := ComputeStatus(decisions)

	// Assert
	require.Equal(t, MatchRejected, status)
}

func Test_CanonicalPair_Orders_Smaller_ID_First(t *testing.T) {
	// Arrange
	smaller := uuid.MustParse("22222222-2222-4222-8222-222222222222")
	larger := uuid.MustParse("33333333-3333-4333-8333-333333333333")

	// Act
	a1, b1 := CanonicalPair(smaller, larger)
	a2, b2 := CanonicalPair(larger, smaller)

	// Assert
	require.Equal(t, smaller, a1)
	require.Equal(t, larger, b1)
	require.Equal(t, a1, a2)
	require.Equal(t, b1, b2)
}

func Test_ParseDecisionValue_Rejects_Unknown_Values(t *testing.T) {
	// Act
	_, err := ParseDecisionValue("maybe")

	// Assert
	require.Error(t, err)
}

func Test_ParseDecisionValue_Parses_Accept_And_Reject(t *testing.T) {
	for _, raw := range []string{"accept", "reject"} {
		value, err := ParseDecisionValue(raw)
		require.NoError(t, err)
		require.Equal(t, DecisionValue(raw), value)
	}
}

func Test_Summarize_Counts_Pending_Decisions(t *testing.T) {
	// Arrange
	decisions := []Decision{decision(DecisionAccept)}

	// Act
	summary := Summarize(decisions)

	// Assert
	require.Equal(t, 1, summary.AcceptCount)
	require.Equal(t, 0, summary.RejectCount)
	require.Equal(t, 1, summary.PendingCount)
}

func Test_HasParticipant_Rejects_Outsiders(t *testing.T) {
	// Arrange
	match := Match{
		ID:           uuid.New(),
		ParticipantA: uuid.New(),
		ParticipantB: uuid.New(),
	}

	// Assert
	require.True(t, match.HasParticipant(match.ParticipantA))
	require.True(t, match.HasParticipant(match.ParticipantB))
	require.False(t, match.HasParticipant(uuid.New()))
}
