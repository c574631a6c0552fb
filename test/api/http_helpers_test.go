package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	matchcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/match/commands"
	matchdomain "github.com/eskrenkovic/matchmaker-go/internal/modules/match/domain"
	poolcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/commands"
	pooldomain "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := fixture.client.Post(
		fmt.Sprintf("%s%s", fixture.baseURL, path),
		"application/json",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)

	return resp
}

func getJSON[T any](t *testing.T, path string, expectedStatus int) T {
	t.Helper()

	resp, err := fixture.client.Get(fmt.Sprintf("%s%s", fixture.baseURL, path))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, expectedStatus, resp.StatusCode)

	var result T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result T
	require.NoError(t, json.Unmarshal(payload, &result))
	return result
}

func deleteRequest(t *testing.T, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s%s", fixture.baseURL, path), nil)
	require.NoError(t, err)

	resp, err := fixture.client.Do(req)
	require.NoError(t, err)

	return resp
}

// createPoolWithMembers provisions a pool with the given members through the
// API and returns the pool ID.
func createPoolWithMembers(t *testing.T, members ...uuid.UUID) uuid.UUID {
	t.Helper()

	resp := postJSON(t, "/pools", poolcommands.CreatePoolCommand{Name: uuid.NewString()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	pool := decodeBody[pooldomain.Pool](t, resp)

	for _, userID := range members {
		resp := postJSON(
			t,
			fmt.Sprintf("/pools/%s/members", pool.ID),
			poolcommands.AddPoolMemberCommand{UserID: userID},
		)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	return pool.ID
}

func createMatch(t *testing.T, poolID, p1, p2 uuid.UUID) matchdomain.Match {
	t.Helper()

	resp := postJSON(t, "/matches", matchcommands.CreateMatchCommand{
		PoolID:       poolID,
		ParticipantA: p1,
		ParticipantB: p2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeBody[matchdomain.Match](t, resp)
}

func submitDecision(t *testing.T, matchID, userID uuid.UUID, value string) *http.Response {
	t.Helper()

	return postJSON(t, "/decisions", matchcommands.SubmitDecisionCommand{
		MatchID:  matchID,
		UserID:   userID,
		Decision: value,
	})
}

func getMatch(t *testing.T, matchID uuid.UUID) matchdomain.Match {
	t.Helper()
	return getJSON[matchdomain.Match](t, fmt.Sprintf("/matches/%s", matchID), http.StatusOK)
}

func getDecisionSummary(t *testing.T, matchID uuid.UUID) matchdomain.DecisionSummary {
	t.Helper()
	return getJSON[matchdomain.DecisionSummary](
		t,
		fmt.Sprintf("/matches/%s/decision-summary", matchID),
		http.StatusOK,
	)
}

func countDecisionRows(t *testing.T, matchID uuid.UUID) int {
	t.Helper()

	var count int
	err := fixture.db.QueryRow(
		"SELECT count(*) FROM match_decisions WHERE match_id = $1",
		matchID,
	).Scan(&count)
	require.NoError(t, err)

	return count
}
