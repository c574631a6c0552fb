package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/match/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// CleanupParticipantMatchesCommand removes every non-accepted match a
// departing participant has in a pool, cascading their decisions. Triggered
// after pool-member removal and replayable from an at-least-once event feed -
// deleting zero rows is a success.
type CleanupParticipantMatchesCommand struct {
	PoolID uuid.UUID `json:"pool_id"`
	UserID uuid.UUID `json:"user_id"`
}

func (c CleanupParticipantMatchesCommand) Validate() error {
	if c.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", c.PoolID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type CleanupParticipantMatchesResponse struct {
	MatchesDeleted int64 `json:"matches_deleted"`
}

func HandleCleanupParticipantMatches(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CleanupParticipantMatchesCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CleanupParticipantMatchesCommand, CleanupParticipantMatchesResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type CleanupParticipantMatchesCommandHandler struct {
	db *sql.DB
}

func NewCleanupParticipantMatchesCommandHandler(db *sql.DB) *CleanupParticipantMatchesCommandHandler {
	return &CleanupParticipantMatchesCommandHandler{db}
}

func (h *CleanupParticipantMatchesCommandHandler) Handle(
	ctx context.Context,
	request CleanupParticipantMatchesCommand,
) (CleanupParticipantMatchesResponse, error) {
	// Accepted matches survive the participant leaving the pool.
	const stmt = `
		DELETE FROM
			matches
		WHERE
			pool_id = $1
			AND (participant_a = $2 OR participant_b = $2)
			AND status <> $3;`
	result, err := tql.Exec(ctx, h.db, stmt, request.PoolID, request.UserID, string(domain.MatchAccepted))
	if err != nil {
		return CleanupParticipantMatchesResponse{}, core.NewCommandError(500, err, core.WithReason("match cleanup failed"))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return CleanupParticipantMatchesResponse{}, err
	}

	return CleanupParticipantMatchesResponse{MatchesDeleted: deleted}, nil
}
