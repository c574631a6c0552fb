package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	matchcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/match/commands"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RemovePoolMemberCommand struct {
	PoolID uuid.UUID
	UserID uuid.UUID
}

func (c RemovePoolMemberCommand) Validate() error {
	if c.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", c.PoolID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleRemovePoolMember(w http.ResponseWriter, r *http.Request) {
	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'userId'"))
		return
	}

	command := RemovePoolMemberCommand{PoolID: poolID, UserID: userID}

	_, err = mediator.Send[RemovePoolMemberCommand, core.Unit](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type RemovePoolMemberCommandHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRemovePoolMemberCommandHandler(db *sql.DB, logger *zap.Logger) *RemovePoolMemberCommandHandler {
	return &RemovePoolMemberCommandHandler{db, logger}
}

func (h *RemovePoolMemberCommandHandler) Handle(
	ctx context.Context,
	request RemovePoolMemberCommand,
) (core.Unit, error) {
	const stmt = `
		DELETE FROM
			pool_members
		WHERE
			pool_id = $1 AND user_id = $2;`
	result, err := tql.Exec(ctx, h.db, stmt, request.PoolID, request.UserID)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to remove pool member"))
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return core.Unit{}, err
	}

	if removed == 0 {
		return core.Unit{}, core.NewCommandError(
			404,
			fmt.Errorf("user '%s' is not a member of pool '%s'", request.UserID, request.PoolID),
		)
	}

	// The member is gone either way - cleanup failures only get logged
	// here, and the cleanup action endpoint allows a replay.
	cleanup := matchcommands.CleanupParticipantMatchesCommand{
		PoolID: request.PoolID,
		UserID: request.UserID,
	}
	cleaned, err := mediator.Send[matchcommands.CleanupParticipantMatchesCommand, matchcommands.CleanupParticipantMatchesResponse](
		ctx,
		cleanup,
	)
	if err != nil {
		h.logger.Error(
			"match cleanup after member removal failed",
			zap.String("pool_id", request.PoolID.String()),
			zap.String("user_id", request.UserID.String()),
			zap.Error(err),
		)
		return core.Unit{}, nil
	}

	h.logger.Info(
		"cleaned up matches for removed pool member",
		zap.String("pool_id", request.PoolID.String()),
		zap.String("user_id", request.UserID.String()),
		zap.Int64("matches_deleted", cleaned.MatchesDeleted),
	)

	return core.Unit{}, nil
}
