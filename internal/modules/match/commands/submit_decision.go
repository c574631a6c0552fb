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

type SubmitDecisionCommand struct {
	MatchID  uuid.UUID `json:"match_id"`
	UserID   uuid.UUID `json:"user_id"`
	Decision string    `json:"decision"`
}

func (c SubmitDecisionCommand) Validate() error {
	if c.MatchID == uuid.Nil {
		return fmt.Errorf("invalid MatchID - '%s'", c.MatchID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if _, err := domain.ParseDecisionValue(c.Decision); err != nil {
		return err
	}

	return nil
}

func HandleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[SubmitDecisionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	decision, err := mediator.Send[SubmitDecisionCommand, domain.Decision](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteCreated(w, r, "", decision)
}

type SubmitDecisionCommandHandler struct {
	db *sql.DB
}

func NewSubmitDecisionCommandHandler(db *sql.DB) *SubmitDecisionCommandHandler {
	return &SubmitDecisionCommandHandler{db}
}

// Handle upserts the participant's decision and recomputes the match status
// from the full decision set, all inside a single transaction. The match row
// is locked first, so two participants deciding at the same time serialize
// and the later recompute always observes the earlier upsert.
func (h *SubmitDecisionCommandHandler) Handle(
	ctx context.Context,
	request SubmitDecisionCommand,
) (domain.Decision, error) {
	value, err := domain.ParseDecisionValue(request.Decision)
	if err != nil {
		return domain.Decision{}, core.NewCommandError(400, err)
	}

	var recorded domain.Decision

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const matchQuery = `
			SELECT
				*
			FROM
				matches
			WHERE
				id = $1
			FOR UPDATE;`
		matches, err := tql.Query[domain.Match](ctx, tx, matchQuery, request.MatchID)
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			return core.NewCommandError(
				404,
				fmt.Errorf("match '%s' not found", request.MatchID),
			)
		}

		match := matches[0]
		if !match.HasParticipant(request.UserID) {
			return core.NewCommandError(
				403,
				fmt.Errorf("user '%s' is not a participant in match '%s'", request.UserID, match.ID),
			)
		}

		const upsertStmt = `
			INSERT INTO
				match_decisions (match_id, user_id, value, decided_at)
			VALUES
				($1, $2, $3, now())
			ON CONFLICT (match_id, user_id) DO UPDATE SET
				value = EXCLUDED.value,
				decided_at = EXCLUDED.decided_at;`
		if _, err := tql.Exec(ctx, tx, upsertStmt, match.ID, request.UserID, string(value)); err != nil {
			return err
		}

		const decisionsQuery = `
			SELECT
				*
			FROM
				match_decisions
			WHERE
				match_id = $1;`
		decisions, err := tql.Query[domain.Decision](ctx, tx, decisionsQuery, match.ID)
		if err != nil {
			return err
		}

		// updated_at moves on every submission, even when the computed
		// status comes out unchanged.
		const statusStmt = `
			UPDATE
				matches
			SET
				status = $1,
				updated_at = now()
			WHERE
				id = $2;`
		status := domain.ComputeStatus(decisions)
		if _, err := tql.Exec(ctx, tx, statusStmt, string(status), match.ID); err != nil {
			return err
		}

		for _, d := range decisions {
			if d.UserID == request.UserID {
				recorded = d
			}
		}

		return nil
	}

	if err := core.Tx(ctx, h.db, txFn); err != nil {
		if commandErr, ok := err.(core.CommandError); ok {
			return domain.Decision{}, commandErr
		}
		return domain.Decision{}, core.NewCommandError(500, err, core.WithReason("failed to record decision"))
	}

	return recorded, nil
}
