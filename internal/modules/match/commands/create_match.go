package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/match/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MembershipChecker is the pool collaborator consulted before a match is
// created. The decision engine itself never uses it.
type MembershipChecker interface {
	IsMember(ctx context.Context, poolID, userID uuid.UUID) (bool, error)
}

type CreateMatchCommand struct {
	PoolID       uuid.UUID `json:"pool_id"`
	ParticipantA uuid.UUID `json:"participant_a"`
	ParticipantB uuid.UUID `json:"participant_b"`
}

func (c CreateMatchCommand) Validate() error {
	if c.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", c.PoolID)
	}

	if c.ParticipantA == uuid.Nil {
		return fmt.Errorf("invalid ParticipantA - '%s'", c.ParticipantA)
	}

	if c.ParticipantB == uuid.Nil {
		return fmt.Errorf("invalid ParticipantB - '%s'", c.ParticipantB)
	}

	if c.ParticipantA == c.ParticipantB {
		return fmt.Errorf("cannot match participant '%s' with themselves", c.ParticipantA)
	}

	return nil
}

type CreateMatchResponse struct {
	Match   domain.Match `json:"match"`
	Created bool         `json:"created"`
}

func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateMatchCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreateMatchCommand, CreateMatchResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	if !response.Created {
		// The pair already has a waiting match - return it instead of
		// conflicting, so retried creates are safe.
		core.WriteOK(w, r, response.Match)
		return
	}

	location := path.Join(r.Host, "matches", response.Match.ID.String())
	core.WriteCreated(w, r, location, response.Match)
}

type CreateMatchCommandHandler struct {
	db         *sql.DB
	membership MembershipChecker
}

func NewCreateMatchCommandHandler(db *sql.DB, membership MembershipChecker) *CreateMatchCommandHandler {
	return &CreateMatchCommandHandler{db, membership}
}

func (h *CreateMatchCommandHandler) Handle(
	ctx context.Context,
	request CreateMatchCommand,
) (CreateMatchResponse, error) {
	participantA, participantB := domain.CanonicalPair(request.ParticipantA, request.ParticipantB)

	for _, userID := range []uuid.UUID{participantA, participantB} {
		member, err := h.membership.IsMember(ctx, request.PoolID, userID)
		if err != nil {
			return CreateMatchResponse{}, core.NewCommandError(500, err, core.WithReason("membership check failed"))
		}

		if !member {
			return CreateMatchResponse{}, core.NewCommandError(
				400,
				fmt.Errorf("user '%s' is not a member of pool '%s'", userID, request.PoolID),
			)
		}
	}

	const stmt = `
		INSERT INTO
			matches (id, pool_id, participant_a, participant_b, status)
		VALUES
			($1, $2, $3, $4, $5)
		RETURNING *;`
	inserted, err := tql.Query[domain.Match](
		ctx,
		h.db,
		stmt,
		uuid.New(),
		request.PoolID,
		participantA,
		participantB,
		string(domain.MatchWaiting),
	)
	if err == nil {
		return CreateMatchResponse{Match: inserted[0], Created: true}, nil
	}

	if pqErr, ok := err.(*pq.Error); !ok || pqErr.Code != "23505" {
		return CreateMatchResponse{}, core.NewCommandError(500, err, core.WithReason("failed to create match"))
	}

	const existingQuery = `
		SELECT
			*
		FROM
			matches
		WHERE
			pool_id = $1 AND participant_a = $2 AND participant_b = $3;`
	existing, err := tql.Query[domain.Match](ctx, h.db, existingQuery, request.PoolID, participantA, participantB)
	if err != nil {
		return CreateMatchResponse{}, core.NewCommandError(500, err, core.WithReason("failed to load existing match"))
	}

	if len(existing) == 0 {
		return CreateMatchResponse{}, core.NewCommandError(
			500,
			fmt.Errorf("match for pair ('%s', '%s') conflicted but is missing", participantA, participantB),
		)
	}

	if existing[0].Status != domain.MatchWaiting {
		return CreateMatchResponse{}, core.NewCommandError(
			409,
			fmt.Errorf("match for pair ('%s', '%s') already resolved as '%s'", participantA, participantB, existing[0].Status),
		)
	}

	return CreateMatchResponse{Match: existing[0], Created: false}, nil
}
