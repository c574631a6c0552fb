package queries

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

type ListDecisionsQuery struct {
	MatchID uuid.UUID
	UserID  uuid.UUID
}

func HandleListDecisions(w http.ResponseWriter, r *http.Request) {
	var query ListDecisionsQuery

	if raw := r.URL.Query().Get("matchId"); raw != "" {
		matchID, err := uuid.Parse(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'matchId'"))
			return
		}
		query.MatchID = matchID
	}

	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'userId'"))
			return
		}
		query.UserID = userID
	}

	response, err := mediator.Send[ListDecisionsQuery, []domain.Decision](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListDecisionsQueryHandler struct {
	db *sql.DB
}

func NewListDecisionsQueryHandler(db *sql.DB) *ListDecisionsQueryHandler {
	return &ListDecisionsQueryHandler{db}
}

func (h *ListDecisionsQueryHandler) Handle(
	ctx context.Context,
	request ListDecisionsQuery,
) ([]domain.Decision, error) {
	const query = `
		SELECT
			*
		FROM
			match_decisions
		WHERE
			($1::uuid IS NULL OR match_id = $1)
			AND ($2::uuid IS NULL OR user_id = $2)
		ORDER BY
			decided_at DESC;`
	return tql.Query[domain.Decision](
		ctx,
		h.db,
		query,
		nullableID(request.MatchID),
		nullableID(request.UserID),
	)
}
