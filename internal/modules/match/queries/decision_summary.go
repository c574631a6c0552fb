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
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type GetDecisionSummaryQuery struct {
	MatchID uuid.UUID
}

func (q GetDecisionSummaryQuery) Validate() error {
	if q.MatchID == uuid.Nil {
		return fmt.Errorf("invalid MatchID - '%s'", q.MatchID)
	}

	return nil
}

func HandleGetDecisionSummary(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetDecisionSummaryQuery, domain.DecisionSummary](
		r.Context(),
		GetDecisionSummaryQuery{MatchID: matchID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetDecisionSummaryQueryHandler struct {
	db *sql.DB
}

func NewGetDecisionSummaryQueryHandler(db *sql.DB) *GetDecisionSummaryQueryHandler {
	return &GetDecisionSummaryQueryHandler{db}
}

func (h *GetDecisionSummaryQueryHandler) Handle(
	ctx context.Context,
	request GetDecisionSummaryQuery,
) (domain.DecisionSummary, error) {
	const matchQuery = `
		SELECT
			count(id)
		FROM
			matches
		WHERE
			id = $1;`
	counts, err := tql.Query[int](ctx, h.db, matchQuery, request.MatchID)
	if err != nil {
		return domain.DecisionSummary{}, core.NewCommandError(500, err)
	}

	if len(counts) == 0 || counts[0] == 0 {
		return domain.DecisionSummary{}, core.NewCommandError(404, fmt.Errorf("match '%s' not found", request.MatchID))
	}

	const decisionsQuery = `
		SELECT
			*
		FROM
			match_decisions
		WHERE
			match_id = $1;`
	decisions, err := tql.Query[domain.Decision](ctx, h.db, decisionsQuery, request.MatchID)
	if err != nil {
		return domain.DecisionSummary{}, core.NewCommandError(500, err)
	}

	return domain.Summarize(decisions), nil
}
