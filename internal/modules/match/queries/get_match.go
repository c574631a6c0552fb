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

type GetMatchQuery struct {
	MatchID uuid.UUID
}

func (q GetMatchQuery) Validate() error {
	if q.MatchID == uuid.Nil {
		return fmt.Errorf("invalid MatchID - '%s'", q.MatchID)
	}

	return nil
}

func HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetMatchQuery, domain.Match](r.Context(), GetMatchQuery{MatchID: matchID})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetMatchQueryHandler struct {
	db *sql.DB
}

func NewGetMatchQueryHandler(db *sql.DB) *GetMatchQueryHandler {
	return &GetMatchQueryHandler{db}
}

func (h *GetMatchQueryHandler) Handle(
	ctx context.Context,
	request GetMatchQuery,
) (domain.Match, error) {
	const query = `
		SELECT
			*
		FROM
			matches
		WHERE
			id = $1;`
	matches, err := tql.Query[domain.Match](ctx, h.db, query, request.MatchID)
	if err != nil {
		return domain.Match{}, core.NewCommandError(500, err)
	}

	if len(matches) == 0 {
		return domain.Match{}, core.NewCommandError(404, fmt.Errorf("match '%s' not found", request.MatchID))
	}

	return matches[0], nil
}
