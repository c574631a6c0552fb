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

type ListMatchesQuery struct {
	PoolID uuid.UUID
	UserID uuid.UUID
	Status string
}

func (q ListMatchesQuery) Validate() error {
	if q.Status == "" {
		return nil
	}

	switch domain.MatchStatus(q.Status) {
	case domain.MatchWaiting, domain.MatchAccepted, domain.MatchRejected:
		return nil
	default:
		return fmt.Errorf("invalid Status - '%s'", q.Status)
	}
}

func HandleListMatches(w http.ResponseWriter, r *http.Request) {
	query := ListMatchesQuery{Status: r.URL.Query().Get("status")}

	if raw := r.URL.Query().Get("poolId"); raw != "" {
		poolID, err := uuid.Parse(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'poolId'"))
			return
		}
		query.PoolID = poolID
	}

	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'userId'"))
			return
		}
		query.UserID = userID
	}

	response, err := mediator.Send[ListMatchesQuery, []domain.Match](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListMatchesQueryHandler struct {
	db *sql.DB
}

func NewListMatchesQueryHandler(db *sql.DB) *ListMatchesQueryHandler {
	return &ListMatchesQueryHandler{db}
}

func (h *ListMatchesQueryHandler) Handle(
	ctx context.Context,
	request ListMatchesQuery,
) ([]domain.Match, error) {
	const query = `
		SELECT
			*
		FROM
			matches
		WHERE
			($1::uuid IS NULL OR pool_id = $1)
			AND ($2::uuid IS NULL OR participant_a = $2 OR participant_b = $2)
			AND ($3::text IS NULL OR status = $3)
		ORDER BY
			created_at DESC;`
	return tql.Query[domain.Match](
		ctx,
		h.db,
		query,
		nullableID(request.PoolID),
		nullableID(request.UserID),
		nullableString(request.Status),
	)
}

func nullableID(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
