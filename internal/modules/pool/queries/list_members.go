package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ListPoolMembersQuery struct {
	PoolID uuid.UUID
	Skip   int
	Limit  int
}

func (q ListPoolMembersQuery) Validate() error {
	if q.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", q.PoolID)
	}

	if q.Skip < 0 {
		return fmt.Errorf("invalid Skip - '%d'", q.Skip)
	}

	if q.Limit < 1 {
		return fmt.Errorf("invalid Limit - '%d'", q.Limit)
	}

	return nil
}

func HandleListPoolMembers(w http.ResponseWriter, r *http.Request) {
	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	query := ListPoolMembersQuery{PoolID: poolID, Limit: defaultPageSize}

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'skip'"))
			return
		}
		query.Skip = skip
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'limit'"))
			return
		}
		query.Limit = limit
	}

	response, err := mediator.Send[ListPoolMembersQuery, []domain.PoolMember](
		r.Context(),
		query,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListPoolMembersQueryHandler struct {
	db *sql.DB
}

func NewListPoolMembersQueryHandler(db *sql.DB) *ListPoolMembersQueryHandler {
	return &ListPoolMembersQueryHandler{db}
}

func (h *ListPoolMembersQueryHandler) Handle(
	ctx context.Context,
	request ListPoolMembersQuery,
) ([]domain.PoolMember, error) {
	const poolQuery = `
		SELECT
			count(id)
		FROM
			pools
		WHERE
			id = $1;`
	counts, err := tql.Query[int](ctx, h.db, poolQuery, request.PoolID)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	if len(counts) == 0 || counts[0] == 0 {
		return nil, core.NewCommandError(404, fmt.Errorf("pool '%s' not found", request.PoolID))
	}

	const query = `
		SELECT
			*
		FROM
			pool_members
		WHERE
			pool_id = $1
		ORDER BY
			joined_at ASC
		OFFSET $2
		LIMIT $3;`
	return tql.Query[domain.PoolMember](ctx, h.db, query, request.PoolID, request.Skip, request.Limit)
}
