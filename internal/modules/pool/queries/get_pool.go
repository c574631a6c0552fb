package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type GetPoolQuery struct {
	PoolID uuid.UUID
}

func (q GetPoolQuery) Validate() error {
	if q.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", q.PoolID)
	}

	return nil
}

func HandleGetPool(w http.ResponseWriter, r *http.Request) {
	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetPoolQuery, domain.Pool](r.Context(), GetPoolQuery{PoolID: poolID})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetPoolQueryHandler struct {
	db *sql.DB
}

func NewGetPoolQueryHandler(db *sql.DB) *GetPoolQueryHandler {
	return &GetPoolQueryHandler{db}
}

func (h *GetPoolQueryHandler) Handle(
	ctx context.Context,
	request GetPoolQuery,
) (domain.Pool, error) {
	const query = `
		SELECT
			*
		FROM
			pools
		WHERE
			id = $1;`
	pools, err := tql.Query[domain.Pool](ctx, h.db, query, request.PoolID)
	if err != nil {
		return domain.Pool{}, core.NewCommandError(500, err)
	}

	if len(pools) == 0 {
		return domain.Pool{}, core.NewCommandError(404, fmt.Errorf("pool '%s' not found", request.PoolID))
	}

	return pools[0], nil
}
