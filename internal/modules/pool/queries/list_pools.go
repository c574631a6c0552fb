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
)

const defaultPageSize = 100

type ListPoolsQuery struct {
	Location string
	Skip     int
	Limit    int
}

func (q ListPoolsQuery) Validate() error {
	if q.Skip < 0 {
		return fmt.Errorf("invalid Skip - '%d'", q.Skip)
	}

	if q.Limit < 1 {
		return fmt.Errorf("invalid Limit - '%d'", q.Limit)
	}

	return nil
}

func HandleListPools(w http.ResponseWriter, r *http.Request) {
	query := ListPoolsQuery{
		Location: r.URL.Query().Get("location"),
		Limit:    defaultPageSize,
	}

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

	response, err := mediator.Send[ListPoolsQuery, []domain.Pool](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListPoolsQueryHandler struct {
	db *sql.DB
}

func NewListPoolsQueryHandler(db *sql.DB) *ListPoolsQueryHandler {
	return &ListPoolsQueryHandler{db}
}

func (h *ListPoolsQueryHandler) Handle(
	ctx context.Context,
	request ListPoolsQuery,
) ([]domain.Pool, error) {
	const query = `
		SELECT
			*
		FROM
			pools
		WHERE
			($1::text IS NULL OR location = $1)
		ORDER BY
			created_at DESC
		OFFSET $2
		LIMIT $3;`

	var location interface{}
	if request.Location != "" {
		location = request.Location
	}

	return tql.Query[domain.Pool](ctx, h.db, query, location, request.Skip, request.Limit)
}
