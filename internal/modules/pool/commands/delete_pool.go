package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type DeletePoolCommand struct {
	PoolID uuid.UUID
}

func (c DeletePoolCommand) Validate() error {
	if c.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", c.PoolID)
	}

	return nil
}

func HandleDeletePool(w http.ResponseWriter, r *http.Request) {
	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	_, err = mediator.Send[DeletePoolCommand, core.Unit](r.Context(), DeletePoolCommand{PoolID: poolID})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type DeletePoolCommandHandler struct {
	db *sql.DB
}

func NewDeletePoolCommandHandler(db *sql.DB) *DeletePoolCommandHandler {
	return &DeletePoolCommandHandler{db}
}

func (h *DeletePoolCommandHandler) Handle(
	ctx context.Context,
	request DeletePoolCommand,
) (core.Unit, error) {
	// Members, matches, and decisions go with the pool via FK cascades.
	const stmt = `
		DELETE FROM
			pools
		WHERE
			id = $1;`
	result, err := tql.Exec(ctx, h.db, stmt, request.PoolID)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to delete pool"))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return core.Unit{}, err
	}

	if deleted == 0 {
		return core.Unit{}, core.NewCommandError(404, fmt.Errorf("pool '%s' not found", request.PoolID))
	}

	return core.Unit{}, nil
}
