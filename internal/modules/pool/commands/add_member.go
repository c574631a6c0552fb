package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path"

	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AddPoolMemberCommand struct {
	PoolID uuid.UUID `json:"pool_id"`
	UserID uuid.UUID `json:"user_id"`
}

func (c AddPoolMemberCommand) Validate() error {
	if c.PoolID == uuid.Nil {
		return fmt.Errorf("invalid PoolID - '%s'", c.PoolID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleAddPoolMember(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[AddPoolMemberCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}
	command.PoolID = poolID

	response, err := mediator.Send[AddPoolMemberCommand, domain.PoolMember](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "pools", response.PoolID.String(), "members", response.UserID.String())
	core.WriteCreated(w, r, location, response)
}

type AddPoolMemberCommandHandler struct {
	db *sql.DB
}

func NewAddPoolMemberCommandHandler(db *sql.DB) *AddPoolMemberCommandHandler {
	return &AddPoolMemberCommandHandler{db}
}

func (h *AddPoolMemberCommandHandler) Handle(
	ctx context.Context,
	request AddPoolMemberCommand,
) (domain.PoolMember, error) {
	const stmt = `
		INSERT INTO
			pool_members (pool_id, user_id)
		VALUES
			($1, $2)
		RETURNING *;`
	members, err := tql.Query[domain.PoolMember](ctx, h.db, stmt, request.PoolID, request.UserID)
	if err == nil {
		return members[0], nil
	}

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return domain.PoolMember{}, core.NewCommandError(
				409,
				fmt.Errorf("user '%s' is already a member of pool '%s'", request.UserID, request.PoolID),
			)
		case "23503":
			return domain.PoolMember{}, core.NewCommandError(
				404,
				fmt.Errorf("pool '%s' not found", request.PoolID),
			)
		}
	}

	return domain.PoolMember{}, core.NewCommandError(500, err, core.WithReason("failed to add pool member"))
}
