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
	"github.com/google/uuid"
)

type CreatePoolCommand struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (c CreatePoolCommand) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	return nil
}

func HandleCreatePool(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreatePoolCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreatePoolCommand, domain.Pool](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "pools", response.ID.String())
	core.WriteCreated(w, r, location, response)
}

type CreatePoolCommandHandler struct {
	db *sql.DB
}

func NewCreatePoolCommandHandler(db *sql.DB) *CreatePoolCommandHandler {
	return &CreatePoolCommandHandler{db}
}

func (h *CreatePoolCommandHandler) Handle(
	ctx context.Context,
	request CreatePoolCommand,
) (domain.Pool, error) {
	const stmt = `
		INSERT INTO
			pools (id, name, location)
		VALUES
			($1, $2, $3)
		RETURNING *;`
	pools, err := tql.Query[domain.Pool](ctx, h.db, stmt, uuid.New(), request.Name, request.Location)
	if err != nil {
		return domain.Pool{}, core.NewCommandError(500, err, core.WithReason("failed to create pool"))
	}

	return pools[0], nil
}
