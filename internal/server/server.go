package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"

	"github.com/eskrenkovic/matchmaker-go/internal/config"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/core"
	matchcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/match/commands"
	matchdomain "github.com/eskrenkovic/matchmaker-go/internal/modules/match/domain"
	matchqueries "github.com/eskrenkovic/matchmaker-go/internal/modules/match/queries"
	"github.com/eskrenkovic/matchmaker-go/internal/modules/pool"
	poolcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/commands"
	pooldomain "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"
	poolqueries "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// handler registration

	// pool

	createPoolHandler := poolcommands.NewCreatePoolCommandHandler(db)
	err = mediator.RegisterRequestHandler[poolcommands.CreatePoolCommand, pooldomain.Pool](
		createPoolHandler,
	)
	if err != nil {
		return nil, err
	}

	deletePoolHandler := poolcommands.NewDeletePoolCommandHandler(db)
	err = mediator.RegisterRequestHandler[poolcommands.DeletePoolCommand, core.Unit](
		deletePoolHandler,
	)
	if err != nil {
		return nil, err
	}

	addPoolMemberHandler := poolcommands.NewAddPoolMemberCommandHandler(db)
	err = mediator.RegisterRequestHandler[poolcommands.AddPoolMemberCommand, pooldomain.PoolMember](
		addPoolMemberHandler,
	)
	if err != nil {
		return nil, err
	}

	removePoolMemberHandler := poolcommands.NewRemovePoolMemberCommandHandler(db, config.Logger)
	err = mediator.RegisterRequestHandler[poolcommands.RemovePoolMemberCommand, core.Unit](
		removePoolMemberHandler,
	)
	if err != nil {
		return nil, err
	}

	getPoolHandler := poolqueries.NewGetPoolQueryHandler(db)
	err = mediator.RegisterRequestHandler[poolqueries.GetPoolQuery, pooldomain.Pool](
		getPoolHandler,
	)
	if err != nil {
		return nil, err
	}

	listPoolsHandler := poolqueries.NewListPoolsQueryHandler(db)
	err = mediator.RegisterRequestHandler[poolqueries.ListPoolsQuery, []pooldomain.Pool](
		listPoolsHandler,
	)
	if err != nil {
		return nil, err
	}

	listPoolMembersHandler := poolqueries.NewListPoolMembersQueryHandler(db)
	err = mediator.RegisterRequestHandler[poolqueries.ListPoolMembersQuery, []pooldomain.PoolMember](
		listPoolMembersHandler,
	)
	if err != nil {
		return nil, err
	}

	// match

	membership := pool.NewMembershipStore(db)

	createMatchHandler := matchcommands.NewCreateMatchCommandHandler(db, membership)
	err = mediator.RegisterRequestHandler[matchcommands.CreateMatchCommand, matchcommands.CreateMatchResponse](
		createMatchHandler,
	)
	if err != nil {
		return nil, err
	}

	submitDecisionHandler := matchcommands.NewSubmitDecisionCommandHandler(db)
	err = mediator.RegisterRequestHandler[matchcommands.SubmitDecisionCommand, matchdomain.Decision](
		submitDecisionHandler,
	)
	if err != nil {
		return nil, err
	}

	cleanupMatchesHandler := matchcommands.NewCleanupParticipantMatchesCommandHandler(db)
	err = mediator.RegisterRequestHandler[matchcommands.CleanupParticipantMatchesCommand, matchcommands.CleanupParticipantMatchesResponse](
		cleanupMatchesHandler,
	)
	if err != nil {
		return nil, err
	}

	getMatchHandler := matchqueries.NewGetMatchQueryHandler(db)
	err = mediator.RegisterRequestHandler[matchqueries.GetMatchQuery, matchdomain.Match](
		getMatchHandler,
	)
	if err != nil {
		return nil, err
	}

	listMatchesHandler := matchqueries.NewListMatchesQueryHandler(db)
	err = mediator.RegisterRequestHandler[matchqueries.ListMatchesQuery, []matchdomain.Match](
		listMatchesHandler,
	)
	if err != nil {
		return nil, err
	}

	listDecisionsHandler := matchqueries.NewListDecisionsQueryHandler(db)
	err = mediator.RegisterRequestHandler[matchqueries.ListDecisionsQuery, []matchdomain.Decision](
		listDecisionsHandler,
	)
	if err != nil {
		return nil, err
	}

	decisionSummaryHandler := matchqueries.NewGetDecisionSummaryQueryHandler(db)
	err = mediator.RegisterRequestHandler[matchqueries.GetDecisionSummaryQuery, matchdomain.DecisionSummary](
		decisionSummaryHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	r := chi.NewRouter()

	r.Use(core.CorrelationIDHTTPMiddleware)
	r.Use(cors.AllowAll().Handler)

	r.Route("/pools", func(r chi.Router) {
		r.Post("/", poolcommands.HandleCreatePool)
		r.Get("/", poolqueries.HandleListPools)
		r.Get("/{id}", poolqueries.HandleGetPool)
		r.Delete("/{id}", poolcommands.HandleDeletePool)

		r.Post("/{id}/members", poolcommands.HandleAddPoolMember)
		r.Get("/{id}/members", poolqueries.HandleListPoolMembers)
		r.Delete("/{id}/members/{userId}", poolcommands.HandleRemovePoolMember)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", matchcommands.HandleCreateMatch)
		r.Get("/", matchqueries.HandleListMatches)
		r.Get("/{id}", matchqueries.HandleGetMatch)
		r.Get("/{id}/decision-summary", matchqueries.HandleGetDecisionSummary)

		r.Post("/actions/cleanup", matchcommands.HandleCleanupParticipantMatches)
	})

	r.Route("/decisions", func(r chi.Router) {
		r.Post("/", matchcommands.HandleSubmitDecision)
		r.Get("/", matchqueries.HandleListDecisions)
	})

	server := http.Server{
		Addr:    net.JoinHostPort("", fmt.Sprintf("%d", config.Port)),
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	return &HTTPServer{server: &server, db: db}, nil
}

func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *HTTPServer) Stop() error {
	if err := s.server.Close(); err != nil {
		return err
	}

	return s.db.Close()
}
