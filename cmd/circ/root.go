package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/readerly/circulate/internal/api"
	"github.com/readerly/circulate/internal/config"
	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/log"
	"github.com/readerly/circulate/internal/service"
	"github.com/readerly/circulate/internal/store"
)

// app wires the client stack together for the command handlers.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	client  *api.Client
	session *service.Session
	catalog *service.Catalog
}

var (
	adminFlag bool
	theApp    *app
)

func (a *app) scope() domain.Scope {
	if adminFlag {
		return domain.ScopeAdmin
	}
	return domain.ScopeSelf
}

func (a *app) loans() *service.Loans {
	return a.loansFor(a.scope())
}

func (a *app) loansFor(scope domain.Scope) *service.Loans {
	return service.NewLoans(a.client, scope, a.logger)
}

func (a *app) reservations() *service.Reservations {
	return a.reservationsFor(a.scope())
}

func (a *app) reservationsFor(scope domain.Scope) *service.Reservations {
	return service.NewReservations(a.client, scope, a.logger)
}

func (a *app) notifications() *service.Notifications {
	return service.NewNotifications(a.client, a.logger)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "circ",
		Short:         "Command-line client for the library circulation API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := log.SetupLogger(&cfg.Logging)
			if err != nil {
				logger = log.NullLogger()
			}
			slog.SetDefault(logger)

			st, err := store.Open(config.DefaultStorePath())
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}

			client := api.NewClient(cfg.API.BaseURL, st, logger)
			theApp = &app{
				cfg:     cfg,
				logger:  logger,
				store:   st,
				client:  client,
				session: service.NewSession(client, st, logger),
				catalog: service.NewCatalog(client, st, logger),
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if theApp != nil {
				theApp.store.Close()
			}
		},
	}

	root.PersistentFlags().BoolVar(&adminFlag, "admin", false, "operate on the admin endpoints")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBooksCmd(),
		newLoansCmd(),
		newReservationsCmd(),
		newNotificationsCmd(),
	)
	return root
}

func execute() error {
	return newRootCmd().Execute()
}
