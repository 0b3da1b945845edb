package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	authhandler "github.com/expense-tools/expense-atlas/pkg/handlers/auth"
	categoryhandler "github.com/expense-tools/expense-atlas/pkg/handlers/category"
	dashboardhandler "github.com/expense-tools/expense-atlas/pkg/handlers/dashboard"
	expensehandler "github.com/expense-tools/expense-atlas/pkg/handlers/expense"
	reporthandler "github.com/expense-tools/expense-atlas/pkg/handlers/report"
	atlasmiddleware "github.com/expense-tools/expense-atlas/pkg/server/middleware"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
	"github.com/expense-tools/expense-atlas/pkg/services/category"
	"github.com/expense-tools/expense-atlas/pkg/services/expense"
	"github.com/expense-tools/expense-atlas/pkg/services/report"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Users      auth.Service
	Expenses   expense.Service
	Categories category.Service
	Reports    report.Service
	Tokens     *auth.TokenIssuer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies

	authHandler := authhandler.NewHandler(deps.Users)
	expenseHandler := expensehandler.NewHandler(deps.Expenses)
	categoryHandler := categoryhandler.NewHandler(deps.Categories)
	dashboardHandler := dashboardhandler.NewHandler(deps.Reports)
	reportHandler := reporthandler.NewHandler(deps.Reports)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(atlasmiddleware.Authenticator(deps.Tokens))

			r.Get("/user/my-profile", authHandler.MyProfile)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Post("/", expenseHandler.Create)
				r.With(atlasmiddleware.RequireRole(auth.RoleAdmin)).
					Get("/all-users", expenseHandler.AllUsers)
				r.Get("/{id}", expenseHandler.Get)
				r.Put("/{id}", expenseHandler.Update)
				r.Delete("/{id}", expenseHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(atlasmiddleware.RequireRole(auth.RoleAdmin))
				r.Get("/", categoryHandler.List)
				r.Post("/", categoryHandler.Create)
				r.Get("/{id}", categoryHandler.Get)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(atlasmiddleware.RequireRole(auth.RoleAdmin))
				r.Get("/summary", dashboardHandler.Summary)
				r.Get("/export-csv", dashboardHandler.ExportCSV)
			})

			r.Route("/report", func(r chi.Router) {
				r.Get("/my-summary", reportHandler.MySummary)
				r.Get("/my-report-csv", reportHandler.MyReportCSV)
			})
		})
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
