package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tools/expense-atlas/pkg/server"
	"github.com/expense-tools/expense-atlas/pkg/services/audit"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
	"github.com/expense-tools/expense-atlas/pkg/services/category"
	"github.com/expense-tools/expense-atlas/pkg/services/config"
	"github.com/expense-tools/expense-atlas/pkg/services/expense"
	"github.com/expense-tools/expense-atlas/pkg/services/report"
	"github.com/expense-tools/expense-atlas/pkg/store/sqlite"
	categorystore "github.com/expense-tools/expense-atlas/pkg/store/sqlite/category"
	expensestore "github.com/expense-tools/expense-atlas/pkg/store/sqlite/expense"
	reportlogstore "github.com/expense-tools/expense-atlas/pkg/store/sqlite/reportlog"
	userstore "github.com/expense-tools/expense-atlas/pkg/store/sqlite/user"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Expense Atlas web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional yaml config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	users, err := userstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("create user store: %w", err)
	}
	expenses, err := expensestore.NewStore(db)
	if err != nil {
		return fmt.Errorf("create expense store: %w", err)
	}
	categories, err := categorystore.NewStore(db)
	if err != nil {
		return fmt.Errorf("create category store: %w", err)
	}
	reportLogs, err := reportlogstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("create report log store: %w", err)
	}

	var publisher *audit.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = audit.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn().Err(err).Msg("audit publisher unavailable, export events will not be published")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Users:      auth.NewService(users, tokens),
			Expenses:   expense.NewService(expenses, categories),
			Categories: category.NewService(categories),
			Reports:    report.NewService(expenses, audit.NewRecorder(reportLogs, publisher)),
			Tokens:     tokens,
		},
	})

	g, _ := errgroup.WithContext(cmd.Context())
	g.Go(api.Start)
	return g.Wait()
}
