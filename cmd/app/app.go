package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festflow/festflow-api/internal/api"
	"github.com/festflow/festflow-api/internal/config"
	"github.com/festflow/festflow-api/internal/db"
	"github.com/festflow/festflow-api/internal/logger"
	"github.com/festflow/festflow-api/internal/repository/dao"
)

const (
	defaultConfigPath = "./cmd/app/config.yml"
	shutdownTimeout   = 10 * time.Second
)

// Start runs the festflow command line. Without a subcommand it serves the API.
func Start() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the FestFlow HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(configPath)
		},
	}

	rootCmd := &cobra.Command{
		Use:           "festflow",
		Short:         "FestFlow college event management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	return rootCmd
}

func setup(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.Log.Level); err != nil {
		return nil, nil, fmt.Errorf("failed to set log level -> %w", err)
	}

	gdb, err := db.Open(conf, os.Getenv("DATABASE_URL"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, nil, fmt.Errorf("failed to migrate database -> %w", err)
	}

	return conf, gdb, nil
}

func migrate(configPath string) error {
	_, gdb, err := setup(configPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(gdb)
	}()

	zap.L().Info("database schema is up to date")

	return nil
}

func serve(ctx context.Context, configPath string) error {
	conf, gdb, err := setup(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			zap.L().Warn("failed to close database", zap.Error(err))
		}
	}()

	watchLogLevel(configPath)

	s := api.NewServer(conf, gdb)
	server := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

// watchLogLevel applies log.level edits to the running process. Other keys
// need a restart.
func watchLogLevel(configPath string) {
	err := config.Watch(configPath,
		func(conf *config.AppConfig) {
			if err := logger.SetLevel(conf.Log.Level); err != nil {
				zap.L().Warn("ignoring log level change", zap.Error(err))
				return
			}
			zap.L().Info("log level changed", zap.String("level", conf.Log.Level))
		},
		func(err error) {
			zap.L().Warn("ignoring config change", zap.Error(err))
		},
	)
	if err != nil {
		zap.L().Warn("config hot reload disabled", zap.Error(err))
	}
}
