package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/db"
	"github.com/2beens/gymtracker/internal/gymstats/library"
	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/logging"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	timeout    time.Duration
)

// toolEnv is what every command runs against, set up in the root pre-run.
type toolEnv struct {
	cfg            *config.Config
	dbPool         *pgxpool.Pool
	redisClient    *redis.Client
	metricsManager *metrics.Manager
}

var tools toolEnv

var rootCmd = &cobra.Command{
	Use:          "gymstats_tools",
	Short:        "Admin tool for the gymstats backend",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(env, configPath)
		if err != nil {
			return err
		}
		logging.Setup(logging.LoggerSetupParams{
			ServiceName: "gymstats-tools",
			LogToStdout: true,
			LogLevel:    cfg.LogLevel,
			Environment: cfg.Environment,
		})
		if err := names.SetLocale(cfg.NameNormalizationLocale); err != nil {
			return fmt.Errorf("name normalization locale: %w", err)
		}

		dbPool, err := db.NewDBPool(cmd.Context(), db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: cfg.PostgresPassword,
		})
		if err != nil {
			return fmt.Errorf("db pool: %w", err)
		}

		tools = toolEnv{
			cfg:    cfg,
			dbPool: dbPool,
			redisClient: redis.NewClient(&redis.Options{
				Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
				Password: cfg.RedisPassword,
			}),
			metricsManager: metrics.NewManager("tools", "gymstats", prometheus.NewRegistry()),
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if tools.redisClient != nil {
			if err := tools.redisClient.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}
		if tools.dbPool != nil {
			tools.dbPool.Close()
		}
	},
}

func (t toolEnv) libraryService() *library.Service {
	return library.NewService(
		library.NewRepo(t.dbPool),
		library.NewRedisCache(t.redisClient, time.Duration(t.cfg.LibraryCacheTTLSeconds)*time.Second),
		t.metricsManager,
	)
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the gymstats tables if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		if err := db.Migrate(ctx, tools.dbPool); err != nil {
			return err
		}
		fmt.Println("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "max duration of the command")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(plansCmd)
}
