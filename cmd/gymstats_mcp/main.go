// Package main runs the gymstats MCP server over stdio (for local AI tooling).
// The same MCP server is also mounted on the main backend at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the backend URL (no extra deploy).
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"time"

	"github.com/2beens/gymtracker/internal"
	"github.com/2beens/gymtracker/internal/cache"
	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/db"
	"github.com/2beens/gymtracker/internal/gymstats/library"
	gymstatsmcp "github.com/2beens/gymtracker/internal/gymstats/mcp"
	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/logging"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout is the MCP transport
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(logging.LoggerSetupParams{
		ServiceName:   "gymstats-mcp",
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
		Console:       os.Stderr,
	})
	if err := names.SetLocale(cfg.NameNormalizationLocale); err != nil {
		log.Fatalf("name normalization locale: %v", err)
	}
	location, err := time.LoadLocation(cfg.CalendarTimezone)
	if err != nil {
		log.Fatalf("calendar timezone: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     cfg.PostgresPassword,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %v", err)
		}
	}()

	services := internal.NewServices(
		dbPool,
		library.NewRedisCache(rdb, time.Duration(cfg.LibraryCacheTTLSeconds)*time.Second),
		cache.NewSnapshotCache(cfg.HistoryCacheSizeMB, cfg.HistoryCacheTTLSeconds),
		metrics.NewManager("mcp", "gymstats", prometheus.NewRegistry()),
		location,
	)
	server := gymstatsmcp.NewServer(dbPool, services.Plans, services.History, services.Library)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
