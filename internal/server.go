package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymtracker/internal/cache"
	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/db"
	"github.com/2beens/gymtracker/internal/gymstats/history"
	"github.com/2beens/gymtracker/internal/gymstats/library"
	gymstatsmcp "github.com/2beens/gymtracker/internal/gymstats/mcp"
	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// a session document with notes on every set stays well below this
const maxRequestBodyBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	historyCache *cache.SnapshotCache
	location     *time.Location

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

// Services are the gymstats domain services, wired to each other.
type Services struct {
	Plans    *plans.Service
	Sessions *sessions.Service
	History  *history.Service
	Library  *library.Service
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	if err := names.SetLocale(cfg.NameNormalizationLocale); err != nil {
		return nil, fmt.Errorf("name normalization locale: %w", err)
	}
	location, err := time.LoadLocation(cfg.CalendarTimezone)
	if err != nil {
		return nil, fmt.Errorf("calendar timezone [%s]: %w", cfg.CalendarTimezone, err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     cfg.PostgresPassword,
		TracingEnabled: cfg.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "gymstats", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(cfg.HoneycombEnabled, "gymstats-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:       cfg,
		dbPool:       dbPool,
		redisClient:  rdb,
		historyCache: cache.NewSnapshotCache(cfg.HistoryCacheSizeMB, cfg.HistoryCacheTTLSeconds),
		location:     location,
		versionInfo:  params.VersionInfo,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// NewServices wires the gymstats services on top of the postgres repos.
func NewServices(
	dbPool *pgxpool.Pool,
	namesCache *library.RedisCache,
	historyCache cache.Cache,
	metricsManager *metrics.Manager,
	location *time.Location,
) *Services {
	sessionsRepo := sessions.NewRepo(dbPool)

	libraryService := library.NewService(library.NewRepo(dbPool), namesCache, metricsManager)
	plansService := plans.NewService(plans.NewRepo(dbPool), libraryService, metricsManager)
	historyService := history.NewService(sessionsRepo, plansService, historyCache, metricsManager, location)
	sessionsService := sessions.NewService(sessionsRepo, plansService, libraryService, historyService, metricsManager)

	return &Services{
		Plans:    plansService,
		Sessions: sessionsService,
		History:  historyService,
		Library:  libraryService,
	}
}

func (s *Server) routerSetup(services *Services, rateLimiter middleware.RequestRateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymstats-router"))

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(s.versionInfo))
	}).Methods("GET").Name("version")

	plans.NewHandler(services.Plans).SetupRoutes(r)
	sessions.NewHandler(services.Sessions).SetupRoutes(r)
	history.NewHandler(services.History).SetupRoutes(r)
	library.NewHandler(services.Library).SetupRoutes(r)

	if s.config.MCPEnabled {
		mcpServer := gymstatsmcp.NewServer(s.dbPool, services.Plans, services.History, services.Library)
		r.PathPrefix("/mcp").Handler(gymstatsmcp.NewHTTPHandler(mcpServer)).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.RequireUser("/gymstats"))
	r.Use(middleware.RateLimit(rateLimiter, s.metricsManager, "gymstats", s.config.WriteRateLimitPerMin))
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	services := NewServices(
		s.dbPool,
		library.NewRedisCache(s.redisClient, time.Duration(s.config.LibraryCacheTTLSeconds)*time.Second),
		s.historyCache,
		s.metricsManager,
		s.location,
	)
	router := s.routerSetup(services, redis_rate.NewLimiter(s.redisClient))

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they use
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
