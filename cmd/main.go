package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/authgate/internal/api/grpc/context"
	"github.com/dtroode/authgate/internal/api/grpc/middleware"
	"github.com/dtroode/authgate/internal/api/grpc/router"
	grpcServer "github.com/dtroode/authgate/internal/api/grpc/server"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/config"
	"github.com/dtroode/authgate/internal/identity"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/metrics"
	"github.com/dtroode/authgate/internal/model"
	"github.com/dtroode/authgate/internal/password"
	"github.com/dtroode/authgate/internal/repository/postgres"
	"github.com/dtroode/authgate/internal/server"
	"github.com/dtroode/authgate/internal/service"
	"github.com/dtroode/authgate/internal/storage/redis"
	"github.com/dtroode/authgate/internal/token"
	"github.com/dtroode/authgate/internal/tracing"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Enabled:      cfg.Tracer.Enabled,
		Endpoint:     cfg.Tracer.Endpoint,
		ServiceName:  cfg.Tracer.ServiceName,
		Version:      buildVersion,
		SamplingRate: cfg.Tracer.SamplingRate,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		logger.Fatal("failed to initialize revocation cache", "error", err)
	}
	defer redisClient.Close()
	revocations := redis.NewRevocationCache(redisClient, cfg.Redis.Timeout)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}
	hasher, err := password.NewHasher(cfg.Password.BcryptCost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	userRoleRepo := postgres.NewUserRoleRepository(db)
	historyRepo := postgres.NewLoginHistoryRepository(db)
	networkRepo := postgres.NewNetworkRepository(db)

	sessionOpts := []service.SessionOption{service.WithMetrics(appMetrics)}
	if cfg.Yandex.Enabled {
		sessionOpts = append(sessionOpts, service.WithIdentityProvider(identity.YandexNetwork, identity.NewYandex(identity.YandexConfig{
			ClientID:    cfg.Yandex.ClientID,
			AuthURL:     cfg.Yandex.AuthURL,
			InfoURL:     cfg.Yandex.InfoURL,
			RedirectURL: cfg.Yandex.RedirectURL,
			Timeout:     cfg.Yandex.Timeout,
		})))
	}

	services := router.Services{
		Session: service.NewSession(userRepo, historyRepo, networkRepo, revocations, tokenManager, hasher, logger, sessionOpts...),
		Roles:   service.NewRoles(roleRepo, cfg.RBAC.SuperroleName, logger),
		Users:   service.NewUsers(userRepo, roleRepo, userRoleRepo, hasher, cfg.RBAC.SuperroleName, logger),
		History: service.NewHistory(historyRepo),
	}
	engine := authz.NewEngine(revocations, cfg.RBAC.SuperroleName, logger)
	policy := authz.NewPolicy(cfg.RBAC.ViewRoles, cfg.RBAC.ChangeRoles)

	r := router.New(services, tokenManager, engine, grpcctx.NewManager(), policy, logger,
		router.WithMetrics(appMetrics),
		router.WithRateLimit(middleware.NewPeerLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)),
	)
	s := r.Register()
	if cfg.GRPC.EnableReflection {
		reflection.Register(s)
	}

	servers := newServers(cfg, grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)), registry)

	var wg sync.WaitGroup
	for _, ls := range servers {
		wg.Add(1)
		go func(ls listenedServer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", ls.server.Address())
			if err := ls.server.Start(ls.layer); err != nil {
				logger.Error("failed to start server", "error", err, "address", ls.server.Address())
				stop()
			}
		}(ls)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, ls := range servers {
		if err := ls.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", ls.server.Address())
		}
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}
	logger.Info("shutdown complete")
}

// listenedServer pairs a server with the layer it listens through.
type listenedServer struct {
	server model.Server
	layer  model.SecurityLayer
}

// newServers returns the gRPC gateway, behind TLS when GRPC_ENABLE_HTTPS is
// set, and the metrics endpoint, always on a plain listener.
func newServers(cfg *config.Config, gateway model.Server, registry prometheus.Gatherer) []listenedServer {
	var grpcLayer model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		grpcLayer = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		grpcLayer = server.NewPlainListener()
	}

	return []listenedServer{
		{server: gateway, layer: grpcLayer},
		{server: server.NewMetricsServer(cfg.Metrics.Addr, registry), layer: server.NewPlainListener()},
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
