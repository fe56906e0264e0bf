package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/ratelimit"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/dtroode/authgate/internal/api/grpc/handler"
	"github.com/dtroode/authgate/internal/api/grpc/middleware"
	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/metrics"
	"github.com/dtroode/authgate/internal/model"
)

// publicMethods read their own credentials and skip bearer authentication.
var publicMethods = map[string]struct{}{
	proto.Auth_Login_FullMethodName:           {},
	proto.Auth_AdminLogin_FullMethodName:      {},
	proto.Auth_Refresh_FullMethodName:         {},
	proto.Auth_Logout_FullMethodName:          {},
	proto.Auth_NetworkLoginURL_FullMethodName: {},
	proto.Auth_NetworkLogin_FullMethodName:    {},
}

// Services bundles the application services the router exposes.
type Services struct {
	Session handler.SessionService
	Roles   handler.RoleService
	Users   handler.UserService
	History handler.HistoryService
}

// Router represents a gRPC router for authgate operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services       Services
	tokens         middleware.TokenVerifier
	authorizer     handler.Authorizer
	contextManager model.ContextManager
	policy         authz.Policy
	limiter        ratelimit.Limiter
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// Option configures Router.
type Option func(*Router)

// WithMetrics records request metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithRateLimit rejects calls the limiter refuses.
func WithRateLimit(limiter ratelimit.Limiter) Option {
	return func(r *Router) {
		r.limiter = limiter
	}
}

// New creates new gRPC Router instance.
func New(
	services Services,
	tokens middleware.TokenVerifier,
	authorizer handler.Authorizer,
	contextManager model.ContextManager,
	policy authz.Policy,
	logger *logger.Logger,
	opts ...Option,
) *Router {
	r := &Router{
		services:       services,
		tokens:         tokens,
		authorizer:     authorizer,
		contextManager: contextManager,
		policy:         policy,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register registers all gRPC services and middleware.
// Interceptors run as recovery, metrics, logging, rate limit, authentication.
//
// Returns the configured gRPC server instance.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	requestMetrics := middleware.NewMetrics(r.metrics)

	unary := []grpc.UnaryServerInterceptor{
		recovery.UnaryServerInterceptor(middleware.NewRecovery(r.logger)...),
		requestMetrics.HandleGRPC,
		logging.HandleGRPC,
	}
	if r.limiter != nil {
		unary = append(unary, ratelimit.UnaryServerInterceptor(r.limiter))
	}
	unary = append(unary, selector.UnaryServerInterceptor(
		auth.UnaryServerInterceptor(authenticate.AuthFunc),
		selector.MatchFunc(authSkip),
	))

	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unary...),
	}, opts...)

	s := grpc.NewServer(opts...)
	r.registerAuthRoutes(s)
	r.registerRoleRoutes(s)
	r.registerUserRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.services.Session, r.authorizer, r.contextManager, r.logger)
	proto.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerRoleRoutes(server *grpc.Server) {
	rolesHandler := handler.NewRoles(r.services.Roles, r.authorizer, r.contextManager, r.policy, r.logger)
	proto.RegisterRolesServer(server, rolesHandler)
}

func (r *Router) registerUserRoutes(server *grpc.Server) {
	usersHandler := handler.NewUsers(r.services.Users, r.services.History, r.authorizer, r.contextManager, r.policy, r.logger)
	proto.RegisterUsersServer(server, usersHandler)
}
