package handler

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"

	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/identity"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// SessionService defines the session lifecycle operations.
type SessionService interface {
	Login(ctx context.Context, creds model.Credentials) (model.TokenPair, error)
	AdminLogin(ctx context.Context, creds model.Credentials) (model.UserWithRoles, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	NetworkLoginURL(network string) (string, error)
	ExternalLogin(ctx context.Context, network, externalToken string) (model.TokenPair, error)
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	proto.UnimplementedAuthServer
	sessionService SessionService
	guard          guard
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessionService SessionService, authorizer Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		sessionService: sessionService,
		guard:          guard{authorizer: authorizer, contextManager: contextManager},
		logger:         logger,
	}
}

// Login exchanges credentials for an access and refresh token pair.
func (h *Auth) Login(ctx context.Context, req *proto.LoginRequest) (*proto.TokenPair, error) {
	h.logger.Debug("Auth handler: processing login request",
		"login", req.Login)

	pair, err := h.sessionService.Login(ctx, model.Credentials{Login: req.Login, Password: req.Password})
	if err != nil {
		logFailure(h.logger, "Auth handler: login failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"login", req.Login)

	return &proto.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// AdminLogin verifies credentials and returns the account profile.
func (h *Auth) AdminLogin(ctx context.Context, req *proto.LoginRequest) (*proto.User, error) {
	h.logger.Debug("Auth handler: processing admin login request",
		"login", req.Login)

	user, err := h.sessionService.AdminLogin(ctx, model.Credentials{Login: req.Login, Password: req.Password})
	if err != nil {
		logFailure(h.logger, "Auth handler: admin login failed", err)
		return nil, handleError(err)
	}

	return convertUser(user), nil
}

// Refresh exchanges the active refresh token for a new access token.
func (h *Auth) Refresh(ctx context.Context, req *proto.RefreshRequest) (*proto.RefreshResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		// Also accepted as a bearer header.
		refreshToken, _ = auth.AuthFromMD(ctx, "bearer")
	}
	if refreshToken == "" {
		return nil, handleError(model.ErrInvalidToken)
	}

	accessToken, err := h.sessionService.Refresh(ctx, refreshToken)
	if err != nil {
		logFailure(h.logger, "Auth handler: token refresh failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful")

	return &proto.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout revokes the bearer access token and clears the refresh token.
func (h *Auth) Logout(ctx context.Context, _ *proto.Empty) (*proto.Empty, error) {
	h.logger.Debug("Auth handler: processing logout request")

	accessToken, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, handleError(model.ErrInvalidToken)
	}

	if err := h.sessionService.Logout(ctx, accessToken); err != nil {
		logFailure(h.logger, "Auth handler: logout failed", err)
		return nil, handleError(err)
	}

	return &proto.Empty{}, nil
}

// CheckAuth reports whether the caller holds one of the requested roles.
func (h *Auth) CheckAuth(ctx context.Context, req *proto.CheckAuthRequest) (*proto.CheckAuthResponse, error) {
	userID, err := h.guard.authorize(ctx, authz.Requirement{Roles: req.Roles, Service: req.Service})
	if err != nil {
		logFailure(h.logger, "Auth handler: check auth failed", err)
		return nil, handleError(err)
	}

	return &proto.CheckAuthResponse{Success: true, UserID: userID.String()}, nil
}

// NetworkLoginURL returns the provider page issuing external tokens.
func (h *Auth) NetworkLoginURL(_ context.Context, req *proto.NetworkLoginURLRequest) (*proto.NetworkLoginURLResponse, error) {
	url, err := h.sessionService.NetworkLoginURL(networkOrDefault(req.Network))
	if err != nil {
		return nil, handleError(err)
	}
	return &proto.NetworkLoginURLResponse{URL: url}, nil
}

// NetworkLogin exchanges an external provider token for a session.
func (h *Auth) NetworkLogin(ctx context.Context, req *proto.NetworkLoginRequest) (*proto.TokenPair, error) {
	network := networkOrDefault(req.Network)
	h.logger.Debug("Auth handler: processing network login request",
		"network", network)

	pair, err := h.sessionService.ExternalLogin(ctx, network, req.Token)
	if err != nil {
		logFailure(h.logger, "Auth handler: network login failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: network login completed",
		"network", network)

	return &proto.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func networkOrDefault(network string) string {
	if network == "" {
		return identity.YandexNetwork
	}
	return network
}
