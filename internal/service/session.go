package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/metrics"
	"github.com/dtroode/authgate/internal/model"
)

const (
	externalLoginAlphabet = "abcdefghijklmnopqrstuvwxyz"
	externalLoginLength   = 10
	externalSecretLength  = 32
	externalLoginAttempts = 3

	minRevocationTTL = time.Second
)

// Session drives login, refresh, logout and external login.
type Session struct {
	users       model.UserStore
	history     model.LoginHistoryStore
	networks    model.NetworkStore
	revocations model.RevocationCache
	tokens      model.TokenManager
	hasher      model.PasswordHasher
	providers   map[string]model.IdentityProvider
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
	newLogin    func() (string, error)
}

// SessionOption configures Session.
type SessionOption func(*Session)

// WithIdentityProvider registers provider under network.
func WithIdentityProvider(network string, provider model.IdentityProvider) SessionOption {
	return func(s *Session) {
		s.providers[network] = provider
	}
}

// WithMetrics records session outcomes into m.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(
	users model.UserStore,
	history model.LoginHistoryStore,
	networks model.NetworkStore,
	revocations model.RevocationCache,
	tokens model.TokenManager,
	hasher model.PasswordHasher,
	logger *logger.Logger,
	opts ...SessionOption,
) *Session {
	s := &Session{
		users:       users,
		history:     history,
		networks:    networks,
		revocations: revocations,
		tokens:      tokens,
		hasher:      hasher,
		providers:   make(map[string]model.IdentityProvider),
		logger:      logger,
		now:         time.Now,
		newLogin: func() (string, error) {
			return gonanoid.Generate(externalLoginAlphabet, externalLoginLength)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies credentials and opens a new session, replacing any
// previously stored refresh token of the user.
func (s *Session) Login(ctx context.Context, creds model.Credentials) (pair model.TokenPair, err error) {
	ctx, span := tracer.Start(ctx, "Session.Login")
	defer func() {
		s.metrics.ObserveAuth("login", err)
		endSpan(span, err)
	}()

	user, err := s.verifyCredentials(ctx, creds)
	if err != nil {
		return model.TokenPair{}, err
	}
	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	return s.openSession(ctx, user)
}

// AdminLogin verifies credentials and returns the account without minting
// tokens.
func (s *Session) AdminLogin(ctx context.Context, creds model.Credentials) (user model.UserWithRoles, err error) {
	ctx, span := tracer.Start(ctx, "Session.AdminLogin")
	defer func() {
		s.metrics.ObserveAuth("admin_login", err)
		endSpan(span, err)
	}()

	user, err = s.verifyCredentials(ctx, creds)
	if err != nil {
		return model.UserWithRoles{}, err
	}
	s.recordLogin(ctx, user.ID)

	return user, nil
}

// Refresh mints a new access token from a refresh token that is still the
// one stored for its user.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	ctx, span := tracer.Start(ctx, "Session.Refresh")
	defer func() {
		s.metrics.ObserveAuth("refresh", err)
		endSpan(span, err)
	}()

	claims, err := s.tokens.Verify(refreshToken, model.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	stored, err := s.users.GetRefreshToken(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrStaleRefreshToken
		}
		s.logger.Error("Session service: failed to load refresh token",
			"user_id", claims.UserID,
			"error", err.Error())
		return "", fmt.Errorf("failed to load refresh token: %w", err)
	}
	if stored == nil || subtle.ConstantTimeCompare([]byte(*stored), []byte(refreshToken)) != 1 {
		s.logger.Info("Session service: stale refresh token presented",
			"user_id", claims.UserID,
			"token_id", claims.TokenID)
		return "", model.ErrStaleRefreshToken
	}

	accessToken, _, err = s.tokens.Mint(claims.Subject, model.TokenPayload{
		UserID: claims.UserID,
		Roles:  claims.Roles,
	}, model.TokenKindAccess)
	if err != nil {
		s.logger.Error("Session service: failed to mint access token",
			"user_id", claims.UserID,
			"error", err.Error())
		return "", fmt.Errorf("failed to mint access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes the access token for the rest of its lifetime and clears
// the stored refresh token.
func (s *Session) Logout(ctx context.Context, accessToken string) (err error) {
	ctx, span := tracer.Start(ctx, "Session.Logout")
	defer func() {
		s.metrics.ObserveAuth("logout", err)
		endSpan(span, err)
	}()

	claims, err := s.tokens.Verify(accessToken, model.TokenKindAccess)
	if err != nil {
		return err
	}

	// A replayed token must not clear the refresh token of a newer session.
	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.Error("Session service: failed to check revoked token",
			"user_id", claims.UserID,
			"token_id", claims.TokenID,
			"error", err.Error())
		return fmt.Errorf("failed to check revoked token: %w", err)
	}
	if revoked {
		return model.ErrRevokedToken
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		s.logger.Error("Session service: failed to revoke access token",
			"user_id", claims.UserID,
			"token_id", claims.TokenID,
			"error", err.Error())
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, claims.UserID, nil); err != nil {
		s.logger.Error("Session service: failed to clear refresh token",
			"user_id", claims.UserID,
			"error", err.Error())
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	s.logger.Info("Session service: logged out",
		"user_id", claims.UserID,
		"token_id", claims.TokenID)

	return nil
}

// NetworkLoginURL returns the provider page a user visits to obtain an
// external token.
func (s *Session) NetworkLoginURL(network string) (string, error) {
	provider, ok := s.providers[network]
	if !ok {
		return "", fmt.Errorf("%w: unsupported network %q", model.ErrInvalidInput, network)
	}
	return provider.AuthURL(), nil
}

// ExternalLogin exchanges a provider token for a profile, finds or creates
// the matching account, links it to the network and opens a session.
func (s *Session) ExternalLogin(ctx context.Context, network, externalToken string) (pair model.TokenPair, err error) {
	ctx, span := tracer.Start(ctx, "Session.ExternalLogin")
	span.SetAttributes(attribute.String("network", network))
	defer func() {
		s.metrics.ObserveAuth("external_login", err)
		endSpan(span, err)
	}()

	provider, ok := s.providers[network]
	if !ok {
		return model.TokenPair{}, fmt.Errorf("%w: unsupported network %q", model.ErrInvalidInput, network)
	}

	profile, err := provider.Exchange(ctx, externalToken)
	if err != nil {
		s.logger.Info("Session service: external token exchange failed",
			"network", network,
			"error", err.Error())
		return model.TokenPair{}, model.ErrAuthentication
	}

	user, err := s.findOrCreateExternalUser(ctx, profile)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.linkNetwork(ctx, user.ID, network); err != nil {
		return model.TokenPair{}, err
	}

	return s.openSession(ctx, user)
}

func (s *Session) findOrCreateExternalUser(ctx context.Context, profile model.ExternalProfile) (model.UserWithRoles, error) {
	login := strings.TrimSpace(profile.Login)
	if login == "" {
		return s.createAnonymousUser(ctx, profile)
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Session service: failed to get user by login",
			"login", login,
			"error", err.Error())
		return model.UserWithRoles{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	return s.createExternalUser(ctx, login, profile)
}

// createAnonymousUser stores a profile without a login under a generated
// one, drawing a new login when the previous one is taken.
func (s *Session) createAnonymousUser(ctx context.Context, profile model.ExternalProfile) (model.UserWithRoles, error) {
	for attempt := 1; ; attempt++ {
		login, err := s.newLogin()
		if err != nil {
			return model.UserWithRoles{}, fmt.Errorf("failed to generate login: %w", err)
		}

		user, err := s.createExternalUser(ctx, login, profile)
		if !errors.Is(err, model.ErrDuplicate) {
			return user, err
		}
		if attempt == externalLoginAttempts {
			s.logger.Error("Session service: generated logins exhausted",
				"attempts", attempt)
			return model.UserWithRoles{}, model.ErrAuthentication
		}
	}
}

// createExternalUser stores an account whose password is a random secret
// nobody knows, so it can only sign in through its provider.
func (s *Session) createExternalUser(ctx context.Context, login string, profile model.ExternalProfile) (model.UserWithRoles, error) {
	secret, err := gonanoid.New(externalSecretLength)
	if err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		CreatedAt:    s.now(),
	})
	if err != nil {
		s.logger.Error("Session service: failed to create external user",
			"login", login,
			"error", err.Error())
		return model.UserWithRoles{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Session service: external user created",
		"user_id", created.ID,
		"login", created.Login)

	return model.UserWithRoles{User: created}, nil
}

func (s *Session) linkNetwork(ctx context.Context, userID uuid.UUID, network string) error {
	exists, err := s.networks.Exists(ctx, userID, network)
	if err != nil {
		return fmt.Errorf("failed to check network link: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.networks.Create(ctx, model.ExternalLink{ID: uuid.New(), UserID: userID, Network: network}); err != nil {
		return fmt.Errorf("failed to link network: %w", err)
	}
	return nil
}

// verifyCredentials fails with ErrAuthentication for an unknown login or a
// wrong password alike, and both paths run one bcrypt comparison.
func (s *Session) verifyCredentials(ctx context.Context, creds model.Credentials) (model.UserWithRoles, error) {
	login := strings.TrimSpace(creds.Login)
	if login == "" || creds.Password == "" {
		return model.UserWithRoles{}, model.ErrAuthentication
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.hasher.Compare("", creds.Password)
			return model.UserWithRoles{}, model.ErrAuthentication
		}
		s.logger.Error("Session service: failed to get user by login",
			"login", login,
			"error", err.Error())
		return model.UserWithRoles{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, creds.Password) {
		s.logger.Info("Session service: wrong password",
			"user_id", user.ID)
		return model.UserWithRoles{}, model.ErrAuthentication
	}

	return user, nil
}

// openSession mints both tokens from the current role snapshot, stores the
// refresh token and appends the login to the history.
func (s *Session) openSession(ctx context.Context, user model.UserWithRoles) (model.TokenPair, error) {
	payload := model.TokenPayload{UserID: user.ID, Roles: user.RoleClaims()}

	access, _, err := s.tokens.Mint(user.Login, payload, model.TokenKindAccess)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, _, err := s.tokens.Mint(user.Login, payload, model.TokenKindRefresh)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		s.logger.Error("Session service: failed to store refresh token",
			"user_id", user.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.recordLogin(ctx, user.ID)

	s.logger.Info("Session service: session opened",
		"user_id", user.ID,
		"login", user.Login)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Session) recordLogin(ctx context.Context, userID uuid.UUID) {
	if err := s.history.Append(ctx, userID, s.now()); err != nil {
		s.logger.Error("Session service: failed to append login history",
			"user_id", userID,
			"error", err.Error())
	}
}
