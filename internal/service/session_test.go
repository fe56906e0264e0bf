package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/mocks"
	"github.com/dtroode/authgate/internal/model"
	"github.com/dtroode/authgate/internal/password"
	"github.com/dtroode/authgate/internal/storage/redis"
	"github.com/dtroode/authgate/internal/testutil"
	"github.com/dtroode/authgate/internal/token"
)

const (
	accessTTL  = time.Hour
	refreshTTL = 240 * time.Hour
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sessionEnv struct {
	session     *Session
	engine      *authz.Engine
	revocations *redis.RevocationCache
	tokens      *token.JWT
	hasher      *password.Hasher
	db          *testutil.MemoryDB
	mr          *miniredis.Miniredis
	clock       *testClock
}

func newSessionEnv(t *testing.T, opts ...SessionOption) *sessionEnv {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	tokens, err := token.NewJWT("test-secret", accessTTL, refreshTTL, token.WithClock(clock.Now))
	require.NoError(t, err)
	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	client, mr := testutil.MakeRedis(t)
	revocations := redis.NewRevocationCache(client, time.Second)
	db := testutil.NewMemoryDB()
	log := testutil.MakeNoopLogger()

	opts = append([]SessionOption{WithClock(clock.Now)}, opts...)
	session := NewSession(db.Users(), db.History(), db.Networks(), revocations, tokens, hasher, log, opts...)

	return &sessionEnv{
		session:     session,
		engine:      authz.NewEngine(revocations, "superrole", log),
		revocations: revocations,
		tokens:      tokens,
		hasher:      hasher,
		db:          db,
		mr:          mr,
		clock:       clock,
	}
}

func (e *sessionEnv) addUser(t *testing.T, login, pass string, roles ...model.Role) model.User {
	t.Helper()
	ctx := context.Background()

	hash, err := e.hasher.Hash(pass)
	require.NoError(t, err)
	user, err := e.db.Users().Create(ctx, model.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		CreatedAt:    e.clock.Now(),
	})
	require.NoError(t, err)

	for _, role := range roles {
		role.ID = uuid.New()
		_, err := e.db.Roles().Create(ctx, role)
		require.NoError(t, err)
		require.NoError(t, e.db.UserRoles().Attach(ctx, user.ID, role.ID))
	}
	return user
}

func (e *sessionEnv) storedRefresh(t *testing.T, userID uuid.UUID) *string {
	t.Helper()
	stored, err := e.db.Users().GetRefreshToken(context.Background(), userID)
	require.NoError(t, err)
	return stored
}

func TestSession_Login_RoleSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret",
		model.Role{Name: "admin", Service: "auth"},
		model.Role{Name: "viewer", Service: "billing"},
	)

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	want := []model.RoleClaim{{Name: "admin", Service: "auth"}, {Name: "viewer", Service: "billing"}}
	for kind, tok := range map[model.TokenKind]string{
		model.TokenKindAccess:  pair.AccessToken,
		model.TokenKindRefresh: pair.RefreshToken,
	} {
		claims, err := env.tokens.Verify(tok, kind)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, want, claims.Roles)
	}

	stored := env.storedRefresh(t, user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, pair.RefreshToken, *stored)

	records, err := env.db.History().ListByUser(ctx, user.ID, model.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, env.clock.Now(), records[0].LoginAt)
}

func TestSession_Login_RoleChangesDoNotAffectIssuedTokens(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret", model.Role{Name: "admin", Service: "auth"})

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	withRoles, err := env.db.Users().GetWithRoles(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, env.db.UserRoles().Detach(ctx, user.ID, withRoles.Roles[0].ID))

	claims, err := env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)
	_, err = env.engine.Authorize(ctx, claims, authz.Requirement{Roles: []string{"admin"}})
	require.NoError(t, err)

	access, err := env.session.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	refreshed, err := env.tokens.Verify(access, model.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, []model.RoleClaim{{Name: "admin", Service: "auth"}}, refreshed.Roles)
}

func TestSession_Login_Failures(t *testing.T) {
	env := newSessionEnv(t)
	env.addUser(t, "bob", "right")

	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{name: "unknown user", creds: model.Credentials{Login: "alice", Password: "secret"}},
		{name: "wrong password", creds: model.Credentials{Login: "bob", Password: "wrong"}},
		{name: "empty login", creds: model.Credentials{Login: " ", Password: "right"}},
		{name: "empty password", creds: model.Credentials{Login: "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.session.Login(context.Background(), tt.creds)
			require.ErrorIs(t, err, model.ErrAuthentication)
			assert.Equal(t, model.ErrAuthentication.Error(), err.Error())
		})
	}
}

func TestSession_Login_UpstreamFailure(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewUserStore(t)
	history := mocks.NewLoginHistoryStore(t)
	networks := mocks.NewNetworkStore(t)
	revocations := mocks.NewRevocationCache(t)
	tokens := mocks.NewTokenManager(t)
	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByLogin", mock.Anything, "alice").
		Return(model.UserWithRoles{}, fmt.Errorf("%w: timeout", model.ErrUpstreamUnavailable)).Once()

	session := NewSession(users, history, networks, revocations, tokens, hasher, testutil.MakeNoopLogger())

	_, err = session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.ErrorIs(t, err, model.ErrUpstreamUnavailable)
	assert.NotErrorIs(t, err, model.ErrAuthentication)
}

func TestSession_Login_HistoryFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	userID := uuid.New()

	users := mocks.NewUserStore(t)
	history := mocks.NewLoginHistoryStore(t)
	tokens := mocks.NewTokenManager(t)

	users.On("GetByLogin", mock.Anything, "alice").Return(model.UserWithRoles{
		User: model.User{ID: userID, Login: "alice", PasswordHash: hash},
	}, nil).Once()
	payload := model.TokenPayload{UserID: userID, Roles: []model.RoleClaim{}}
	tokens.On("Mint", "alice", payload, model.TokenKindAccess).Return("access", model.Claims{}, nil).Once()
	tokens.On("Mint", "alice", payload, model.TokenKindRefresh).Return("refresh", model.Claims{}, nil).Once()
	users.On("UpdateRefreshToken", mock.Anything, userID, mock.MatchedBy(func(tok *string) bool {
		return tok != nil && *tok == "refresh"
	})).Return(nil).Once()
	history.On("Append", mock.Anything, userID, mock.Anything).Return(assert.AnError).Once()

	session := NewSession(users, history, mocks.NewNetworkStore(t), mocks.NewRevocationCache(t), tokens, hasher, testutil.MakeNoopLogger())

	pair, err := session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, pair)
}

func TestSession_Refresh_Idempotent(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret", model.Role{Name: "admin", Service: "auth"})

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	seen := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		access, err := env.session.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		claims, err := env.tokens.Verify(access, model.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		_, dup := seen[claims.TokenID]
		assert.False(t, dup)
		seen[claims.TokenID] = struct{}{}

		stored := env.storedRefresh(t, user.ID)
		require.NotNil(t, stored)
		assert.Equal(t, pair.RefreshToken, *stored)
	}
}

func TestSession_Refresh_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	env.addUser(t, "alice", "secret")

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = env.session.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, model.ErrWrongKind)

	_, err = env.session.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, model.ErrInvalidToken)

	env.clock.Advance(refreshTTL + time.Second)
	_, err = env.session.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrExpiredToken)
}

func TestSession_Refresh_UnknownUser(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)

	refresh, _, err := env.tokens.Mint("ghost", model.TokenPayload{UserID: uuid.New()}, model.TokenKindRefresh)
	require.NoError(t, err)

	_, err = env.session.Refresh(ctx, refresh)
	require.ErrorIs(t, err, model.ErrStaleRefreshToken)
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret")

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	access, err := env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	require.NoError(t, env.session.Logout(ctx, pair.AccessToken))

	assert.Nil(t, env.storedRefresh(t, user.ID))
	assert.Equal(t, 50*time.Minute, env.mr.TTL("revoked:"+access.TokenID))

	_, err = env.session.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrStaleRefreshToken)

	_, err = env.engine.Authorize(ctx, access, authz.Requirement{})
	require.ErrorIs(t, err, model.ErrRevokedToken)

	env.mr.FastForward(50*time.Minute + time.Second)
	env.clock.Advance(50*time.Minute + time.Second)

	revoked, err := env.revocations.IsRevoked(ctx, access.TokenID)
	require.NoError(t, err)
	assert.False(t, revoked, "revocation entry must expire with the token")

	_, err = env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
	require.ErrorIs(t, err, model.ErrExpiredToken)
}

func TestSession_Logout_RevokedTokenKeepsNewerSession(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret")
	creds := model.Credentials{Login: "alice", Password: "secret"}

	first, err := env.session.Login(ctx, creds)
	require.NoError(t, err)
	require.NoError(t, env.session.Logout(ctx, first.AccessToken))

	env.clock.Advance(time.Second)
	second, err := env.session.Login(ctx, creds)
	require.NoError(t, err)

	err = env.session.Logout(ctx, first.AccessToken)
	require.ErrorIs(t, err, model.ErrRevokedToken)

	stored := env.storedRefresh(t, user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, second.RefreshToken, *stored)

	_, err = env.session.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestSession_Logout_MinimumTTL(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	env.addUser(t, "alice", "secret")

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	access, err := env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)

	env.clock.Advance(accessTTL - 300*time.Millisecond)
	require.NoError(t, env.session.Logout(ctx, pair.AccessToken))
	assert.Equal(t, time.Second, env.mr.TTL("revoked:"+access.TokenID))
}

func TestSession_Logout_RequiresAccessToken(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	env.addUser(t, "alice", "secret")

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	require.ErrorIs(t, env.session.Logout(ctx, pair.RefreshToken), model.ErrWrongKind)
}

func TestSession_Logout_CacheUnavailable(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret")

	pair, err := env.session.Login(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	env.mr.Close()
	err = env.session.Logout(ctx, pair.AccessToken)
	require.ErrorIs(t, err, model.ErrUpstreamUnavailable)
	assert.NotNil(t, env.storedRefresh(t, user.ID))
}

func TestSession_SecondLogin(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	env.addUser(t, "alice", "secret")
	creds := model.Credentials{Login: "alice", Password: "secret"}

	first, err := env.session.Login(ctx, creds)
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	second, err := env.session.Login(ctx, creds)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = env.session.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, model.ErrStaleRefreshToken)

	_, err = env.session.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)

	firstAccess, err := env.tokens.Verify(first.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)
	_, err = env.engine.Authorize(ctx, firstAccess, authz.Requirement{})
	require.NoError(t, err)
}

func TestSession_AdminLogin(t *testing.T) {
	ctx := context.Background()
	env := newSessionEnv(t)
	user := env.addUser(t, "alice", "secret", model.Role{Name: "admin", Service: "auth"})

	got, err := env.session.AdminLogin(ctx, model.Credentials{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.Len(t, got.Roles, 1)
	assert.Equal(t, "admin", got.Roles[0].Name)
	assert.Nil(t, env.storedRefresh(t, user.ID))

	records, err := env.db.History().ListByUser(ctx, user.ID, model.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = env.session.AdminLogin(ctx, model.Credentials{Login: "alice", Password: "nope"})
	require.ErrorIs(t, err, model.ErrAuthentication)
}

func TestSession_ExternalLogin(t *testing.T) {
	ctx := context.Background()
	provider := mocks.NewIdentityProvider(t)
	env := newSessionEnv(t, WithIdentityProvider("yandex", provider))

	provider.On("Exchange", mock.Anything, "ext-token").Return(model.ExternalProfile{
		Login:     "ivan",
		FirstName: "Ivan",
		LastName:  "Petrov",
	}, nil).Twice()

	first, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
	require.NoError(t, err)

	user, err := env.db.Users().GetByLogin(ctx, "ivan")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", user.FirstName)
	assert.Equal(t, "Petrov", user.LastName)
	assert.False(t, env.hasher.Compare(user.PasswordHash, "default"))

	linked, err := env.db.Networks().Exists(ctx, user.ID, "yandex")
	require.NoError(t, err)
	assert.True(t, linked)

	second, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
	require.NoError(t, err)

	list, err := env.db.Users().List(ctx, model.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.session.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, model.ErrStaleRefreshToken)
	_, err = env.session.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestSession_ExternalLogin_ExistingLocalAccount(t *testing.T) {
	ctx := context.Background()
	provider := mocks.NewIdentityProvider(t)
	env := newSessionEnv(t, WithIdentityProvider("yandex", provider))
	local := env.addUser(t, "ivan", "local-password", model.Role{Name: "admin", Service: "auth"})

	provider.On("Exchange", mock.Anything, "ext-token").
		Return(model.ExternalProfile{Login: "ivan"}, nil).Once()

	pair, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
	require.NoError(t, err)

	claims, err := env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, local.ID, claims.UserID)
	assert.Equal(t, []model.RoleClaim{{Name: "admin", Service: "auth"}}, claims.Roles)
}

func TestSession_ExternalLogin_GeneratedLogin(t *testing.T) {
	ctx := context.Background()
	provider := mocks.NewIdentityProvider(t)
	env := newSessionEnv(t, WithIdentityProvider("yandex", provider))

	provider.On("Exchange", mock.Anything, "ext-token").
		Return(model.ExternalProfile{FirstName: "Anon"}, nil).Twice()

	first, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
	require.NoError(t, err)
	second, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
	require.NoError(t, err)

	a, err := env.tokens.Verify(first.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)
	b, err := env.tokens.Verify(second.AccessToken, model.TokenKindAccess)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^[a-z]{10}$`)
	assert.Regexp(t, pattern, a.Subject)
	assert.Regexp(t, pattern, b.Subject)
	assert.NotEqual(t, a.UserID, b.UserID, "each anonymous profile is a new account")
}

func TestSession_ExternalLogin_GeneratedLoginCollision(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		logins    []string
		wantErr   error
		wantLogin string
	}{
		{
			name:      "retries after a taken login",
			logins:    []string{"takenlogin", "freshlogin"},
			wantLogin: "freshlogin",
		},
		{
			name:    "gives up after repeated collisions",
			logins:  []string{"takenlogin", "takenlogin", "takenlogin"},
			wantErr: model.ErrAuthentication,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			provider := mocks.NewIdentityProvider(t)
			env := newSessionEnv(t, WithIdentityProvider("yandex", provider))
			env.addUser(t, "takenlogin", "secret")

			next := 0
			env.session.newLogin = func() (string, error) {
				login := tt.logins[next]
				next++
				return login, nil
			}

			provider.On("Exchange", mock.Anything, "ext-token").
				Return(model.ExternalProfile{FirstName: "Anon"}, nil).Once()

			pair, err := env.session.ExternalLogin(ctx, "yandex", "ext-token")
			assert.Equal(t, len(tt.logins), next)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			claims, err := env.tokens.Verify(pair.AccessToken, model.TokenKindAccess)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLogin, claims.Subject)
		})
	}
}

func TestSession_ExternalLogin_Failures(t *testing.T) {
	ctx := context.Background()
	provider := mocks.NewIdentityProvider(t)
	env := newSessionEnv(t, WithIdentityProvider("yandex", provider))

	provider.On("Exchange", mock.Anything, "bad").Return(model.ExternalProfile{}, assert.AnError).Once()

	_, err := env.session.ExternalLogin(ctx, "yandex", "bad")
	require.ErrorIs(t, err, model.ErrAuthentication)

	_, err = env.session.ExternalLogin(ctx, "facebook", "token")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSession_NetworkLoginURL(t *testing.T) {
	provider := mocks.NewIdentityProvider(t)
	env := newSessionEnv(t, WithIdentityProvider("yandex", provider))

	provider.On("AuthURL").Return("https://oauth.example/authorize?client_id=x").Once()

	url, err := env.session.NetworkLoginURL("yandex")
	require.NoError(t, err)
	assert.Equal(t, "https://oauth.example/authorize?client_id=x", url)

	_, err = env.session.NetworkLoginURL("unknown")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}
