package token

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/dtroode/authgate/internal/model"
)

// Claims represents JWT claims with token kind, user ID and role snapshot.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID         `json:"user_id"`
	Roles     []model.RoleClaim `json:"roles"`
	TokenType model.TokenKind   `json:"typ"`
}

func (c *Claims) toModel() model.Claims {
	claims := model.Claims{
		TokenID: c.ID,
		Subject: c.Subject,
		UserID:  c.UserID,
		Roles:   slices.Clone(c.Roles),
		Kind:    c.TokenType,
	}
	if c.IssuedAt != nil {
		claims.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option configures JWT.
type Option func(*JWT)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager. It refuses an empty secret and
// non-positive lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration, opts ...Option) (*JWT, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("%w: empty secret key", model.ErrSigning)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token lifetimes must be positive", model.ErrSigning)
	}

	j := &JWT{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

func (j *JWT) ttl(kind model.TokenKind) (time.Duration, error) {
	switch kind {
	case model.TokenKindAccess:
		return j.accessTTL, nil
	case model.TokenKindRefresh:
		return j.refreshTTL, nil
	default:
		return 0, fmt.Errorf("%w: unknown token kind %q", model.ErrSigning, kind)
	}
}

// Mint signs a new token of the given kind with a fresh token ID.
func (j *JWT) Mint(subject string, payload model.TokenPayload, kind model.TokenKind) (string, model.Claims, error) {
	ttl, err := j.ttl(kind)
	if err != nil {
		return "", model.Claims{}, err
	}

	now := j.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    payload.UserID,
		Roles:     slices.Clone(payload.Roles),
		TokenType: kind,
	}
	if claims.Roles == nil {
		claims.Roles = []model.RoleClaim{}
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", model.Claims{}, fmt.Errorf("%w: failed to sign %s token: %v", model.ErrSigning, kind, err)
	}

	return tokenString, claims.toModel(), nil
}

// Verify checks signature, expiry and kind of the token.
func (j *JWT) Verify(tokenString string, kind model.TokenKind) (model.Claims, error) {
	claims, err := j.parse(tokenString, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Claims{}, fmt.Errorf("%w: %v", model.ErrExpiredToken, err)
		}
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if claims.TokenID == "" || claims.UserID == uuid.Nil {
		return model.Claims{}, fmt.Errorf("%w: missing token id or user id", model.ErrInvalidToken)
	}
	if claims.Kind != kind {
		return model.Claims{}, fmt.Errorf("%w: expected %s, got %q", model.ErrWrongKind, kind, claims.Kind)
	}

	return claims, nil
}

// ExtractClaims checks the signature only and returns the claims even when
// the token has expired.
func (j *JWT) ExtractClaims(tokenString string) (model.Claims, error) {
	claims, err := j.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	return claims, nil
}

func (j *JWT) parse(tokenString string, opts ...jwt.ParserOption) (model.Claims, error) {
	if tokenString == "" {
		return model.Claims{}, errors.New("token is empty")
	}

	claims := &Claims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.Claims{}, errors.New("token is invalid")
	}

	return claims.toModel(), nil
}
