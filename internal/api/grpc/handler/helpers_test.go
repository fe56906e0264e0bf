package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcctx "github.com/dtroode/authgate/internal/api/grpc/context"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/mocks"
	"github.com/dtroode/authgate/internal/model"
	"github.com/dtroode/authgate/internal/testutil"
)

var testPolicy = authz.NewPolicy([]string{"admin", "manager"}, []string{"admin"})

func newTestEngine(t *testing.T) *authz.Engine {
	t.Helper()
	revocations := mocks.NewRevocationCache(t)
	revocations.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	return authz.NewEngine(revocations, "superrole", testutil.MakeNoopLogger())
}

// callerContext returns a context authenticated as a fresh user with roles.
func callerContext(roles ...model.RoleClaim) (context.Context, uuid.UUID) {
	userID := uuid.New()
	ctx := grpcctx.NewManager().SetClaimsToContext(context.Background(), model.Claims{
		TokenID: uuid.NewString(),
		UserID:  userID,
		Roles:   roles,
		Kind:    model.TokenKindAccess,
	})
	return ctx, userID
}

func requireStatus(t *testing.T, err error, code codes.Code, msg string) {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "expected a gRPC status, got %v", err)
	require.Equal(t, code, st.Code())
	if msg != "" {
		require.Equal(t, msg, st.Message())
	}
}
