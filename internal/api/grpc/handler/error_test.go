package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authgate/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "authentication failure",
			in:       model.ErrAuthentication,
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrAuthentication.Error(),
		},
		{
			name:     "wrapped token error keeps fixed text",
			in:       fmt.Errorf("%w: signature is invalid", model.ErrInvalidToken),
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrInvalidToken.Error(),
		},
		{
			name:     "stale refresh token",
			in:       model.ErrStaleRefreshToken,
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrStaleRefreshToken.Error(),
		},
		{
			name:     "combined role or service denial",
			in:       model.ErrInsufficientRoleOrService,
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrInsufficientRoleOrService.Error(),
		},
		{
			name:     "reserved role",
			in:       fmt.Errorf("failed: %w", model.ErrReservedRole),
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrReservedRole.Error(),
		},
		{
			name:     "invalid input keeps details",
			in:       fmt.Errorf("%w: login is required", model.ErrInvalidInput),
			wantCode: codes.InvalidArgument,
			wantMsg:  "invalid input: login is required",
		},
		{
			name:     "duplicate",
			in:       fmt.Errorf("failed to create role: %w", model.ErrDuplicate),
			wantCode: codes.InvalidArgument,
			wantMsg:  model.ErrDuplicate.Error(),
		},
		{
			name:     "already assigned",
			in:       model.ErrAlreadyAssigned,
			wantCode: codes.InvalidArgument,
			wantMsg:  model.ErrAlreadyAssigned.Error(),
		},
		{
			name:     "not assigned",
			in:       model.ErrNotAssigned,
			wantCode: codes.InvalidArgument,
			wantMsg:  model.ErrNotAssigned.Error(),
		},
		{
			name:     "model not found -> NotFound",
			in:       fmt.Errorf("failed to get role: %w", model.ErrNotFound),
			wantCode: codes.NotFound,
			wantMsg:  model.ErrNotFound.Error(),
		},
		{
			name:     "upstream -> Unavailable",
			in:       fmt.Errorf("%w: i/o timeout", model.ErrUpstreamUnavailable),
			wantCode: codes.Unavailable,
			wantMsg:  "service temporarily unavailable",
		},
		{
			name:     "other -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
