package handler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	grpcctx "github.com/dtroode/authgate/internal/api/grpc/context"
	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/mocks"
	"github.com/dtroode/authgate/internal/model"
	"github.com/dtroode/authgate/internal/testutil"
)

func newUsersHandler(t *testing.T) (*Users, *mocks.UserService, *mocks.HistoryService) {
	t.Helper()
	users := mocks.NewUserService(t)
	history := mocks.NewHistoryService(t)
	h := NewUsers(users, history, newTestEngine(t), grpcctx.NewManager(), testPolicy, testutil.MakeNoopLogger())
	return h, users, history
}

func TestUsers_List(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	user := model.UserWithRoles{
		User:  model.User{ID: uuid.New(), Login: "alice", CreatedAt: created},
		Roles: []model.Role{},
	}
	users.On("List", mock.Anything, 0, 0).Return([]model.UserWithRoles{user}, nil).Once()

	ctx, _ := callerContext(model.RoleClaim{Name: "manager", Service: "auth"})
	out, err := h.List(ctx, &proto.ListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "alice", out.Users[0].Login)
	assert.Equal(t, created, out.Users[0].CreatedAt)
	assert.Empty(t, out.Users[0].Roles)
}

func TestUsers_Create_RequiresChangeRole(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)

	manager, _ := callerContext(model.RoleClaim{Name: "manager", Service: "auth"})
	_, err := h.Create(manager, &proto.CreateUserRequest{Login: "bob", Password: "pw"})
	requireStatus(t, err, codes.Unauthenticated, model.ErrInsufficientRole.Error())

	users.On("Create", mock.Anything, model.NewUser{Login: "bob", Password: "pw"}).
		Return(model.UserWithRoles{}, model.ErrDuplicate).Once()
	admin, _ := callerContext(model.RoleClaim{Name: "admin", Service: "auth"})
	_, err = h.Create(admin, &proto.CreateUserRequest{Login: "bob", Password: "pw"})
	requireStatus(t, err, codes.InvalidArgument, model.ErrDuplicate.Error())
}

func TestUsers_Update(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)
	id := uuid.New()
	changes := model.UserChanges{FirstName: strPtr("Bob")}
	users.On("Update", mock.Anything, id, changes).
		Return(model.UserWithRoles{User: model.User{ID: id, FirstName: "Bob"}}, nil).Once()

	admin, _ := callerContext(model.RoleClaim{Name: "admin", Service: "auth"})
	out, err := h.Update(admin, &proto.UpdateUserRequest{ID: id.String(), FirstName: strPtr("Bob")})
	require.NoError(t, err)
	assert.Equal(t, "Bob", out.FirstName)
}

func TestUsers_Remove(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)
	id := uuid.New()
	users.On("Remove", mock.Anything, id).Return(model.ErrNotFound).Once()

	admin, _ := callerContext(model.RoleClaim{Name: "admin", Service: "auth"})
	_, err := h.Remove(admin, &proto.RemoveRequest{ID: id.String()})
	requireStatus(t, err, codes.NotFound, "")
}

func TestUsers_LoginHistory_OwnRecords(t *testing.T) {
	t.Parallel()

	h, _, history := newUsersHandler(t)
	ctx, userID := callerContext()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history.On("List", mock.Anything, userID, 5, 0).
		Return([]model.LoginHistoryRecord{{ID: uuid.New(), UserID: userID, LoginAt: at}}, nil).Once()

	out, err := h.LoginHistory(ctx, &proto.ListRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, userID.String(), out.Records[0].UserID)
	assert.Equal(t, at, out.Records[0].LoginAt)
}

func TestUsers_UserLoginHistory(t *testing.T) {
	t.Parallel()

	h, _, history := newUsersHandler(t)
	target := uuid.New()
	history.On("List", mock.Anything, target, 0, 0).Return([]model.LoginHistoryRecord{}, nil).Once()

	viewer, _ := callerContext()
	_, err := h.UserLoginHistory(viewer, &proto.UserLoginHistoryRequest{UserID: target.String()})
	requireStatus(t, err, codes.Unauthenticated, model.ErrInsufficientRole.Error())

	manager, _ := callerContext(model.RoleClaim{Name: "manager", Service: "auth"})
	out, err := h.UserLoginHistory(manager, &proto.UserLoginHistoryRequest{UserID: target.String()})
	require.NoError(t, err)
	assert.Empty(t, out.Records)
}

func TestUsers_SetRole(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)
	userID, roleID := uuid.New(), uuid.New()
	admin, _ := callerContext(model.RoleClaim{Name: "admin", Service: "auth"})

	users.On("SetRole", mock.Anything, userID, roleID).Return(model.UserWithRoles{
		User:  model.User{ID: userID},
		Roles: []model.Role{{ID: roleID, Name: "editor", Service: "content"}},
	}, nil).Once()
	out, err := h.SetRole(admin, &proto.UserRoleRequest{UserID: userID.String(), RoleID: roleID.String()})
	require.NoError(t, err)
	require.Len(t, out.Roles, 1)

	users.On("SetRole", mock.Anything, userID, roleID).Return(model.UserWithRoles{}, model.ErrAlreadyAssigned).Once()
	_, err = h.SetRole(admin, &proto.UserRoleRequest{UserID: userID.String(), RoleID: roleID.String()})
	requireStatus(t, err, codes.InvalidArgument, model.ErrAlreadyAssigned.Error())

	_, err = h.SetRole(admin, &proto.UserRoleRequest{UserID: userID.String(), RoleID: "bad"})
	requireStatus(t, err, codes.InvalidArgument, "invalid input: role_id must be a UUID")
}

func TestUsers_DepriveRole(t *testing.T) {
	t.Parallel()

	h, users, _ := newUsersHandler(t)
	userID, roleID := uuid.New(), uuid.New()
	users.On("DepriveRole", mock.Anything, userID, roleID).Return(model.UserWithRoles{}, model.ErrNotAssigned).Once()

	admin, _ := callerContext(model.RoleClaim{Name: "admin", Service: "auth"})
	_, err := h.DepriveRole(admin, &proto.UserRoleRequest{UserID: userID.String(), RoleID: roleID.String()})
	requireStatus(t, err, codes.InvalidArgument, model.ErrNotAssigned.Error())
}
