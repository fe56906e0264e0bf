package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Users_List_FullMethodName             = "/authgate.Users/List"
	Users_Create_FullMethodName           = "/authgate.Users/Create"
	Users_Update_FullMethodName           = "/authgate.Users/Update"
	Users_Remove_FullMethodName           = "/authgate.Users/Remove"
	Users_LoginHistory_FullMethodName     = "/authgate.Users/LoginHistory"
	Users_UserLoginHistory_FullMethodName = "/authgate.Users/UserLoginHistory"
	Users_SetRole_FullMethodName          = "/authgate.Users/SetRole"
	Users_DepriveRole_FullMethodName      = "/authgate.Users/DepriveRole"
)

// UsersServer is the server API for the authgate.Users service.
type UsersServer interface {
	List(context.Context, *ListRequest) (*UserList, error)
	Create(context.Context, *CreateUserRequest) (*User, error)
	Update(context.Context, *UpdateUserRequest) (*User, error)
	Remove(context.Context, *RemoveRequest) (*Empty, error)
	LoginHistory(context.Context, *ListRequest) (*LoginHistory, error)
	UserLoginHistory(context.Context, *UserLoginHistoryRequest) (*LoginHistory, error)
	SetRole(context.Context, *UserRoleRequest) (*User, error)
	DepriveRole(context.Context, *UserRoleRequest) (*User, error)
}

// UnimplementedUsersServer answers every method with codes.Unimplemented.
type UnimplementedUsersServer struct{}

func (UnimplementedUsersServer) List(context.Context, *ListRequest) (*UserList, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedUsersServer) Create(context.Context, *CreateUserRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedUsersServer) Update(context.Context, *UpdateUserRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedUsersServer) Remove(context.Context, *RemoveRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Remove not implemented")
}

func (UnimplementedUsersServer) LoginHistory(context.Context, *ListRequest) (*LoginHistory, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginHistory not implemented")
}

func (UnimplementedUsersServer) UserLoginHistory(context.Context, *UserLoginHistoryRequest) (*LoginHistory, error) {
	return nil, status.Error(codes.Unimplemented, "method UserLoginHistory not implemented")
}

func (UnimplementedUsersServer) SetRole(context.Context, *UserRoleRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method SetRole not implemented")
}

func (UnimplementedUsersServer) DepriveRole(context.Context, *UserRoleRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method DepriveRole not implemented")
}

// Users_ServiceDesc describes the authgate.Users service.
var Users_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "authgate.Users",
	HandlerType: (*UsersServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler:    unary(Users_List_FullMethodName, UsersServer.List),
		},
		{
			MethodName: "Create",
			Handler:    unary(Users_Create_FullMethodName, UsersServer.Create),
		},
		{
			MethodName: "Update",
			Handler:    unary(Users_Update_FullMethodName, UsersServer.Update),
		},
		{
			MethodName: "Remove",
			Handler:    unary(Users_Remove_FullMethodName, UsersServer.Remove),
		},
		{
			MethodName: "LoginHistory",
			Handler:    unary(Users_LoginHistory_FullMethodName, UsersServer.LoginHistory),
		},
		{
			MethodName: "UserLoginHistory",
			Handler:    unary(Users_UserLoginHistory_FullMethodName, UsersServer.UserLoginHistory),
		},
		{
			MethodName: "SetRole",
			Handler:    unary(Users_SetRole_FullMethodName, UsersServer.SetRole),
		},
		{
			MethodName: "DepriveRole",
			Handler:    unary(Users_DepriveRole_FullMethodName, UsersServer.DepriveRole),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterUsersServer(s grpc.ServiceRegistrar, srv UsersServer) {
	s.RegisterService(&Users_ServiceDesc, srv)
}

// UsersClient is the client API for the authgate.Users service.
type UsersClient interface {
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*UserList, error)
	Create(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error)
	Update(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error)
	Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*Empty, error)
	LoginHistory(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*LoginHistory, error)
	UserLoginHistory(ctx context.Context, in *UserLoginHistoryRequest, opts ...grpc.CallOption) (*LoginHistory, error)
	SetRole(ctx context.Context, in *UserRoleRequest, opts ...grpc.CallOption) (*User, error)
	DepriveRole(ctx context.Context, in *UserRoleRequest, opts ...grpc.CallOption) (*User, error)
}

type usersClient struct {
	cc grpc.ClientConnInterface
}

func NewUsersClient(cc grpc.ClientConnInterface) UsersClient {
	return &usersClient{cc: cc}
}

func (c *usersClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*UserList, error) {
	return invoke[UserList](ctx, c.cc, Users_List_FullMethodName, in, opts...)
}

func (c *usersClient) Create(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Users_Create_FullMethodName, in, opts...)
}

func (c *usersClient) Update(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Users_Update_FullMethodName, in, opts...)
}

func (c *usersClient) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Users_Remove_FullMethodName, in, opts...)
}

func (c *usersClient) LoginHistory(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*LoginHistory, error) {
	return invoke[LoginHistory](ctx, c.cc, Users_LoginHistory_FullMethodName, in, opts...)
}

func (c *usersClient) UserLoginHistory(ctx context.Context, in *UserLoginHistoryRequest, opts ...grpc.CallOption) (*LoginHistory, error) {
	return invoke[LoginHistory](ctx, c.cc, Users_UserLoginHistory_FullMethodName, in, opts...)
}

func (c *usersClient) SetRole(ctx context.Context, in *UserRoleRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Users_SetRole_FullMethodName, in, opts...)
}

func (c *usersClient) DepriveRole(ctx context.Context, in *UserRoleRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Users_DepriveRole_FullMethodName, in, opts...)
}
