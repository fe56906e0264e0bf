package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Roles_List_FullMethodName   = "/authgate.Roles/List"
	Roles_Create_FullMethodName = "/authgate.Roles/Create"
	Roles_Update_FullMethodName = "/authgate.Roles/Update"
	Roles_Remove_FullMethodName = "/authgate.Roles/Remove"
)

// RolesServer is the server API for the authgate.Roles service.
type RolesServer interface {
	List(context.Context, *ListRequest) (*RoleList, error)
	Create(context.Context, *CreateRoleRequest) (*Role, error)
	Update(context.Context, *UpdateRoleRequest) (*Role, error)
	Remove(context.Context, *RemoveRequest) (*Empty, error)
}

// UnimplementedRolesServer answers every method with codes.Unimplemented.
type UnimplementedRolesServer struct{}

func (UnimplementedRolesServer) List(context.Context, *ListRequest) (*RoleList, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedRolesServer) Create(context.Context, *CreateRoleRequest) (*Role, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedRolesServer) Update(context.Context, *UpdateRoleRequest) (*Role, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedRolesServer) Remove(context.Context, *RemoveRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Remove not implemented")
}

// Roles_ServiceDesc describes the authgate.Roles service.
var Roles_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "authgate.Roles",
	HandlerType: (*RolesServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler:    unary(Roles_List_FullMethodName, RolesServer.List),
		},
		{
			MethodName: "Create",
			Handler:    unary(Roles_Create_FullMethodName, RolesServer.Create),
		},
		{
			MethodName: "Update",
			Handler:    unary(Roles_Update_FullMethodName, RolesServer.Update),
		},
		{
			MethodName: "Remove",
			Handler:    unary(Roles_Remove_FullMethodName, RolesServer.Remove),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterRolesServer(s grpc.ServiceRegistrar, srv RolesServer) {
	s.RegisterService(&Roles_ServiceDesc, srv)
}

// RolesClient is the client API for the authgate.Roles service.
type RolesClient interface {
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*RoleList, error)
	Create(ctx context.Context, in *CreateRoleRequest, opts ...grpc.CallOption) (*Role, error)
	Update(ctx context.Context, in *UpdateRoleRequest, opts ...grpc.CallOption) (*Role, error)
	Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*Empty, error)
}

type rolesClient struct {
	cc grpc.ClientConnInterface
}

func NewRolesClient(cc grpc.ClientConnInterface) RolesClient {
	return &rolesClient{cc: cc}
}

func (c *rolesClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*RoleList, error) {
	return invoke[RoleList](ctx, c.cc, Roles_List_FullMethodName, in, opts...)
}

func (c *rolesClient) Create(ctx context.Context, in *CreateRoleRequest, opts ...grpc.CallOption) (*Role, error) {
	return invoke[Role](ctx, c.cc, Roles_Create_FullMethodName, in, opts...)
}

func (c *rolesClient) Update(ctx context.Context, in *UpdateRoleRequest, opts ...grpc.CallOption) (*Role, error) {
	return invoke[Role](ctx, c.cc, Roles_Update_FullMethodName, in, opts...)
}

func (c *rolesClient) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Roles_Remove_FullMethodName, in, opts...)
}
