package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Auth_Login_FullMethodName           = "/authgate.Auth/Login"
	Auth_AdminLogin_FullMethodName      = "/authgate.Auth/AdminLogin"
	Auth_Refresh_FullMethodName         = "/authgate.Auth/Refresh"
	Auth_Logout_FullMethodName          = "/authgate.Auth/Logout"
	Auth_CheckAuth_FullMethodName       = "/authgate.Auth/CheckAuth"
	Auth_NetworkLoginURL_FullMethodName = "/authgate.Auth/NetworkLoginURL"
	Auth_NetworkLogin_FullMethodName    = "/authgate.Auth/NetworkLogin"
)

// AuthServer is the server API for the authgate.Auth service.
type AuthServer interface {
	Login(context.Context, *LoginRequest) (*TokenPair, error)
	AdminLogin(context.Context, *LoginRequest) (*User, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	CheckAuth(context.Context, *CheckAuthRequest) (*CheckAuthResponse, error)
	NetworkLoginURL(context.Context, *NetworkLoginURLRequest) (*NetworkLoginURLResponse, error)
	NetworkLogin(context.Context, *NetworkLoginRequest) (*TokenPair, error)
}

// UnimplementedAuthServer answers every method with codes.Unimplemented.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) Login(context.Context, *LoginRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServer) AdminLogin(context.Context, *LoginRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method AdminLogin not implemented")
}

func (UnimplementedAuthServer) Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}

func (UnimplementedAuthServer) Logout(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedAuthServer) CheckAuth(context.Context, *CheckAuthRequest) (*CheckAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckAuth not implemented")
}

func (UnimplementedAuthServer) NetworkLoginURL(context.Context, *NetworkLoginURLRequest) (*NetworkLoginURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method NetworkLoginURL not implemented")
}

func (UnimplementedAuthServer) NetworkLogin(context.Context, *NetworkLoginRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method NetworkLogin not implemented")
}

// Auth_ServiceDesc describes the authgate.Auth service.
var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "authgate.Auth",
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler:    unary(Auth_Login_FullMethodName, AuthServer.Login),
		},
		{
			MethodName: "AdminLogin",
			Handler:    unary(Auth_AdminLogin_FullMethodName, AuthServer.AdminLogin),
		},
		{
			MethodName: "Refresh",
			Handler:    unary(Auth_Refresh_FullMethodName, AuthServer.Refresh),
		},
		{
			MethodName: "Logout",
			Handler:    unary(Auth_Logout_FullMethodName, AuthServer.Logout),
		},
		{
			MethodName: "CheckAuth",
			Handler:    unary(Auth_CheckAuth_FullMethodName, AuthServer.CheckAuth),
		},
		{
			MethodName: "NetworkLoginURL",
			Handler:    unary(Auth_NetworkLoginURL_FullMethodName, AuthServer.NetworkLoginURL),
		},
		{
			MethodName: "NetworkLogin",
			Handler:    unary(Auth_NetworkLogin_FullMethodName, AuthServer.NetworkLogin),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// AuthClient is the client API for the authgate.Auth service.
type AuthClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error)
	AdminLogin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*User, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error)
	Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	CheckAuth(ctx context.Context, in *CheckAuthRequest, opts ...grpc.CallOption) (*CheckAuthResponse, error)
	NetworkLoginURL(ctx context.Context, in *NetworkLoginURLRequest, opts ...grpc.CallOption) (*NetworkLoginURLResponse, error)
	NetworkLogin(ctx context.Context, in *NetworkLoginRequest, opts ...grpc.CallOption) (*TokenPair, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc: cc}
}

func (c *authClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, Auth_Login_FullMethodName, in, opts...)
}

func (c *authClient) AdminLogin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Auth_AdminLogin_FullMethodName, in, opts...)
}

func (c *authClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error) {
	return invoke[RefreshResponse](ctx, c.cc, Auth_Refresh_FullMethodName, in, opts...)
}

func (c *authClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_Logout_FullMethodName, in, opts...)
}

func (c *authClient) CheckAuth(ctx context.Context, in *CheckAuthRequest, opts ...grpc.CallOption) (*CheckAuthResponse, error) {
	return invoke[CheckAuthResponse](ctx, c.cc, Auth_CheckAuth_FullMethodName, in, opts...)
}

func (c *authClient) NetworkLoginURL(ctx context.Context, in *NetworkLoginURLRequest, opts ...grpc.CallOption) (*NetworkLoginURLResponse, error) {
	return invoke[NetworkLoginURLResponse](ctx, c.cc, Auth_NetworkLoginURL_FullMethodName, in, opts...)
}

func (c *authClient) NetworkLogin(ctx context.Context, in *NetworkLoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, Auth_NetworkLogin_FullMethodName, in, opts...)
}
