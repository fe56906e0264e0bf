package proto

import "time"

type Empty struct{}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type CheckAuthRequest struct {
	Roles   []string `json:"roles"`
	Service string   `json:"service,omitempty"`
}

type CheckAuthResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
}

type NetworkLoginURLRequest struct {
	Network string `json:"network"`
}

type NetworkLoginURLResponse struct {
	URL string `json:"url"`
}

type NetworkLoginRequest struct {
	Network string `json:"network"`
	Token   string `json:"token"`
}

type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Role struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Service string `json:"service"`
}

type RoleList struct {
	Roles []Role `json:"roles"`
}

type CreateRoleRequest struct {
	Name    string `json:"name"`
	Service string `json:"service"`
}

// UpdateRoleRequest leaves omitted fields unchanged.
type UpdateRoleRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Service *string `json:"service,omitempty"`
}

type RemoveRequest struct {
	ID string `json:"id"`
}

type User struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	Roles     []Role    `json:"roles"`
}

type UserList struct {
	Users []User `json:"users"`
}

type CreateUserRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateUserRequest leaves omitted fields unchanged.
type UpdateUserRequest struct {
	ID        string  `json:"id"`
	Login     *string `json:"login,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type UserLoginHistoryRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type LoginRecord struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	LoginAt time.Time `json:"login_at"`
}

type LoginHistory struct {
	Records []LoginRecord `json:"records"`
}

type UserRoleRequest struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}
