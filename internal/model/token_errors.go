package model

import "errors"

var (
	ErrAuthentication    = errors.New("bad username or password")
	ErrInvalidToken      = errors.New("token is invalid")
	ErrExpiredToken      = errors.New("token has expired")
	ErrWrongKind         = errors.New("token kind mismatch")
	ErrRevokedToken      = errors.New("logout was registered for this token")
	ErrStaleRefreshToken = errors.New("refresh token is no longer active")
	ErrSigning           = errors.New("token signing is misconfigured")

	ErrInsufficientRole          = errors.New("resource is not available for your role")
	ErrInsufficientRoleOrService = errors.New("resource is not available for your role or service")
)
