package model

import "errors"

var (
	ErrNotFound  = errors.New("entity not found")
	ErrDuplicate = errors.New("entity already exists")

	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyAssigned = errors.New("role is already assigned to the user")
	ErrNotAssigned     = errors.New("role is not assigned to the user")
	ErrReservedRole    = errors.New("superrole cannot be changed")

	ErrUpstreamUnavailable = errors.New("upstream storage unavailable")
)

var authFailures = []error{
	ErrAuthentication,
	ErrInvalidToken,
	ErrExpiredToken,
	ErrWrongKind,
	ErrRevokedToken,
	ErrInsufficientRole,
	ErrInsufficientRoleOrService,
	ErrStaleRefreshToken,
	ErrReservedRole,
}

// AuthFailure returns the authentication or authorization sentinel err
// wraps, or nil.
func AuthFailure(err error) error {
	for _, target := range authFailures {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// IsAuthFailure reports whether err belongs to the authentication and
// authorization class of failures.
func IsAuthFailure(err error) bool {
	return AuthFailure(err) != nil
}
