package handler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/model"
)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", model.ErrInvalidInput, field)
	}
	return id, nil
}

func convertRole(role model.Role) proto.Role {
	return proto.Role{
		ID:      role.ID.String(),
		Name:    role.Name,
		Service: role.Service,
	}
}

func convertRoles(roles []model.Role) []proto.Role {
	out := make([]proto.Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, convertRole(role))
	}
	return out
}

func convertUser(user model.UserWithRoles) *proto.User {
	return &proto.User{
		ID:        user.ID.String(),
		Login:     user.Login,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		Roles:     convertRoles(user.Roles),
	}
}

func convertUsers(users []model.UserWithRoles) []proto.User {
	out := make([]proto.User, 0, len(users))
	for _, user := range users {
		out = append(out, *convertUser(user))
	}
	return out
}

func convertHistory(records []model.LoginHistoryRecord) *proto.LoginHistory {
	out := make([]proto.LoginRecord, 0, len(records))
	for _, r := range records {
		out = append(out, proto.LoginRecord{
			ID:      r.ID.String(),
			UserID:  r.UserID.String(),
			LoginAt: r.LoginAt,
		})
	}
	return &proto.LoginHistory{Records: out}
}
