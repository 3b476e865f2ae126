package auth

import (
	"context"
	"strings"

	"github.com/BielWaki/loja-backend/internal/users"
	"github.com/BielWaki/loja-backend/pkg/authz"
	"github.com/BielWaki/loja-backend/pkg/db"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/security"
)

// Register creates a staff account. Only admins may create accounts or assign
// roles above the default vendedor.
func (s *service) Register(ctx context.Context, actorRole enums.UserRole, req RegisterRequest) (*RegisterResponse, error) {
	if !authz.ManageUsers(actorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	role := enums.UserRoleSalesperson
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := enums.ParseUserRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").WithDetails(map[string]any{"role": req.Role})
		}
		role = parsed
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return &RegisterResponse{User: users.FromModel(user)}, nil
}
