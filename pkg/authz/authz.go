// Package authz decides whether a role may perform an operation. It is a pure
// predicate over roles so both HTTP middleware and services can share it.
package authz

import "github.com/BielWaki/loja-backend/pkg/enums"

// Allow reports whether role is one of the allowed roles. Admin is always
// allowed regardless of the list.
func Allow(role enums.UserRole, allowed ...enums.UserRole) bool {
	if !role.IsValid() {
		return false
	}
	if role == enums.UserRoleAdmin {
		return true
	}
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

// ManageInventory reports whether role may create, update, or delete
// instruments.
func ManageInventory(role enums.UserRole) bool {
	return Allow(role, enums.UserRoleManager)
}

// ManageUsers reports whether role may change another user's role or
// deactivate accounts.
func ManageUsers(role enums.UserRole) bool {
	return Allow(role)
}
