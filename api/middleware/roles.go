package middleware

import (
	"net/http"

	"github.com/BielWaki/loja-backend/api/responses"
	"github.com/BielWaki/loja-backend/pkg/authz"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/logger"
)

// RequireRoles rejects the request unless the authenticated actor holds one of
// the allowed roles. Admin always passes.
func RequireRoles(logg *logger.Logger, allowed ...enums.UserRole) func(http.Handler) http.Handler {
	return requirePermission(logg, func(role enums.UserRole) bool {
		return authz.Allow(role, allowed...)
	})
}

// RequireInventoryManager gates the instrument catalogue mutations.
func RequireInventoryManager(logg *logger.Logger) func(http.Handler) http.Handler {
	return requirePermission(logg, authz.ManageInventory)
}

func requirePermission(logg *logger.Logger, permitted func(enums.UserRole) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := enums.ParseUserRole(RoleFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			if !permitted(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
