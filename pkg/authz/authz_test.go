package authz

import (
	"testing"

	"github.com/BielWaki/loja-backend/pkg/enums"
)

func TestAllowAdminAlwaysPasses(t *testing.T) {
	if !Allow(enums.UserRoleAdmin) {
		t.Fatal("admin should pass with empty allow list")
	}
	if !Allow(enums.UserRoleAdmin, enums.UserRoleCashier) {
		t.Fatal("admin should pass any allow list")
	}
}

func TestAllowChecksList(t *testing.T) {
	if !Allow(enums.UserRoleManager, enums.UserRoleManager) {
		t.Fatal("gerente should pass when listed")
	}
	if Allow(enums.UserRoleSalesperson, enums.UserRoleManager) {
		t.Fatal("vendedor should not pass a gerente-only list")
	}
	if Allow(enums.UserRoleCashier) {
		t.Fatal("caixa should not pass an empty list")
	}
}

func TestAllowRejectsInvalidRole(t *testing.T) {
	if Allow(enums.UserRole("supervisor"), enums.UserRoleManager) {
		t.Fatal("unknown role must never pass")
	}
}

func TestManageInventory(t *testing.T) {
	cases := []struct {
		role enums.UserRole
		want bool
	}{
		{enums.UserRoleAdmin, true},
		{enums.UserRoleManager, true},
		{enums.UserRoleSalesperson, false},
		{enums.UserRoleCashier, false},
	}
	for _, tc := range cases {
		if got := ManageInventory(tc.role); got != tc.want {
			t.Fatalf("ManageInventory(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestManageUsersIsAdminOnly(t *testing.T) {
	if !ManageUsers(enums.UserRoleAdmin) {
		t.Fatal("admin should manage users")
	}
	for _, role := range []enums.UserRole{enums.UserRoleManager, enums.UserRoleSalesperson, enums.UserRoleCashier} {
		if ManageUsers(role) {
			t.Fatalf("%s should not manage users", role)
		}
	}
}
