package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BielWaki/loja-backend/pkg/enums"
)

func requireRolesRequest(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(WithRole(req.Context(), role))
	}
	return req
}

func TestRequireRolesAdminAlwaysPasses(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	RequireRoles(nil, enums.UserRoleManager)(next).ServeHTTP(rec, requireRolesRequest("admin"))

	if !called {
		t.Fatal("admin should pass any role gate")
	}
}

func TestRequireRolesBlocksOutsider(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	RequireRoles(nil, enums.UserRoleManager)(next).ServeHTTP(rec, requireRolesRequest("vendedor"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestRequireRolesBlocksMissingContext(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	RequireRoles(nil, enums.UserRoleManager)(next).ServeHTTP(rec, requireRolesRequest(""))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	RequireRoles(nil, enums.UserRoleManager)(next).ServeHTTP(rec, requireRolesRequest("gerente"))

	if !called {
		t.Fatal("gerente should pass a gerente gate")
	}
}

func TestRequireInventoryManager(t *testing.T) {
	cases := []struct {
		role string
		pass bool
	}{
		{"admin", true},
		{"gerente", true},
		{"vendedor", false},
		{"caixa", false},
	}
	for _, tc := range cases {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rec := httptest.NewRecorder()
		RequireInventoryManager(nil)(next).ServeHTTP(rec, requireRolesRequest(tc.role))

		if called != tc.pass {
			t.Fatalf("role %q: pass = %v, want %v", tc.role, called, tc.pass)
		}
		if !tc.pass && rec.Code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403 got %d", tc.role, rec.Code)
		}
	}
}
