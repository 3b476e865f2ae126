package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BielWaki/loja-backend/api/controllers"
	"github.com/BielWaki/loja-backend/api/middleware"
	"github.com/BielWaki/loja-backend/internal/auth"
	"github.com/BielWaki/loja-backend/internal/customers"
	"github.com/BielWaki/loja-backend/internal/dashboard"
	"github.com/BielWaki/loja-backend/internal/instruments"
	"github.com/BielWaki/loja-backend/internal/maintenance"
	"github.com/BielWaki/loja-backend/internal/movements"
	"github.com/BielWaki/loja-backend/internal/suppliers"
	"github.com/BielWaki/loja-backend/internal/users"
	"github.com/BielWaki/loja-backend/pkg/auth/session"
	"github.com/BielWaki/loja-backend/pkg/config"
	"github.com/BielWaki/loja-backend/pkg/logger"
	"github.com/BielWaki/loja-backend/pkg/metrics"
)

// Services bundles every domain service the router mounts.
type Services struct {
	Auth        auth.Service
	Users       users.Service
	Suppliers   suppliers.Service
	Customers   customers.Service
	Instruments instruments.Service
	Movements   movements.Service
	Maintenance maintenance.Service
	Dashboard   dashboard.Service
}

// Dependencies carries the non-service wiring the router needs.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
}

func NewRouter(deps Dependencies, svcs Services) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Get("/dashboard", controllers.DashboardSummary(svcs.Dashboard, logg))

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg))
			r.Post("/", controllers.AuthRegister(svcs.Auth, logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Get("/{userId}", controllers.UserDetail(svcs.Users, logg))
			r.Patch("/{userId}/role", controllers.UserChangeRole(svcs.Users, logg))
			r.Patch("/{userId}/active", controllers.UserSetActive(svcs.Users, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SupplierList(svcs.Suppliers, logg))
			r.Get("/{supplierId}", controllers.SupplierDetail(svcs.Suppliers, logg))
			r.Post("/", controllers.SupplierCreate(svcs.Suppliers, logg))
			r.Put("/{supplierId}", controllers.SupplierUpdate(svcs.Suppliers, logg))
			r.Delete("/{supplierId}", controllers.SupplierDelete(svcs.Suppliers, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(svcs.Customers, logg))
			r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(svcs.Customers, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(svcs.Customers, logg))
		})

		r.Route("/instruments", func(r chi.Router) {
			r.Get("/", controllers.InstrumentList(svcs.Instruments, logg))
			r.Get("/{instrumentId}", controllers.InstrumentDetail(svcs.Instruments, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireInventoryManager(logg))
				r.Post("/", controllers.InstrumentCreate(svcs.Instruments, logg))
				r.Put("/{instrumentId}", controllers.InstrumentUpdate(svcs.Instruments, logg))
				r.Delete("/{instrumentId}", controllers.InstrumentDelete(svcs.Instruments, logg))
			})
		})

		r.Route("/movements", func(r chi.Router) {
			r.Get("/", controllers.MovementList(svcs.Movements, logg))
			r.Get("/{movementId}", controllers.MovementDetail(svcs.Movements, logg))
			r.Post("/", controllers.MovementRecord(svcs.Movements, logg))
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/", controllers.MaintenanceList(svcs.Maintenance, logg))
			r.Get("/{orderId}", controllers.MaintenanceDetail(svcs.Maintenance, logg))
			r.Post("/", controllers.MaintenanceCreate(svcs.Maintenance, logg))
			r.Put("/{orderId}", controllers.MaintenanceUpdate(svcs.Maintenance, logg))
			r.Patch("/{orderId}/status", controllers.MaintenanceUpdateStatus(svcs.Maintenance, logg))
			r.Delete("/{orderId}", controllers.MaintenanceDelete(svcs.Maintenance, logg))
		})
	})

	return r
}
