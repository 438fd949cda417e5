package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/config"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/handlers"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/middleware"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository/postgres"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos
	userRepo := postgres.NewUserRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	equipmentRepo := postgres.NewEquipmentRepo(db)
	reservationRepo := postgres.NewReservationRepo(db)
	maintenanceRepo := postgres.NewMaintenanceRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	// Services
	availability := service.NewAvailability(reservationRepo)
	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	reservationSvc := service.NewReservationService(reservationRepo, equipmentRepo, notificationRepo, availability, log)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, equipmentRepo)

	// Handlers
	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	uh := handlers.NewUserHTTP(userRepo)
	eh := handlers.NewEquipmentHTTP(equipmentRepo, categoryRepo, availability)
	rh := handlers.NewReservationHTTP(reservationSvc, userRepo)
	mh := handlers.NewMaintenanceHTTP(maintenanceSvc, userRepo)
	nh := handlers.NewNotificationHTTP(notificationRepo)
	rph := handlers.NewReportsHTTP(reservationRepo)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleLabManager)).Get("/", uh.List())
		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.RequireSelfOrRoles(models.RoleSuperAdmin, models.RoleLabManager)).Get("/", uh.Get())
			r.With(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleLabManager)).Patch("/approve", uh.Approve())
			r.With(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleLabManager)).Patch("/active", uh.SetActive())
			r.With(middleware.RequireRoles(models.RoleSuperAdmin)).Patch("/role", uh.UpdateRole())
			r.With(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleLabManager)).Patch("/training", uh.SetTraining())
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", eh.Categories())
	})

	r.Route("/api/equipment", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", eh.List())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", eh.Get())
			r.Get("/availability", eh.Availability())
		})
	})

	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", rh.List())
		r.Post("/", rh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rh.Get())
			r.Patch("/status", rh.UpdateStatus())
			r.Delete("/", rh.Cancel())
		})
	})

	r.Route("/api/maintenance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", mh.List())
		r.Post("/", mh.Create())
	})

	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", nh.List())
		r.Patch("/{id}/read", nh.MarkRead())
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleLabManager))
		r.Get("/summary", rph.Summary())
	})

	return r
}
