package http

import (
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/academicyear"
	"github.com/crystal-land-academy/api/internal/application/notification"
	"github.com/crystal-land-academy/api/internal/application/pin"
	"github.com/crystal-land-academy/api/internal/application/review"
	"github.com/crystal-land-academy/api/internal/application/session"
	"github.com/crystal-land-academy/api/internal/application/student"
	"github.com/crystal-land-academy/api/internal/config"
	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/transport/http/handler"
	appmiddleware "github.com/crystal-land-academy/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	pinSvc := pin.NewService(deps.PinRepo, deps.Mailer, deps.SMSSender)
	notifSvc := notification.NewService(deps.NotificationRepo)
	reviewSvc := review.NewService(deps.ClassLevelRepo, deps.TeacherRepo, deps.PictureStore)
	yearSvc := academicyear.NewService(deps.AcademicYearRepo)
	studentSvc := student.NewService(deps.StudentRepo, deps.ClassLevelRepo)
	sessionSvc := session.NewService(deps.UserRepo, deps.JWTProvider)

	healthH := handler.NewHealthHandler()
	pinH := handler.NewPinHandler(pinSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	yearH := handler.NewAcademicYearHandler(yearSvc)
	studentH := handler.NewStudentHandler(studentSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/verify-pin", pinH.Verify)
		r.Get("/teachers/class/{classLevelId}", reviewH.TeachersByClassLevel)
		r.Get("/academicYears", yearH.List)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions/me", sessionH.Me)
			r.Get("/students/{section}/{className}/{subclass}", studentH.ListByTeacherAndClass)
			r.Post("/comment", studentH.PostComment)
			r.Post("/notification", notifH.Create)
			r.Get("/notification", notifH.List)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/generate-pin", pinH.Generate)
				r.Post("/teachers/{id}/profile-picture", reviewH.UploadProfilePicture)
				r.Delete("/teachers/{id}/profile-picture", reviewH.RemoveProfilePicture)
			})
		})
	})

	return r
}
