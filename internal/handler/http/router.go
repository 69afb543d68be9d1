package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth         AuthHandler
	Template     TemplateHandler
	Attendance   AttendanceHandler
	Report       ReportHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
	Event        EventHandler
}

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, handlers Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absentee-monitor"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
		})

		// Requires authentication, the department comes from the token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/templates", func(r chi.Router) {
				r.Get("/empty", handlers.Template.Empty)
				r.Post("/", handlers.Template.Upload)
			})

			r.Post("/attendance/daily", handlers.Attendance.UploadDaily)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", handlers.Report.List)
				r.Get("/{bucket}", handlers.Report.Preview)
				r.Get("/{bucket}/download", handlers.Report.Download)
			})

			r.Post("/notifications", handlers.Notification.Dispatch)
			r.Get("/dashboard", handlers.Dashboard.Summary)
		})

		// EventSource cannot set headers, so the stream also accepts ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Get("/events", handlers.Event.Stream)
		})
	})
	return r
}
