package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	appHTTP "github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/database"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/sse"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/repository/workbook"
	absenteeService "github.com/cmlabs-hris/absentee-monitor-go/internal/service/absentee"
	attendanceService "github.com/cmlabs-hris/absentee-monitor-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/absentee-monitor-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/absentee-monitor-go/internal/service/dashboard"
	notificationService "github.com/cmlabs-hris/absentee-monitor-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal("Invalid server config: ", err)
	}

	level, err := config.ParseLogLevel(cfg.App.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	templateRepo := workbook.NewTemplateRepository(fileStorage, cfg.Attendance.IDColumn)
	uploadRepo := workbook.NewUploadRepository(fileStorage, cfg.Attendance.IDColumn)
	reportRepo := workbook.NewReportRepository(fileStorage, cfg.Attendance.IDColumn)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	smsSender, emailSender, err := notificationService.NewSenders(cfg)
	if err != nil {
		log.Fatal("Failed to initialize notification senders: ", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	absenteeSvc := absenteeService.NewAbsenteeService(reportRepo, cfg.Attendance.MaxBacktrackDays)
	attendanceSvc := attendanceService.NewAttendanceService(templateRepo, uploadRepo, absenteeSvc, cfg.Attendance.IDColumn)
	notificationSvc := notificationService.NewNotificationService(reportRepo, smsSender, emailSender, cfg.Notification.EmailQuota)
	dashboardSvc := dashboardService.NewDashboardService(templateRepo, reportRepo)

	hub := sse.NewHub()
	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService),
		Template:     appHTTP.NewTemplateHandler(attendanceSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc, hub),
		Report:       appHTTP.NewReportHandler(absenteeSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, hub),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Event:        appHTTP.NewEventHandler(hub),
	}, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
