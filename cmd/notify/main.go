package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/notification"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/repository/workbook"
	notificationService "github.com/cmlabs-hris/absentee-monitor-go/internal/service/notification"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	rootCmd  = &cobra.Command{
		Use:   "notify <department> <dd.mm.yyyy>",
		Short: "Notify the employees listed in a day's absentee reports",
		Long: `notify reads the 3, 6 and 10-day absentee reports of a department for the
given date and contacts every listed employee: SMS for 3 days, email for 6
and 10 days. One status line is printed per report.`,
		Args:              cobra.ExactArgs(2),
		PersistentPreRunE: setupLogging,
		RunE:              runNotify,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	smsSender, emailSender, err := notificationService.NewSenders(cfg)
	if err != nil {
		return err
	}

	svc := notificationService.NewNotificationService(
		workbook.NewReportRepository(files, cfg.Attendance.IDColumn),
		smsSender,
		emailSender,
		cfg.Notification.EmailQuota,
	)

	result, err := svc.Dispatch(cmd.Context(), notification.DispatchRequest{
		Department: args[0],
		Date:       args[1],
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range result.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
