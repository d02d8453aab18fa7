package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	"task-tracker.com/task-tracker/internal/services"
	"task-tracker.com/task-tracker/internal/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task HTTP API and the follow-up reminder loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStores(cfg)
		if err != nil {
			return err
		}
		manager, err := st.manager(ctx)
		if err != nil {
			return err
		}

		var publisher snapshot.Publisher
		if cfg.RedisEnabled {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()
			publisher = snapshot.NewRedisPublisher(redisClient, cfg.RedisSnapshotKey)
		}

		taskService := services.NewTaskService(manager, publisher)
		taskService.PublishTree(ctx)

		reminders := services.NewReminderService(
			st.tasks,
			time.Duration(cfg.ReminderIntervalSeconds)*time.Second,
			nil,
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, httpapi.NewHandler(taskService), cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s (%d pending tasks)", cfg.AppURL, manager.Len())
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		reminders.Shutdown(shutdownCtx)

		log.Println("HTTP server and reminder loop shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
