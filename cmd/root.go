package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var databaseDSN string

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "Personal task and subtask tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseDSN, "db", "", "SQLite DSN, overrides DATABASE_DSN")
}

func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if databaseDSN != "" {
		cfg.DatabaseDSN = databaseDSN
	}
	return cfg, nil
}

type stores struct {
	tasks    *repository.TaskRepository
	subTasks *repository.SubTaskRepository
}

func openStores(cfg config.Config) (*stores, error) {
	database, err := config.NewDatabaseClient(cfg.DatabaseDSN, cfg.DatabaseLogLevel)
	if err != nil {
		return nil, err
	}

	return &stores{
		tasks:    repository.NewTaskRepository(database),
		subTasks: repository.NewSubTaskRepository(database),
	}, nil
}

func (s *stores) manager(ctx context.Context) (*services.TaskDetailManager, error) {
	return services.NewTaskDetailManager(ctx, s.tasks, s.subTasks)
}
