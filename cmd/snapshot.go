package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the task tree last published to Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		redisClient, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		return printSnapshot(cmd.Context(), cmd.OutOrStdout(), snapshot.NewRedisPublisher(redisClient, cfg.RedisSnapshotKey))
	},
}

func printSnapshot(ctx context.Context, w io.Writer, publisher snapshot.Publisher) error {
	tree, err := publisher.Fetch(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		fmt.Fprintln(w, "no snapshot published yet")
		return nil
	}
	if err != nil {
		return err
	}

	printTree(w, tree)
	return nil
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
