package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print pending tasks and their subtasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStores(cfg)
		if err != nil {
			return err
		}
		manager, err := st.manager(cmd.Context())
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), manager.List())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printTree(w io.Writer, tree []model.TaskDetail) {
	if len(tree) == 0 {
		fmt.Fprintln(w, "no pending tasks")
		return
	}

	for _, td := range tree {
		fmt.Fprintf(w, "Task %d: %s", td.Task.ID, td.Task.Title)
		if td.Task.FollowUpDate != nil {
			fmt.Fprintf(w, " (follow up %s)", td.Task.FollowUpDate.Format(constants.DateLayout))
		}
		fmt.Fprintln(w)
		for _, st := range td.SubTasks {
			fmt.Fprintf(w, "  - SubTask %d: %s\n", st.ID, st.Description)
		}
	}
}
