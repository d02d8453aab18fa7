package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a smoke sequence against the store and print the tree between steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStores(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		manager, err := st.manager(ctx)
		if err != nil {
			return err
		}

		taskA, err := manager.AddTask(ctx, "Test Task A")
		if err != nil {
			return err
		}
		taskB, err := manager.AddTask(ctx, "Test Task B")
		if err != nil {
			return err
		}

		if _, err := manager.AddSubTask(ctx, taskA.ID, "Sub A1"); err != nil {
			return err
		}
		subA2, err := manager.AddSubTask(ctx, taskA.ID, "Sub A2")
		if err != nil {
			return err
		}
		if _, err := manager.AddSubTask(ctx, taskB.ID, "Sub B1"); err != nil {
			return err
		}

		// start again from a fresh load, as a new process would
		if err := manager.Initialize(ctx); err != nil {
			return err
		}

		fmt.Fprintln(out, "===== BEFORE DELETE =====")
		printTree(out, manager.List())

		if err := manager.RemoveSubTask(ctx, taskA.ID, subA2.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, "===== AFTER SUBTASK DELETE =====")
		printTree(out, manager.List())

		if err := manager.RemoveTask(ctx, taskB.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, "===== AFTER TASK DELETE =====")
		printTree(out, manager.List())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
