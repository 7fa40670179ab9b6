package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
)

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand(config *flags.TutorConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := openBackend(config)
			if err != nil {
				return err
			}
			defer backend.Close()

			names, err := backend.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No sessions found")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(config)
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := backend.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete session %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %q deleted\n", args[0])
			return nil
		},
	})

	return cmd
}
