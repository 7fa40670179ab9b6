package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
)

// NewExecCommand creates the exec command, which runs each argument as one
// command line and stops at the first failure.
func NewExecCommand(config *flags.TutorConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "exec LINE [LINE...]",
		Short: "Execute command lines against a session",
		Example: `  # Create a deployment and list its pods
  k1s-tutor exec "kubectl create deployment web --replicas=3" "kubectl get pods"

  # Work in a persisted session
  k1s-tutor exec --storage pebble --session demo "kubectl get all -A"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), config, func(s *session) error {
				out := cmd.OutOrStdout()
				for _, line := range args {
					result, err := s.execute(cmd.Context(), line)
					printResult(out, result)
					if err != nil {
						return err
					}
					if !result.Success {
						return fmt.Errorf("command failed: %s", line)
					}
				}
				return nil
			})
		},
	}
}
