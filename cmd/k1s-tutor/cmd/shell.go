package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/handlers"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// printResult writes the message of result, failures in red.
func printResult(w io.Writer, result handlers.Result) {
	if result.Message == "" {
		return
	}
	if !result.Success {
		errorColor.Fprintln(w, result.Message)
		return
	}
	fmt.Fprintln(w, result.Message)
}

// NewShellCommand creates the interactive shell command.
func NewShellCommand(config *flags.TutorConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive kubectl shell (default)",
		Example: `  # Start a throwaway session
  k1s-tutor shell

  # Continue a persisted session
  k1s-tutor shell --storage pebble --session lesson-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, config)
		},
	}
}

func runShell(cmd *cobra.Command, config *flags.TutorConfig) error {
	return withSession(cmd.Context(), config, func(s *session) error {
		out := cmd.OutOrStdout()
		successColor.Fprintf(out, "Connected to the simulated cluster (session %q). Type %q for help, \"exit\" to quit.\n",
			s.name, s.engine.Keywords()[0]+" help")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			promptColor.Fprint(out, "k1s> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "exit", "quit":
				return nil
			}

			result, err := s.execute(cmd.Context(), line)
			printResult(out, result)
			if err != nil {
				errorColor.Fprintln(out, "error:", err)
			}
		}
	})
}
