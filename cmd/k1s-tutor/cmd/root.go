package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/storage"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// EnvPrefix prefixes the environment variables read by the CLI, e.g.
// K1S_TUTOR_SESSION.
const EnvPrefix = "K1S_TUTOR"

// NewRootCommand creates the k1s-tutor command. Without a subcommand it
// starts the interactive shell.
func NewRootCommand() *cobra.Command {
	config := flags.NewTutorConfig()
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "k1s-tutor",
		Short: "Learn kubectl against a simulated cluster",
		Long: `k1s-tutor is an interactive kubectl tutorial. Commands are executed against a
simulated cluster that keeps deployments, replicasets, pods, services and the
other common resource types in memory.

Sessions can be persisted between runs with --storage pebble.`,
		Version:       v1.ServerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, config)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, config)
		},
	}

	rootCmd.PersistentFlags().AddFlagSet(flags.TutorFlagsVar(config))
	if err := v.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(NewShellCommand(config))
	rootCmd.AddCommand(NewExecCommand(config))
	rootCmd.AddCommand(NewSessionsCommand(config))

	return rootCmd
}

// loadConfig overlays the optional config file and the environment on the
// flag values. Flags set on the command line win.
func loadConfig(v *viper.Viper, config *flags.TutorConfig) error {
	if path := v.GetString(flags.FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config.Session = v.GetString(flags.FlagSession)
	config.Storage = v.GetString(flags.FlagStorage)
	config.DBPath = v.GetString(flags.FlagDBPath)
	config.Keyword = v.GetString(flags.FlagKeyword)
	config.NoColor = v.GetBool(flags.FlagNoColor)
	config.LogLevel = v.GetString(flags.FlagLogLevel)
	config.MetricsAddr = v.GetString(flags.FlagMetricsAddr)
	config.Bootstrap = v.GetBool(flags.FlagBootstrap)

	if config.Session == "" {
		return fmt.Errorf("--%s must not be empty", flags.FlagSession)
	}
	if _, err := storage.StorageTypeFromString(config.Storage); err != nil {
		return fmt.Errorf("unsupported storage type %q, use one of %v", config.Storage, storage.GetAllStorageTypes())
	}
	if config.NoColor {
		color.NoColor = true
	}
	return nil
}

// keywords splits the comma separated --keyword value.
func keywords(config *flags.TutorConfig) []string {
	var out []string
	for _, k := range strings.Split(config.Keyword, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
