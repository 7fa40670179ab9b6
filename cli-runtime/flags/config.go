package flags

import (
	"github.com/spf13/pflag"
)

// TutorConfig contains the front-end configuration of the tutor CLI.
type TutorConfig struct {
	Config      string
	Session     string
	Storage     string
	DBPath      string
	Keyword     string
	NoColor     bool
	LogLevel    string
	MetricsAddr string
	Bootstrap   bool
}

// NewTutorConfig creates a new TutorConfig with defaults
func NewTutorConfig() *TutorConfig {
	return &TutorConfig{
		Session:   DefaultSession,
		Storage:   DefaultStorage,
		Keyword:   DefaultKeyword,
		LogLevel:  DefaultLogLevel,
		Bootstrap: true,
	}
}

// TutorFlagsVar returns flags bound to the given config
func TutorFlagsVar(config *TutorConfig) *pflag.FlagSet {
	flags := pflag.NewFlagSet("tutor", pflag.ContinueOnError)

	flags.StringVar(&config.Config, FlagConfig, config.Config, "Path to a configuration file")
	flags.StringVar(&config.Session, FlagSession, config.Session, "Name of the session to load and save")
	flags.StringVar(&config.Storage, FlagStorage, config.Storage, "Session storage backend. One of: memory|pebble")
	flags.StringVar(&config.DBPath, FlagDBPath, config.DBPath, "Directory for the pebble session database")
	flags.StringVar(&config.Keyword, FlagKeyword, config.Keyword, "Invocation keyword accepted at the start of each command")
	flags.BoolVar(&config.NoColor, FlagNoColor, config.NoColor, "Disable colored output")
	flags.StringVar(&config.LogLevel, FlagLogLevel, config.LogLevel, "Log level. One of: debug|info|warn|error")
	flags.StringVar(&config.MetricsAddr, FlagMetricsAddr, config.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVar(&config.Bootstrap, FlagBootstrap, config.Bootstrap, "Seed new sessions with system namespaces and a node")

	return flags
}
