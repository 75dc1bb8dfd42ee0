package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	engineName string
	colorMode  string
	verbose    bool

	cfg    config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cagc",
	Short: "cagc - grammar description compiler and matcher",
	Long: `cagc compiles grammar descriptions into JSON, YAML, or Go source
and matches input against grammar rules, printing captured values.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "configuration file")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "regexp engine: re2 or backtrack")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "colored output: auto, always, or never (default auto)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	var e error
	cfg, e = loadConfig(configPath, cmd.Flags().Changed("config"))
	if e != nil {
		return e
	}
	if engineName != "" {
		cfg.Engine = engineName
	}
	if colorMode != "" {
		cfg.Color = colorMode
	}
	if e = setColor(cfg.Color); e != nil {
		return e
	}

	logger, e = newLogger(verbose)
	return e
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	c.Encoding = "console"
	return c.Build()
}
