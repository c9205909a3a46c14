package main

import (
	"os"

	"github.com/dhamidi/doomfront/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// cfg is loaded before any subcommand runs. Subcommand flags override it.
var cfg = config.Default()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "doomfront",
		Short:        "Parse and check CVARINFO lumps",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if !cmd.Flags().Changed("verbose") {
				verbose = cfg.Verbosity
			}
			commonlog.Configure(verbose, nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ./"+config.FileName+" if present)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFrom(".")
}
