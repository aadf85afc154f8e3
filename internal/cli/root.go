// internal/cli/root.go
// Package cli implements the offers command line tool on top of the offers package.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/httpclient"
	"github.com/deploymenttheory/go-api-offers-client/offers"
	"github.com/spf13/cobra"
)

type contextKey string

const cliContextKey contextKey = "cliContext"

// CliContext holds what every subcommand needs.
type CliContext struct {
	HTTPClient *httpclient.Client
	Offers     *offers.Client
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var (
		configFile string
		envFiles   []string
		logLevel   string
		cliCtx     CliContext
	)

	rootCmd := &cobra.Command{
		Use:           "offers",
		Short:         "Register products and list their offers",
		Long:          `A command line client for the Offers service. Configuration comes from a JSON file (--config) or OFFERS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsClient(cmd) {
				return nil
			}

			config, err := loadConfig(configFile, envFiles)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logLevel != "" {
				config.LogLevel = logLevel
			}

			client, err := httpclient.BuildClient(*config, true)
			if err != nil {
				return fmt.Errorf("failed to build client: %w", err)
			}

			cliCtx.HTTPClient = client
			cliCtx.Offers = offers.NewClient(client, "")
			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, &cliCtx))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cliCtx.HTTPClient == nil {
				return nil
			}
			return cliCtx.HTTPClient.Logger.Sync()
		},
	}

	rootCmd.AddCommand(newRegisterCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newTokenCommand())

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Dotenv files to load before reading OFFERS_* variables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (LogLevelDebug ... LogLevelNone)")

	return rootCmd
}

// needsClient reports whether cmd talks to the service. cobra's help and completion commands,
// including the hidden __complete helpers, run without configuration.
func needsClient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch name := c.Name(); {
		case name == "help", name == "completion", strings.HasPrefix(name, cobra.ShellCompRequestCmd):
			return false
		}
	}
	return true
}

func loadConfig(configFile string, envFiles []string) (*httpclient.ClientConfig, error) {
	if configFile != "" {
		return httpclient.LoadConfigFromFile(configFile)
	}
	return httpclient.LoadConfigFromEnv(envFiles...)
}

// getCliContext extracts the CLI context from the command context.
func getCliContext(cmd *cobra.Command) *CliContext {
	return cmd.Context().Value(cliContextKey).(*CliContext)
}
