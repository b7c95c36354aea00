package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
	"github.com/bobmcallan/youtube138-mcp/internal/diagnostics"
	"github.com/bobmcallan/youtube138-mcp/internal/mcp"
	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

var (
	configFile string
	logLevel   string
	httpMode   bool
	port       string

	// exitCode is set by commands that report a status without failing.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:           "youtube138-mcp",
	Short:         "MCP server for the YouTube138 RapidAPI",
	Long:          `Exposes YouTube search, autocomplete and home recommendations as MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Call every tool once against the live API and report the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		d := youtube.NewDispatcher(cfg.API, logger)
		exitCode = diagnostics.NewChecker(cfg, d, cmd.OutOrStdout()).Run(cmd.Context())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadVersionFromFile()
		fmt.Fprintln(cmd.OutOrStdout(), config.GetFullVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "youtube138-mcp.toml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&httpMode, "http", false, "Serve streamable HTTP instead of stdio")
	rootCmd.Flags().StringVar(&port, "port", "", "HTTP port override")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(checkCmd, versionCmd)
}

// setup loads configuration and creates a logger whose console lines go to logOut.
func setup(logOut io.Writer) (*config.Config, *common.Logger, error) {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return nil, nil, err
	}
	config.ApplyFlagOverrides(cfg, logLevel, httpMode, port)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	config.LoadVersionFromFile()

	return cfg, common.NewLoggerFromConfig(cfg.Logging, logOut), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if !cfg.HasCredential() {
		logger.Warn().Msg("RAPIDAPI_KEY is not set; every tool call will fail until it is configured")
		fmt.Fprintln(os.Stderr, "Warning: RAPIDAPI_KEY environment variable is not set")
		fmt.Fprint(os.Stderr, config.CredentialInstructions)
	}

	d := youtube.NewDispatcher(cfg.API, logger)
	return mcp.Serve(cmd.Context(), cfg, mcp.NewServer(cfg, d, logger), logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "youtube138-mcp: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
