package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/koconv/internal/platform"
)

var (
	verbose    bool
	configFile string
	policyFlag string
	urlMode    string
	jsonOutput bool
	watchMode  bool

	settings platform.Settings
)

// rootCmd converts one version folder when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "koconv <source-version-dir> <target-implementation-name>",
	Short: "Convert a Knowledge Object version folder into the two-tier layout",
	Long: `koconv migrates a Knowledge Object version folder (metadata.json, model/ and a
service specification) into object-level metadata in the parent directory and
an implementation folder named after the target.

The payload is copied, the service specification's server url is rewritten to
the implementation name and a deployment specification is generated.`,
	Args: cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		return loadSettings(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		c, err := platform.New(args[0], args[1], settings, slog.Default())
		if err != nil {
			fatal("Invalid arguments", err)
		}

		report, err := c.Run(ctx)
		printResult(os.Stdout, c, report, err)

		if watchMode {
			if err := watch(ctx, c); err != nil {
				fatal("Watch failed", err)
			}
			return
		}
		if err != nil {
			os.Exit(1)
		}
	},
}

func loadSettings(cmd *cobra.Command) error {
	v, err := platform.NewViper(configFile)
	if err != nil {
		return err
	}

	bindings := map[string]string{
		"policy.default": "policy",
		"url_mode":       "url-mode",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	settings, err = platform.Decode(v)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default: .koconv.yaml in the working directory or above)")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "Branch error policy: best-effort, collect or fail-fast")
	rootCmd.PersistentFlags().StringVar(&urlMode, "url-mode", "", "Server url segments after the implementation name: truncate or replace")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the run state as JSON")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Convert again whenever the source folder changes")
}
