package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/client"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/config"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/credentials"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/log"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/report"
)

// buildConfig creates a Config from defaults, the config file, the
// environment, and finally the command flags, in that order of
// precedence (later wins).
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently fall back to defaults.
	explicitConfigPath := configPath != ""
	foundPath := config.FindConfigFile(configPath)

	if foundPath != "" {
		file, err := config.LoadConfigFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	// Flags beat both the file and the environment.
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a credential-masking structured logger based on
// the verbosity setting and installs it as the slog default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// runContext returns a context cancelled on SIGINT or SIGTERM for
// graceful shutdown.
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newGateway creates the API gateway from the configuration.
func newGateway(cfg *config.Config) *gateway.Client {
	return gateway.NewClient(cfg.BaseURL,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithUserAgent(cfg.UserAgent),
	)
}

// restoreSession rebuilds the session from stored credentials.
// A fresh machine or an expired token yields (nil, nil); only a
// broken credentials file is reported as an error.
func restoreSession(ctx context.Context, gw *gateway.Client) (*client.Session, error) {
	store := credentials.NewStore("")
	creds, err := store.Load()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}
	return client.Restore(ctx, gw, creds.Token, creds.Username)
}

// requireSession rebuilds the session and fails when no one is logged in.
func requireSession(ctx context.Context, gw *gateway.Client) (*client.Session, error) {
	sess, err := restoreSession(ctx, gw)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w (run 'hacksnooze login' first)", client.ErrNotLoggedIn)
	}
	return sess, nil
}

// addOutputFlags registers the output format flags shared by the read
// commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output GitHub Flavored Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")
}

// applyOutputFlags copies the shared output flags onto the config.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	return nil
}

// openOutput opens the configured output destination.
// The returned close function is a no-op for stdout.
func openOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newWriter selects the report writer matching the configured format.
func newWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
