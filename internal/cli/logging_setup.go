package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/logging"
)

// loggingState carries the logger construction result plus the loaded config
// so subcommands can reach both through the command context.
type loggingState struct {
	result logging.Result
	cfg    *config.Config
}

type configKey struct{}

func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromCmd returns the Config loaded during setupLogging, or fresh
// defaults when the command runs without the root's PersistentPreRunE
// (direct invocation in tests).
func configFromCmd(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// setupLogging configures logging based on config file, environment, and CLI
// flags, and attaches the logger, trace ID, and config to the command context.
func setupLogging(cmd *cobra.Command) (*loggingState, error) {
	cfg := config.New()
	loggingCfg := cfg.ToLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := cfg.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
			loggingCfg.File = ""
		}
	}

	result := logging.New(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	ctx = contextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Info().Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return &loggingState{result: result, cfg: cfg}, nil
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(state *loggingState) error {
	if state == nil {
		return nil
	}
	return state.result.Close()
}
