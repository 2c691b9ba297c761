// Package commands implements the FlowLens CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cache"
	"github.com/flowlens-labs/flowlens/internal/cli/config"
	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/platform"
)

// ErrNoSnapshot is returned when analysis runs offline against an empty cache.
var ErrNoSnapshot = errors.New("no local snapshot available, run 'flowlens fetch' first")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Store    cache.Store
}

// NewCommandContext creates a CommandContext with an open cache store.
// Returns the context and a cleanup function that must be called (typically
// via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// Ensure the cache directory exists
	if dir := filepath.Dir(cfg.CachePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Store:    store,
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without opening the
// cache. Useful for commands that don't touch local state.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		APIURL:       os.Getenv("FLOWLENS_API_URL"),
		APIToken:     os.Getenv("FLOWLENS_API_TOKEN"),
		CachePath:    getEnvOrDefault("FLOWLENS_CACHE_PATH", config.DefaultCachePath),
		Verbose:      os.Getenv("FLOWLENS_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("FLOWLENS_OUTPUT", config.DefaultOutput),
		MaxDepth:     config.DefaultMaxDepth,
		KeepSnaps:    config.DefaultKeepSnaps,
		Offline:      os.Getenv("FLOWLENS_OFFLINE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newClient builds the platform API client from configuration.
func (c *CommandContext) newClient() (*platform.Client, error) {
	if c.Cfg.APIURL == "" {
		return nil, errors.New("api_url is not configured (set FLOWLENS_API_URL or api_url in flowlens.yaml)")
	}
	if c.Cfg.APIToken == "" {
		return nil, errors.New("api_token is not configured (set FLOWLENS_API_TOKEN or api_token in flowlens.yaml)")
	}
	return platform.NewClient(c.Cfg.APIURL, c.Cfg.APIToken, platform.WithLogger(c.Logger)), nil
}

// snapshotData is one loaded snapshot ready for analysis.
type snapshotData struct {
	Info      *cache.SnapshotInfo
	Dataflows []platform.Dataflow
	Datasets  []platform.Dataset
	Cards     []platform.Card
}

// loadSnapshot returns the latest cached snapshot. With an empty cache it
// fetches a fresh snapshot first, unless offline mode forbids it.
func loadSnapshot(cmd *cobra.Command, cmdCtx *CommandContext) (*snapshotData, error) {
	info, err := cmdCtx.Store.LatestSnapshot()
	if err != nil {
		return nil, err
	}

	if info == nil {
		if cmdCtx.Cfg.Offline {
			return nil, ErrNoSnapshot
		}
		if _, err := refreshSnapshot(cmd, cmdCtx); err != nil {
			return nil, err
		}
		info, err = cmdCtx.Store.LatestSnapshot()
		if err != nil {
			return nil, err
		}
		if info == nil {
			return nil, ErrNoSnapshot
		}
	}

	data := &snapshotData{Info: info}
	if data.Dataflows, err = cmdCtx.Store.LoadDataflows(info.ID); err != nil {
		return nil, err
	}
	if data.Datasets, err = cmdCtx.Store.LoadDatasets(info.ID); err != nil {
		return nil, err
	}
	if data.Cards, err = cmdCtx.Store.LoadCards(info.ID); err != nil {
		return nil, err
	}
	return data, nil
}

// refreshSnapshot fetches from the API and stores a new snapshot.
func refreshSnapshot(cmd *cobra.Command, cmdCtx *CommandContext) (string, error) {
	client, err := cmdCtx.newClient()
	if err != nil {
		return "", err
	}

	snap, err := client.FetchAll(cmd.Context())
	if err != nil {
		return "", err
	}

	id, err := cmdCtx.Store.SaveSnapshot(snap)
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}

	if err := cmdCtx.Store.Prune(cmdCtx.Cfg.KeepSnaps); err != nil {
		cmdCtx.Logger.Warn("pruning old snapshots failed", "error", err)
	}
	return id, nil
}
