package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gdscriptmcp/internal/config"
	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/paths"
	"gdscriptmcp/internal/tools"
)

const configEnvHint = config.EnvConfigPath

// session is the state every command shares after flags are parsed.
type session struct {
	cfg       config.Config
	cacheRoot string
	log       *logx.Logger
}

// setup loads configuration, applies the log level and resolves the cache
// root. Any failure here is fatal for the command.
func setup(cmd *cobra.Command, log *logx.Logger) (*session, error) {
	path := config.ResolvePath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if !cmd.Flags().Changed(logx.VerbosityFlagName) {
		if level, err := logx.ParseLevel(cfg.Log.Level); err == nil {
			log.SetLevel(level)
		}
	}

	results := cfg.Validate()
	if invalid := config.Errors(results); len(invalid) > 0 {
		errs := make([]error, 0, len(invalid))
		for _, result := range invalid {
			errs = append(errs, errors.New(result.Message))
		}
		return nil, fmt.Errorf("invalid config %s: %w", path, errors.Join(errs...))
	}
	for _, result := range results {
		if result.Level == "warning" {
			log.Info("warning: "+result.Message, "config", path)
		}
	}

	if cfg.Log.Dir != "" {
		logFile, err := log.EnableFileOutput(cfg.Log.Dir)
		if err != nil {
			return nil, err
		}
		log.V(1).Info("writing log file", "path", logFile)
	}

	cacheRoot, err := paths.ResolveCacheRoot(cfg.Cache.Dir)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("resolved cache root", "path", cacheRoot)

	return &session{cfg: cfg, cacheRoot: cacheRoot, log: log}, nil
}

// manager builds a formatter manager; onStage may be nil.
func (s *session) manager(onStage func(tools.Stage, string)) *tools.Manager {
	return tools.NewManager(tools.Options{
		CacheRoot:  s.cacheRoot,
		BinaryPath: s.cfg.Binary.Path,
		ReleaseURL: s.cfg.Release.URL,
		Timeout:    time.Duration(s.cfg.Release.TimeoutSec) * time.Second,
		Retries:    s.cfg.Release.RetriesValue(),
		UserAgent:  paths.AppName + "/" + version,
		Logger:     s.log.WithName("formatter"),
		OnStage:    onStage,
	})
}
