package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/changelog"
	"github.com/finclusion-dev/finclusion/internal/config"
	"github.com/finclusion-dev/finclusion/internal/dataset"
	"github.com/finclusion-dev/finclusion/internal/gitops"
	"github.com/finclusion-dev/finclusion/internal/logging"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// project is an opened finclusion project: its root directory, config and
// logger.
type project struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

// openProject loads the config named by --config. Paths in the config
// resolve against the config file's directory.
func (o *globalOptions) openProject(cmd *cobra.Command) (*project, error) {
	path, err := filepath.Abs(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no %s found at %s (run `finclusion init`)", config.FileName, path)
		}
		return nil, err
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if o.logLevel != "" {
		level = o.logLevel
	}
	if o.logFormat != "" {
		format = o.logFormat
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	return &project{root: filepath.Dir(path), cfg: cfg, logger: logger}, nil
}

func (p *project) path(rel string) string {
	return config.Resolve(p.root, rel)
}

// store returns a Store reading from source, or from the configured raw
// dataset when source is empty. Saves always count additions against the
// raw dataset.
func (p *project) store(source string) *dataset.Store {
	raw := p.path(p.cfg.Data.RawPath)
	if source == "" {
		source = raw
	}
	return dataset.NewStore(dataset.Options{
		RawPath:            source,
		BasePath:           raw,
		RefCodesPath:       p.path(p.cfg.Data.RefCodesPath),
		RequireParentEvent: p.cfg.Validation.RequireParentEvent,
		Logger:             p.logger,
	})
}

// outputPath returns out resolved against the working directory, or the
// configured processed dataset path.
func (p *project) outputPath(out string) (string, error) {
	if out == "" {
		return p.path(p.cfg.Data.ProcessedPath), nil
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}
	return abs, nil
}

// record appends entries to the change log when it is enabled and returns
// the log path, or "" when nothing was written.
func (p *project) record(entries ...changelog.Entry) (string, error) {
	if !p.cfg.Changelog.Enabled || len(entries) == 0 {
		return "", nil
	}
	now := time.Now()
	for i := range entries {
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = now
		}
	}
	path := p.path(p.cfg.Changelog.Path)
	if err := changelog.Append(path, entries); err != nil {
		return "", fmt.Errorf("writing change log: %w", err)
	}
	return path, nil
}

// commit commits paths when asked to explicitly or when auto-commit is on.
// An explicit request outside a git repository is an error; auto-commit
// there is skipped.
func (p *project) commit(explicit bool, message string, paths ...string) (string, error) {
	if !explicit && !p.cfg.Git.AutoCommit {
		return "", nil
	}
	if !gitops.IsRepo(p.root) {
		if explicit {
			return "", fmt.Errorf("%s is not a git repository", p.root)
		}
		p.logger.Warn("auto-commit skipped", "reason", "not a git repository", "dir", p.root)
		return "", nil
	}

	var staged []string
	for _, path := range paths {
		if path != "" {
			staged = append(staged, path)
		}
	}
	hash, err := gitops.CommitPaths(p.root, message, p.cfg.Git.AuthorName, p.cfg.Git.AuthorEmail, staged...)
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	p.logger.Info("committed", "hash", hash, "message", message)
	return hash, nil
}

// source returns the dataset path a read command loads.
func (p *project) source(processed bool) string {
	if processed {
		return p.path(p.cfg.Data.ProcessedPath)
	}
	return p.path(p.cfg.Data.RawPath)
}
