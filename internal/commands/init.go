package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/config"
	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/gitops"
	"github.com/finclusion-dev/finclusion/internal/model"
	"github.com/finclusion-dev/finclusion/internal/refcodes"
)

func newInitCommand(_ *globalOptions) *cobra.Command {
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finclusion project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, withGit)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized finclusion project at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized finclusion project at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withGit, "git", false, "initialize a git repository and commit the scaffold")

	return cmd
}

func runInit(dir string, withGit bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()

	// Create directory structure.
	dirs := []string{
		filepath.Dir(cfg.Data.RawPath),
		filepath.Dir(cfg.Data.ProcessedPath),
		filepath.Dir(cfg.Data.ForecastPath),
		filepath.Dir(cfg.Changelog.Path),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Header-only raw dataset.
	raw := model.Table{Columns: model.DefaultColumns}
	if err := csvtable.WriteFile(filepath.Join(dir, cfg.Data.RawPath), raw); err != nil {
		return "", fmt.Errorf("writing raw dataset: %w", err)
	}

	if err := writeCodes(filepath.Join(dir, cfg.Data.RefCodesPath), refcodes.DefaultCodes()); err != nil {
		return "", fmt.Errorf("writing reference codes: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Data.ForecastPath), []byte("year,forecast,upper_95,lower_95,optimistic,pessimistic\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing forecast template: %w", err)
	}

	if !withGit {
		return "", nil
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
	}
	hash, err := gitops.CommitPaths(dir, "init: finclusion project", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func writeCodes(path string, codes []refcodes.Code) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := refcodes.WriteCodes(f, codes); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
