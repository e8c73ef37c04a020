package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/changelog"
	"github.com/finclusion-dev/finclusion/internal/dataset"
	"github.com/finclusion-dev/finclusion/internal/intake"
	"github.com/finclusion-dev/finclusion/internal/model"
	"github.com/finclusion-dev/finclusion/internal/render"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var (
		recordType string
		file       string
		format     string
		out        string
		fresh      bool
		commit     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate records from a file and add them to the processed dataset",
		Long: `Reads records from a CSV, YAML or XLSX file, validates them against the
record type's schema, assigns record IDs and writes the processed dataset.

Additions accumulate: the processed dataset is extended when it exists,
otherwise the raw dataset is the starting point. --fresh always starts
from the raw dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			rt := model.RecordType(recordType)
			if !rt.Known() {
				return fmt.Errorf("unknown record type %q (want one of %s)", recordType, recordTypeList())
			}
			outPath, err := p.outputPath(out)
			if err != nil {
				return err
			}
			return runAdd(cmd, p, addRequest{
				recordType: rt,
				file:       file,
				format:     format,
				out:        outPath,
				fresh:      fresh,
				commit:     commit,
			})
		},
	}

	cmd.Flags().StringVar(&recordType, "type", "", "record type: "+recordTypeList()+" (required)")
	cmd.Flags().StringVar(&file, "file", "", "file of records to add (required)")
	cmd.Flags().StringVar(&format, "format", "", "input format (csv, yaml, xlsx); guessed from the extension when empty")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: data.processed_path)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "start from the raw dataset even if a processed one exists")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the processed dataset and change log")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

type addRequest struct {
	recordType model.RecordType
	file       string
	format     string
	out        string
	fresh      bool
	commit     bool
}

func runAdd(cmd *cobra.Command, p *project, req addRequest) error {
	out := cmd.OutOrStdout()

	recs, err := intake.DefaultRegistry().ReadFile(req.file, req.format)
	if err != nil {
		return err
	}

	store := p.store(continueFrom(req.out, req.fresh))

	result, err := store.AddRecords(recs, req.recordType)
	if err != nil {
		return err
	}
	for _, ve := range result.Rejected {
		fmt.Fprint(out, render.Warn("rejected "+ve.Error()))
	}
	if len(result.Added) == 0 {
		return fmt.Errorf("no records added (%d rejected)", len(result.Rejected))
	}

	ids := make([]string, len(result.Added))
	for i, r := range result.Added {
		ids[i] = r.ID()
	}
	fmt.Fprintf(out, "Added %d %s record(s): %s\n", len(ids), req.recordType, strings.Join(ids, ", "))

	report, err := store.SaveEnriched(req.out)
	if err != nil {
		return err
	}
	printSaved(out, report)

	details := "from " + filepath.Base(req.file)
	if n := len(result.Rejected); n > 0 {
		details += fmt.Sprintf("; %d rejected", n)
	}
	logPath, err := p.record(
		changelog.Entry{
			Action:     changelog.ActionAdd,
			RecordType: string(req.recordType),
			Count:      len(ids),
			RecordIDs:  ids,
			Details:    details,
		},
		saveEntry(report),
	)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("data: add %d %s record(s)", len(ids), req.recordType)
	hash, err := p.commit(req.commit, msg, report.Path, logPath)
	if err != nil {
		return err
	}
	if hash != "" {
		fmt.Fprintf(out, "Committed %s\n", hash)
	}
	return nil
}

func newSaveCommand(opts *globalOptions) *cobra.Command {
	var out string
	var fresh bool
	var commit bool

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the working dataset to the processed dataset path",
		Long: `Writes the working dataset: the processed dataset when it exists,
otherwise the raw dataset. --fresh always starts from the raw dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			outPath, err := p.outputPath(out)
			if err != nil {
				return err
			}

			store := p.store(continueFrom(p.path(p.cfg.Data.ProcessedPath), fresh))
			if err := store.Load(); err != nil {
				return err
			}
			report, err := store.SaveEnriched(outPath)
			if err != nil {
				return err
			}
			printSaved(cmd.OutOrStdout(), report)

			logPath, err := p.record(saveEntry(report))
			if err != nil {
				return err
			}
			hash, err := p.commit(commit, "data: save processed dataset", report.Path, logPath)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (default: data.processed_path)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "start from the raw dataset even if a processed one exists")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the processed dataset and change log")

	return cmd
}

// continueFrom returns path when it exists and fresh is false, so work
// continues from an earlier processed dataset; "" selects the raw dataset.
func continueFrom(path string, fresh bool) string {
	if fresh {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func saveEntry(r dataset.SaveReport) changelog.Entry {
	return changelog.Entry{
		Action:  changelog.ActionSave,
		Count:   r.Total,
		Details: fmt.Sprintf("%s; %d added", r.Path, r.Added),
	}
}

func printSaved(w io.Writer, r dataset.SaveReport) {
	fmt.Fprintf(w, "Saved %d records to %s (%d beyond the raw dataset)\n", r.Total, r.Path, r.Added)
}

func recordTypeList() string {
	types := model.RecordTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
