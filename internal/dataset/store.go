// Package dataset owns the in-memory unified dataset and its load/save
// lifecycle.
package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/id"
	"github.com/finclusion-dev/finclusion/internal/logging"
	"github.com/finclusion-dev/finclusion/internal/model"
	"github.com/finclusion-dev/finclusion/internal/refcodes"
	"github.com/finclusion-dev/finclusion/internal/schema"
)

// Options configures a Store.
type Options struct {
	RawPath      string
	RefCodesPath string

	// BasePath is the file SaveEnriched counts rows of to report how many
	// records were added. Defaults to RawPath.
	BasePath string

	// RequireParentEvent rejects impact_link records whose parent_id names
	// no event in the dataset or earlier in the same batch.
	RequireParentEvent bool

	Logger *slog.Logger
}

// Store holds one working copy of the dataset. It is not safe for
// concurrent use.
type Store struct {
	opts   Options
	logger *slog.Logger

	data  *model.Table // nil until loaded
	refs  *model.Table
	codes *refcodes.Service
}

// NewStore creates an unloaded Store.
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{opts: opts, logger: logger}
}

func (s *Store) loaded() bool {
	return s.data != nil
}

// Load reads the raw dataset and the reference table. On failure the
// previously loaded state, if any, is left unchanged.
func (s *Store) Load() error {
	data, err := readTable(s.opts.RawPath)
	if err != nil {
		return err
	}
	refs, err := readTable(s.opts.RefCodesPath)
	if err != nil {
		return err
	}

	s.data = &data
	s.refs = &refs
	s.codes = refcodes.NewService(refcodes.FromTable(refs))

	s.logger.Info("data loaded",
		"path", s.opts.RawPath, "records", data.Len(), "columns", len(data.Columns))
	s.logger.Info("reference codes loaded",
		"path", s.opts.RefCodesPath, "codes", s.codes.Len(), "columns", len(refs.Columns))
	return nil
}

func (s *Store) ensureLoaded() error {
	if s.loaded() {
		return nil
	}
	return s.Load()
}

// Dataset returns a copy of the working dataset, loading it if needed.
func (s *Store) Dataset() (model.Table, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.Table{}, err
	}
	return s.data.Clone(), nil
}

// References returns a copy of the reference table, loading it if needed.
func (s *Store) References() (model.Table, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.Table{}, err
	}
	return s.refs.Clone(), nil
}

// Codes returns the decoded reference codes, loading them if needed.
func (s *Store) Codes() (*refcodes.Service, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return s.codes, nil
}

// AddResult reports the outcome of AddRecords.
type AddResult struct {
	Added    []model.Record
	Rejected []ValidationError
}

// AddRecords stamps recordType on each new record, validates it, assigns a
// record_id to those without one, and appends the accepted records after the
// existing rows. Invalid records are skipped and reported in Rejected. A
// record type with no schema rule, the empty type included, has no required
// fields and gets the fallback REC prefix.
func (s *Store) AddRecords(newRecords []model.Record, recordType model.RecordType) (AddResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return AddResult{}, err
	}

	ids := s.data.IDs()
	taken := make(map[string]bool, len(ids))
	for _, v := range ids {
		taken[v] = true
	}
	events := make(map[string]bool)
	for _, r := range s.data.Records {
		if r.Type() == model.TypeEvent && r.ID() != "" {
			events[r.ID()] = true
		}
	}

	var result AddResult
	var accepted []model.Record
	for i, in := range newRecords {
		rec := in.Clone()
		rec[model.FieldRecordType] = string(recordType)

		reasons := schema.Validate(rec, recordType)
		supplied := rec.ID()
		if supplied != "" && taken[supplied] {
			reasons = append(reasons, fmt.Sprintf("Duplicate record_id: %s", supplied))
		}
		if s.opts.RequireParentEvent && recordType == model.TypeImpactLink {
			if parent := rec.ParentID(); parent != "" && !events[parent] {
				reasons = append(reasons, fmt.Sprintf("Unknown parent_id: %s (no such event)", parent))
			}
		}

		if len(reasons) > 0 {
			ve := ValidationError{Index: i, RecordID: supplied, Reasons: reasons}
			s.logger.Warn("record rejected", "record_type", recordType, "index", i, "reasons", ve.Reasons)
			result.Rejected = append(result.Rejected, ve)
			continue
		}

		if supplied != "" {
			taken[supplied] = true
			ids = append(ids, supplied)
			if recordType == model.TypeEvent {
				events[supplied] = true
			}
		}
		accepted = append(accepted, rec)
	}

	prefix := schema.Prefix(recordType)
	next := id.NextSeq(ids, prefix)
	for _, rec := range accepted {
		if rec.ID() != "" {
			continue
		}
		rec[model.FieldRecordID] = id.FormatRecordID(prefix, next)
		next++
	}

	s.data.Append(accepted...)
	for _, rec := range accepted {
		result.Added = append(result.Added, rec.Clone())
	}

	s.logger.Info("records added",
		"record_type", recordType, "added", len(result.Added), "rejected", len(result.Rejected))
	return result, nil
}

// SaveReport summarizes a SaveEnriched call.
type SaveReport struct {
	Path     string
	Total    int // records written
	BaseRows int // records in the base file at save time
	Added    int // Total - BaseRows
}

// SaveEnriched writes the working dataset to outputPath and compares its size
// against the base file, which is re-read rather than remembered.
func (s *Store) SaveEnriched(outputPath string) (SaveReport, error) {
	if s.data == nil {
		s.logger.Warn("save skipped", "reason", ErrNoDataLoaded.Error())
		return SaveReport{}, ErrNoDataLoaded
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return SaveReport{}, fmt.Errorf("creating output dir: %w", err)
	}
	if err := csvtable.WriteFile(outputPath, *s.data); err != nil {
		return SaveReport{}, fmt.Errorf("saving enriched data: %w", err)
	}

	report := SaveReport{Path: outputPath, Total: s.data.Len()}

	base := s.opts.BasePath
	if base == "" {
		base = s.opts.RawPath
	}
	raw, err := readTable(base)
	if err != nil {
		return report, fmt.Errorf("counting raw records: %w", err)
	}
	report.BaseRows = raw.Len()
	report.Added = report.Total - report.BaseRows

	s.logger.Info("enriched data saved",
		"path", outputPath, "records", report.Total, "added", report.Added)
	return report, nil
}

func readTable(path string) (model.Table, error) {
	t, err := csvtable.ReadFile(path)
	if err != nil {
		return model.Table{}, &DataAccessError{Path: path, Err: err}
	}
	return t, nil
}
