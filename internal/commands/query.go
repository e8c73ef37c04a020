package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/dataset"
	"github.com/finclusion-dev/finclusion/internal/model"
	"github.com/finclusion-dev/finclusion/internal/refcodes"
	"github.com/finclusion-dev/finclusion/internal/render"
)

func newSummaryCommand(opts *globalOptions) *cobra.Command {
	var processed bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the raw dataset by record type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			summaries, err := p.store(p.source(processed)).SummarizeByRecordType()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprint(out, render.Muted("Dataset has no records."))
				return nil
			}

			fmt.Fprint(out, render.Title("Unified dataset"))
			t := render.Table{
				Title:   "Records by type",
				Headers: []string{"record_type", "count", "pillars", "indicators", "date_range"},
			}
			total := 0
			for _, s := range summaries {
				total += s.Count
				t.Rows = append(t.Rows, []string{
					displayType(s.RecordType),
					strconv.Itoa(s.Count),
					s.Pillars,
					strconv.Itoa(s.Indicators),
					s.DateRange,
				})
			}
			fmt.Fprint(out, t.Render())
			fmt.Fprintf(out, "%d records\n", total)
			return nil
		},
	}

	addProcessedFlag(cmd, &processed)
	return cmd
}

func displayType(rt model.RecordType) string {
	if rt == "" {
		return "(none)"
	}
	return string(rt)
}

var observationColumns = []string{
	model.FieldRecordID,
	model.FieldIndicator,
	model.FieldValueNumeric,
	model.FieldObservationDate,
	model.FieldGender,
	model.FieldLocation,
	model.FieldSourceName,
}

func newFilterCommand(opts *globalOptions) *cobra.Command {
	var pillar string
	var processed bool

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List observations for a pillar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			if pillar == "" {
				return errors.New("pillar must not be empty")
			}
			store := p.store(p.source(processed))
			recs, err := store.FilterByPillar(pillar)
			if err != nil {
				return err
			}
			codes, err := store.Codes()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprint(out, render.Muted(fmt.Sprintf("No observations for pillar %s.", pillar)))
				return nil
			}
			fmt.Fprint(out, render.Title(pillarTitle(codes, pillar)))
			fmt.Fprint(out, recordTable(pillar+" observations", observationColumns, recs).Render())
			fmt.Fprintf(out, "%d observations\n", len(recs))
			return nil
		},
	}

	cmd.Flags().StringVar(&pillar, "pillar", "", "pillar to select, e.g. ACCESS (required)")
	_ = cmd.MarkFlagRequired("pillar")
	addProcessedFlag(cmd, &processed)

	return cmd
}

func newEventsCommand(opts *globalOptions) *cobra.Command {
	var processed bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List impact links joined with their parent events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			store := p.store(p.source(processed))
			joined, err := store.EventsWithImpacts()
			if err != nil {
				return err
			}
			codes, err := store.Codes()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if joined.Len() == 0 {
				fmt.Fprint(out, render.Muted("No impact links with matching events."))
				return nil
			}
			labelCategories(&joined, codes)
			fmt.Fprint(out, render.Title("Events with impacts"))
			fmt.Fprint(out, recordTable("Impact links", nonEmptyColumns(joined), joined.Records).Render())
			fmt.Fprintf(out, "%d links\n", joined.Len())
			return nil
		},
	}

	addProcessedFlag(cmd, &processed)
	return cmd
}

// pillarTitle names pillar with its reference description when one exists.
func pillarTitle(codes *refcodes.Service, pillar string) string {
	if label := codes.Decode(model.FieldPillar, pillar); label != pillar {
		return pillar + ": " + label
	}
	return pillar
}

const categoryLabelColumn = "category_label"

// labelCategories adds a category_label column holding the decoded event
// category of each joined row.
func labelCategories(t *model.Table, codes *refcodes.Service) {
	col := model.FieldCategory + dataset.SuffixEvent
	if !t.HasColumn(col) {
		col = model.FieldCategory
	}
	t.AddColumn(categoryLabelColumn)
	for _, r := range t.Records {
		if v, ok := r.Value(col); ok {
			r[categoryLabelColumn] = codes.Decode(model.FieldCategory, v)
		}
	}
}

func addProcessedFlag(cmd *cobra.Command, processed *bool) {
	cmd.Flags().BoolVar(processed, "processed", false, "read the processed dataset instead of the raw one")
}

func recordTable(title string, columns []string, recs []model.Record) render.Table {
	t := render.Table{Title: title, Headers: columns}
	for _, r := range recs {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = r.Get(c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// nonEmptyColumns returns the columns of t that hold a value in at least
// one record.
func nonEmptyColumns(t model.Table) []string {
	var cols []string
	for _, c := range t.Columns {
		for _, r := range t.Records {
			if r.Has(c) {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}
