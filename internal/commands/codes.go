package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/refcodes"
	"github.com/finclusion-dev/finclusion/internal/render"
)

func newCodesCommand(opts *globalOptions) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List reference codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			svc, err := p.store("").Codes()
			if err != nil {
				return err
			}

			codes := svc.All()
			if field != "" {
				codes = svc.Codes(field)
			}

			out := cmd.OutOrStdout()
			if len(codes) == 0 {
				if field != "" {
					fmt.Fprint(out, render.Muted(fmt.Sprintf("No codes for field %s.", field)))
				} else {
					fmt.Fprint(out, render.Muted("No reference codes defined."))
				}
				return nil
			}
			fmt.Fprint(out, codesTable(codes).Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "only list codes for this dataset field")

	return cmd
}

func codesTable(codes []refcodes.Code) render.Table {
	t := render.Table{
		Title:   "Reference codes",
		Headers: []string{"field", "code", "description", "applies_to"},
	}
	for _, c := range codes {
		t.Rows = append(t.Rows, []string{c.Field, c.Code, c.Description, c.AppliesTo})
	}
	return t
}
