package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/forecast"
	"github.com/finclusion-dev/finclusion/internal/render"
)

func newForecastCommand(opts *globalOptions) *cobra.Command {
	var target float64
	var year int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show projections and the gap to the national target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.openProject(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = p.cfg.Target.Value
			}
			if !cmd.Flags().Changed("year") {
				year = p.cfg.Target.Year
			}

			points, err := forecast.NewLoader().Load(p.path(p.cfg.Data.ForecastPath))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(points) == 0 {
				fmt.Fprint(out, render.Muted("No forecast points."))
				return nil
			}
			fmt.Fprint(out, forecastTable(p.cfg.Target.Indicator, points).Render())

			goal := decimal.NewFromFloat(target)
			report, ok := forecast.Gap(points, goal, year)
			if !ok {
				fmt.Fprint(out, render.Muted(fmt.Sprintf("No forecast for %d.", year)))
				return nil
			}
			fmt.Fprint(out, gapTable(report).Render())
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "target value (default: target.value)")
	cmd.Flags().IntVar(&year, "year", 0, "target year (default: target.year)")

	return cmd
}

func forecastTable(indicator string, points []forecast.Point) render.Table {
	t := render.Table{
		Title:   indicator + " forecast",
		Headers: []string{"year", "forecast", "lower_95", "upper_95", "optimistic", "pessimistic"},
	}
	for _, pt := range points {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(pt.Year),
			pt.Forecast.StringFixed(1),
			pt.Lower95.String(),
			pt.Upper95.String(),
			pt.Optimistic.String(),
			pt.Pessimistic.String(),
		})
	}
	return t
}

func gapTable(r forecast.GapReport) render.Table {
	t := render.Table{
		Title:   fmt.Sprintf("Gap to target %s in %d", r.Target.StringFixed(1), r.Year),
		Headers: []string{"scenario", "forecast", "gap"},
	}
	for _, g := range r.Gaps {
		t.Rows = append(t.Rows, []string{g.Scenario, g.Forecast.StringFixed(1), g.Gap.StringFixed(1)})
	}
	return t
}
