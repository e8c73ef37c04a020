// Package forecast reads projected indicator values and measures them
// against a national target.
package forecast

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/filecache"
	"github.com/finclusion-dev/finclusion/internal/model"
)

// Forecast file columns.
const (
	ColYear        = "year"
	ColForecast    = "forecast"
	ColUpper95     = "upper_95"
	ColLower95     = "lower_95"
	ColOptimistic  = "optimistic"
	ColPessimistic = "pessimistic"
)

// Value is an optional decimal cell.
type Value struct {
	Decimal decimal.Decimal
	Valid   bool
}

func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(1)
}

// Point is one projected year.
type Point struct {
	Year        int
	Forecast    decimal.Decimal
	Upper95     Value
	Lower95     Value
	Optimistic  Value
	Pessimistic Value
}

// ReadForecasts parses a forecast CSV. The year and forecast columns are
// required; the interval and scenario columns are optional. Points are
// returned sorted by year.
func ReadForecasts(r io.Reader) ([]Point, error) {
	t, err := csvtable.Read(r)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{ColYear, ColForecast} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("forecast file missing %q column", col)
		}
	}

	points := make([]Point, 0, t.Len())
	for i, rec := range t.Records {
		line := i + 2
		year, err := strconv.Atoi(strings.TrimSpace(rec.Get(ColYear)))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year %q", line, rec[ColYear])
		}
		f, err := decimal.NewFromString(strings.TrimSpace(rec.Get(ColForecast)))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid forecast %q", line, rec[ColForecast])
		}

		p := Point{Year: year, Forecast: f}
		for col, dst := range map[string]*Value{
			ColUpper95:     &p.Upper95,
			ColLower95:     &p.Lower95,
			ColOptimistic:  &p.Optimistic,
			ColPessimistic: &p.Pessimistic,
		} {
			*dst, err = optional(rec, col)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		points = append(points, p)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points, nil
}

func optional(rec model.Record, col string) (Value, error) {
	v, ok := rec.Value(col)
	if !ok {
		return Value{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return Value{}, fmt.Errorf("invalid %s %q", col, v)
	}
	return Value{Decimal: d, Valid: true}, nil
}

// Loader reads forecast files through a cache so an unchanged file is only
// parsed once.
type Loader struct {
	cache *filecache.Cache[[]Point]
}

// NewLoader returns a Loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{cache: filecache.New[[]Point]()}
}

// Load returns the forecast points in path.
func (l *Loader) Load(path string) ([]Point, error) {
	points, err := l.cache.Get(path, ReadForecasts)
	if err != nil {
		return nil, fmt.Errorf("loading forecasts: %w", err)
	}
	return points, nil
}

// Scenario names used in a GapReport.
const (
	ScenarioBase        = "base"
	ScenarioOptimistic  = "optimistic"
	ScenarioPessimistic = "pessimistic"
)

// ScenarioGap is how far one scenario falls short of the target. A negative
// Gap means the scenario exceeds it.
type ScenarioGap struct {
	Scenario string
	Forecast decimal.Decimal
	Gap      decimal.Decimal
}

// GapReport compares a year's scenarios with the target.
type GapReport struct {
	Year   int
	Target decimal.Decimal
	Gaps   []ScenarioGap
}

// Gap reports target minus the projection of each available scenario for
// year. ok is false when no point covers that year.
func Gap(points []Point, target decimal.Decimal, year int) (GapReport, bool) {
	for _, p := range points {
		if p.Year != year {
			continue
		}
		r := GapReport{Year: year, Target: target}
		r.Gaps = append(r.Gaps, ScenarioGap{ScenarioBase, p.Forecast, target.Sub(p.Forecast)})
		if p.Optimistic.Valid {
			r.Gaps = append(r.Gaps, ScenarioGap{ScenarioOptimistic, p.Optimistic.Decimal, target.Sub(p.Optimistic.Decimal)})
		}
		if p.Pessimistic.Valid {
			r.Gaps = append(r.Gaps, ScenarioGap{ScenarioPessimistic, p.Pessimistic.Decimal, target.Sub(p.Pessimistic.Decimal)})
		}
		return r, true
	}
	return GapReport{}, false
}
