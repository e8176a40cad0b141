package chart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"InvestTracker/internal/calculator"
	"InvestTracker/internal/model"

	"github.com/vicanso/go-charts/v2"
)

// ErrNoData is returned when there is no point to draw.
var ErrNoData = errors.New("no data")

// Options controls chart rendering.
type Options struct {
	Width     int
	Height    int
	SMAPeriod int // 0 disables the moving average in the subtitle
	CacheTTL  time.Duration
}

// Renderer draws price history as PNG line charts.
type Renderer struct {
	opts  Options
	cache *cache
}

// NewRenderer creates a Renderer, filling unset sizes with defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	return &Renderer{opts: opts, cache: newCache(opts.CacheTTL)}
}

// Render draws the series trimmed to the window. A zero window draws the whole
// history. The chart subtitle carries the window change as computed by the
// performance engine on the full series.
func (r *Renderer) Render(symbol string, series []model.PricePoint, window model.LookbackWindow) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	label := window.Label
	if label == "" {
		label = "ALL"
	}
	last := series[len(series)-1]
	cacheKey := fmt.Sprintf("%s|%s|%s|%d", strings.ToUpper(symbol), label, last.Date, len(series))
	if img, ok := r.cache.get(cacheKey); ok {
		return img, nil
	}

	points := calculator.TrimToWindow(series, window.Days)
	xAll := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		xAll[i] = p.Date.Time().Format("Jan 02 06")
		values[i] = p.Price.InexactFloat64()
	}

	high, low, err := calculator.PriceRange(series, window.Days)
	if err != nil {
		return nil, err
	}
	yMax, yMin := high.InexactFloat64(), low.InexactFloat64()
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	if pad == 0 {
		pad = 1
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	split := len(points) - 1
	if split > 8 {
		split = 8
	}
	if split < 1 {
		split = 1
	}

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(strings.ToUpper(symbol)+" • "+label, r.subtitle(series, window)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xAll, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(r.opts.Width),
		charts.HeightOptionFunc(r.opts.Height),
		charts.PNGTypeOption(),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", symbol, err)
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode %s chart: %w", symbol, err)
	}
	r.cache.set(cacheKey, img)
	return img, nil
}

func (r *Renderer) subtitle(series []model.PricePoint, window model.LookbackWindow) string {
	last := series[len(series)-1]
	parts := []string{last.Date.String() + " " + last.Price.StringFixed(2)}
	if window.Label != "" {
		res := calculator.ComputePerformance(series, []model.LookbackWindow{window})[0]
		parts = append(parts, window.Label+" "+res.String())
	}
	if r.opts.SMAPeriod > 0 {
		if sma, err := calculator.CalculateSeriesSMA(series, r.opts.SMAPeriod); err == nil {
			parts = append(parts, fmt.Sprintf("SMA%d %s", r.opts.SMAPeriod, sma.StringFixed(2)))
		}
	}
	return strings.Join(parts, " • ")
}
