package salesboard

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	goerrors "github.com/goliatone/go-errors"
)

const defaultFunnelChartHeight = "320px"

// ChartRenderer turns pipeline data into embeddable chart markup.
type ChartRenderer interface {
	RenderFunnel(ctx context.Context, data *PipelineData) (string, error)
}

// FunnelChartRenderer renders the pipeline as a go-echarts funnel.
type FunnelChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// FunnelChartOption customizes the renderer.
type FunnelChartOption func(*FunnelChartRenderer)

// WithFunnelChartCache injects a render cache; nil disables caching.
func WithFunnelChartCache(cache RenderCache) FunnelChartOption {
	return func(r *FunnelChartRenderer) {
		r.cache = cache
	}
}

// WithFunnelChartTheme sets the echarts theme (defaults to Westeros).
func WithFunnelChartTheme(theme string) FunnelChartOption {
	return func(r *FunnelChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithFunnelChartAssetsHost loads the echarts scripts from host.
func WithFunnelChartAssetsHost(host string) FunnelChartOption {
	return func(r *FunnelChartRenderer) {
		r.assetsHost = host
	}
}

// WithFunnelChartHeight overrides the chart height.
func WithFunnelChartHeight(height string) FunnelChartOption {
	return func(r *FunnelChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewFunnelChartRenderer builds a renderer with a five minute cache.
func NewFunnelChartRenderer(options ...FunnelChartOption) *FunnelChartRenderer {
	r := &FunnelChartRenderer{
		cache:  NewChartCache(5 * time.Minute),
		theme:  types.ThemeWesteros,
		height: defaultFunnelChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderFunnel renders the stages in order. Values are stage counts so the
// chart matches the bars regardless of the stored percentages.
func (r *FunnelChartRenderer) RenderFunnel(ctx context.Context, data *PipelineData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &defaultPipeline
	}
	if len(data.Stages) == 0 {
		return "", nil
	}
	render := func() (string, error) {
		return r.render(data)
	}
	if r.cache == nil {
		return render()
	}
	key := strings.Join([]string{"funnel", r.theme, data.Title, data.Subtitle, stagesHash(data.Stages)}, ":")
	return r.cache.GetOrRender(key, render)
}

func (r *FunnelChartRenderer) render(data *PipelineData) (string, error) {
	title := data.Title
	if title == "" {
		title = defaultFunnelTitle
	}
	items := make([]opts.FunnelData, 0, len(data.Stages))
	for _, stage := range data.Stages {
		items = append(items, opts.FunnelData{Name: stage.Stage, Value: stage.Count})
	}

	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}

	funnel := charts.NewFunnel()
	funnel.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: data.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	funnel.AddSeries(title, items)

	var buf bytes.Buffer
	if err := funnel.Render(&buf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: render funnel chart")
	}
	return buf.String(), nil
}
