package salesboard

import (
	"fmt"
	"math"
)

const (
	defaultFunnelTitle    = "Pipeline Conversion Funnel"
	defaultFunnelSubtitle = "This Week vs Last Week"
	funnelSkeletonRows    = 5
)

// funnelPalette is indexed by stage position; positions past the end reuse
// the last color.
var funnelPalette = []string{
	"bg-blue-600",
	"bg-blue-500",
	"bg-blue-400",
	"bg-green-400",
	"bg-green-600",
}

var defaultPipeline = PipelineData{
	Title:    defaultFunnelTitle,
	Subtitle: defaultFunnelSubtitle,
	Stages: []PipelineStage{
		{Stage: "Leads", Count: 487, Percentage: 100, Trend: Trend{Direction: TrendNeutral}},
		{Stage: "Qualified", Count: 147, Percentage: 30.2, Trend: Trend{Direction: TrendUp, Value: "+2.1%"}},
		{Stage: "Opportunity", Count: 89, Percentage: 18.3, Trend: Trend{Direction: TrendDown, Value: "-1.2%"}},
		{Stage: "Proposal", Count: 34, Percentage: 7.0, Trend: Trend{Direction: TrendUp, Value: "+0.8%"}},
		{Stage: "Closed Won", Count: 23, Percentage: 4.7, Trend: Trend{Direction: TrendUp, Value: "+1.1%"}},
	},
}

// DefaultPipeline returns a copy of the demo funnel.
func DefaultPipeline() *PipelineData {
	data := defaultPipeline
	data.Stages = append([]PipelineStage(nil), defaultPipeline.Stages...)
	return &data
}

// FunnelStageView is a render-ready funnel bar.
type FunnelStageView struct {
	Stage      string  `json:"stage"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
	Width      string  `json:"width"`
	BarColor   string  `json:"bar_color"`
	TrendValue string  `json:"trend_value"`
	TrendGlyph string  `json:"trend_glyph"`
	TrendColor string  `json:"trend_color"`
	ShowTrend  bool    `json:"show_trend"`
	AriaLabel  string  `json:"aria_label"`
}

// FunnelTransition is one line of the condensed mobile summary.
type FunnelTransition struct {
	From      string `json:"from"`
	To        string `json:"to"`
	FromCount int    `json:"from_count"`
	ToCount   int    `json:"to_count"`
	Percent   string `json:"percent"`
}

// FunnelView is the render-ready pipeline funnel.
type FunnelView struct {
	Loading      bool               `json:"loading"`
	Title        string             `json:"title"`
	Subtitle     string             `json:"subtitle"`
	Stages       []FunnelStageView  `json:"stages"`
	Transitions  []FunnelTransition `json:"transitions"`
	SkeletonRows []int              `json:"skeleton_rows,omitempty"`
	ChartHTML    string             `json:"chart_html,omitempty"`
}

// FunnelBarColor returns the fill class for the stage at index.
func FunnelBarColor(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(funnelPalette) {
		index = len(funnelPalette) - 1
	}
	return funnelPalette[index]
}

// FunnelTrendColor maps a stage trend direction to a text color.
func FunnelTrendColor(direction TrendDirection) string {
	switch direction {
	case TrendUp:
		return "text-green-600"
	case TrendDown:
		return "text-red-600"
	default:
		return "text-gray-500"
	}
}

// FunnelTrendGlyph maps a stage trend direction to its arrow; neutral has none.
func FunnelTrendGlyph(direction TrendDirection) string {
	switch direction {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	default:
		return ""
	}
}

// BuildFunnel converts pipeline data into bar views. Bar widths use the
// stored percentage verbatim; the entry stage is always labeled 100%.
func BuildFunnel(data *PipelineData, loading bool) FunnelView {
	if data == nil {
		data = &defaultPipeline
	}
	view := FunnelView{
		Loading:  loading,
		Title:    data.Title,
		Subtitle: data.Subtitle,
	}
	if view.Title == "" {
		view.Title = defaultFunnelTitle
	}
	if loading {
		view.SkeletonRows = skeletonRows(funnelSkeletonRows)
		return view
	}
	view.Stages = make([]FunnelStageView, 0, len(data.Stages))
	for i, stage := range data.Stages {
		view.Stages = append(view.Stages, buildFunnelStage(i, stage))
	}
	view.Transitions = FunnelTransitions(data.Stages)
	return view
}

func buildFunnelStage(index int, stage PipelineStage) FunnelStageView {
	pct := formatNumber(stage.Percentage)
	label := pct + "%"
	if index == 0 {
		label = "100%"
	}
	aria := fmt.Sprintf("%s: %d items, %s%% conversion", stage.Stage, stage.Count, pct)
	if stage.Trend.Value != "" {
		verb := "decreased"
		if stage.Trend.Direction == TrendUp {
			verb = "increased"
		}
		aria += fmt.Sprintf(", %s by %s", verb, stage.Trend.Value)
	}
	return FunnelStageView{
		Stage:      stage.Stage,
		Count:      stage.Count,
		Percentage: stage.Percentage,
		Label:      label,
		Width:      pct + "%",
		BarColor:   FunnelBarColor(index),
		TrendValue: stage.Trend.Value,
		TrendGlyph: FunnelTrendGlyph(stage.Trend.Direction),
		TrendColor: FunnelTrendColor(stage.Trend.Direction),
		ShowTrend:  stage.Trend.Value != "",
		AriaLabel:  aria,
	}
}

// FunnelTransitions derives the stage-to-stage summary from the stage list.
// The percent is the destination stage's share of the entry stage, rounded.
func FunnelTransitions(stages []PipelineStage) []FunnelTransition {
	if len(stages) < 2 {
		return nil
	}
	out := make([]FunnelTransition, 0, len(stages)-1)
	for i := 1; i < len(stages); i++ {
		prev, next := stages[i-1], stages[i]
		out = append(out, FunnelTransition{
			From:      prev.Stage,
			To:        next.Stage,
			FromCount: prev.Count,
			ToCount:   next.Count,
			Percent:   formatNumber(math.Round(next.Percentage)) + "%",
		})
	}
	return out
}

// FindStage looks up a stage by name.
func FindStage(data *PipelineData, name string) (PipelineStage, bool) {
	if data == nil {
		return PipelineStage{}, false
	}
	for _, stage := range data.Stages {
		if stage.Stage == name {
			return stage, true
		}
	}
	return PipelineStage{}, false
}

func skeletonRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}
