package salesboard

import (
	"fmt"
	"net/url"

	"github.com/ettle/strcase"
)

const (
	defaultDataUpdated = "Oct 28, 8:15 AM"
	copyrightLine      = "© 2025 Sales Analytics App"
)

var (
	periodLabels    = []string{"This Week", "Last Week", "This Month"}
	territoryLabels = []string{"North", "South", "East", "West"}
)

// FilterOption is a single <option> of a global filter.
type FilterOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FilterView is a labeled <select> in the global filter bar.
type FilterView struct {
	Name      string         `json:"name"`
	Icon      string         `json:"icon"`
	AriaLabel string         `json:"aria_label"`
	Options   []FilterOption `json:"options"`
}

// QuickFilter is a pill button under the global filters.
type QuickFilter struct {
	Label string `json:"label"`
	CSS   string `json:"css"`
}

// FooterView is the page footer.
type FooterView struct {
	Copyright   string `json:"copyright"`
	HelpLabel   string `json:"help_label"`
	DataUpdated string `json:"data_updated"`
}

// LayoutInput bundles the section data for one dashboard render. Nil
// sections fall back to the demo data.
type LayoutInput struct {
	Header     HeaderData
	KPIs       []KPICard
	Pipeline   *PipelineData
	Reps       []RepPerformance
	RepOptions []RepPerformance
	Activities []Activity
	Query      DashboardQuery
	State      ViewState
	Params     url.Values
	Loading    bool
	ChartHTML  string
}

// DashboardView is the full page view model.
type DashboardView struct {
	SkipLink     string           `json:"skip_link"`
	Header       HeaderView       `json:"header"`
	Filters      []FilterView     `json:"filters"`
	AutoRefresh  string           `json:"auto_refresh"`
	QuickFilters []QuickFilter    `json:"quick_filters"`
	KPIs         KPIGridView      `json:"kpis"`
	Pipeline     FunnelView       `json:"pipeline"`
	Reps         RepsTableView    `json:"reps"`
	Activities   ActivityFeedView `json:"activities"`
	Footer       FooterView       `json:"footer"`
	Query        DashboardQuery   `json:"query"`
}

// BuildLayout composes the header, filters, the four sections and the footer.
func BuildLayout(input LayoutInput) DashboardView {
	repOptions := input.RepOptions
	if repOptions == nil {
		repOptions = input.Reps
	}
	if repOptions == nil {
		repOptions = defaultReps
	}

	view := DashboardView{
		SkipLink: "Skip to main content",
		Header: BuildHeader(HeaderInput{
			Data:   input.Header,
			Params: input.Params,
		}, input.State),
		Filters: []FilterView{
			periodFilter(input.Query.Period),
			territoryFilter(input.Query.Territory),
			repFilter(repOptions, input.Query.Rep),
		},
		AutoRefresh:  "Auto",
		QuickFilters: quickFilters(),
		KPIs:         BuildKPIGrid(input.KPIs, input.Loading),
		Pipeline:     BuildFunnel(input.Pipeline, input.Loading),
		Reps: BuildRepsTable(input.Reps, RepsTableOptions{
			Loading:       input.Loading,
			SortBy:        input.Query.SortBy,
			SortDirection: input.Query.SortDirection,
		}),
		Activities: BuildActivityFeed(input.Activities, input.Loading),
		Footer: FooterView{
			Copyright:   copyrightLine,
			HelpLabel:   "Help & Support",
			DataUpdated: input.Header.LastUpdated,
		},
		Query: input.Query,
	}
	if view.Footer.DataUpdated == "" {
		view.Footer.DataUpdated = defaultDataUpdated
	}
	if !input.Loading {
		view.Pipeline.ChartHTML = input.ChartHTML
	}
	view.Reps.ApplySortLinks(input.Params)
	return view
}

func periodFilter(selected string) FilterView {
	filter := FilterView{Name: "period", Icon: "📅", AriaLabel: "Time period filter"}
	for i, label := range periodLabels {
		value := strcase.ToKebab(label)
		filter.Options = append(filter.Options, FilterOption{
			Value:    value,
			Label:    label,
			Selected: value == selected || (selected == "" && i == 0),
		})
	}
	return filter
}

func territoryFilter(selected string) FilterView {
	filter := FilterView{Name: "territory", Icon: "🎯", AriaLabel: "Territory filter"}
	filter.Options = append(filter.Options, FilterOption{Label: "All Territories", Selected: selected == ""})
	for _, label := range territoryLabels {
		value := strcase.ToKebab(label)
		filter.Options = append(filter.Options, FilterOption{
			Value:    value,
			Label:    label,
			Selected: value == selected,
		})
	}
	return filter
}

func repFilter(reps []RepPerformance, selected string) FilterView {
	filter := FilterView{Name: "rep", Icon: "👥", AriaLabel: "Sales rep filter"}
	filter.Options = append(filter.Options, FilterOption{
		Label:    fmt.Sprintf("All Reps (%d)", len(reps)),
		Selected: selected == "",
	})
	for _, rep := range reps {
		filter.Options = append(filter.Options, FilterOption{
			Value:    rep.ID,
			Label:    rep.Name,
			Selected: rep.ID == selected,
		})
	}
	return filter
}

func quickFilters() []QuickFilter {
	return []QuickFilter{
		{Label: "At Risk", CSS: "px-3 py-1 text-sm bg-red-100 text-red-800 rounded-full hover:bg-red-200 focus:ring-2 focus:ring-red-500"},
		{Label: "Overperforming", CSS: "px-3 py-1 text-sm bg-green-100 text-green-800 rounded-full hover:bg-green-200 focus:ring-2 focus:ring-green-500"},
		{Label: "New This Week", CSS: "px-3 py-1 text-sm bg-blue-100 text-blue-800 rounded-full hover:bg-blue-200 focus:ring-2 focus:ring-blue-500"},
		{Label: "Export Report", CSS: "px-3 py-2 text-sm border border-gray-300 rounded-md hover:bg-gray-50 focus:ring-2 focus:ring-blue-500"},
	}
}
