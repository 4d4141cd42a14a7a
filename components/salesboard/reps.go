package salesboard

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	maxQuickActions  = 2
	repsSkeletonRows = 4

	// ActionViewDetails opens a rep's detail view. Every row offers it.
	ActionViewDetails = "view-details"

	defaultRepsSortBy = "conversionRate"
)

// Sortable reps table columns.
const (
	SortByName               = "name"
	SortByConversionRate     = "conversionRate"
	SortByPipelineValue      = "pipelineValue"
	SortByActivitiesThisWeek = "activitiesThisWeek"
	SortByDealsAtRisk        = "dealsAtRisk"
)

var repsColumns = []RepsColumn{
	{Key: SortByName, Label: "Name", Sortable: true},
	{Key: SortByConversionRate, Label: "Conv. Rate", Sortable: true},
	{Key: SortByPipelineValue, Label: "Pipeline Value", Sortable: true},
	{Key: SortByActivitiesThisWeek, Label: "Activities This Week", Sortable: true},
	{Key: SortByDealsAtRisk, Label: "Deals At Risk", Sortable: true},
	{Key: "status", Label: "Status"},
	{Key: "actions", Label: "Actions"},
}

var defaultReps = []RepPerformance{
	{
		ID: "sarah-chen", Name: "Sarah Chen", ConversionRate: 8.2,
		ConversionTrend: Trend{Direction: TrendDown, Value: "-4.1%"},
		PipelineValue:   "$185K", ActivitiesThisWeek: 12, DealsAtRisk: 4,
		Status: RepNeedsCoaching, QuickActions: []string{"call", "schedule-1on1"},
	},
	{
		ID: "mike-johnson", Name: "Mike Johnson", ConversionRate: 11.5,
		ConversionTrend: Trend{Direction: TrendDown, Value: "-1.2%"},
		PipelineValue:   "$220K", ActivitiesThisWeek: 18, DealsAtRisk: 2,
		Status: RepWatch, QuickActions: []string{"message", "check-in"},
	},
	{
		ID: "lisa-wong", Name: "Lisa Wong", ConversionRate: 18.7,
		ConversionTrend: Trend{Direction: TrendUp, Value: "+3.2%"},
		PipelineValue:   "$340K", ActivitiesThisWeek: 24, DealsAtRisk: 1,
		Status: RepExcelling, QuickActions: []string{"celebrate", "share-best-practice"},
	},
	{
		ID: "tom-rodriguez", Name: "Tom Rodriguez", ConversionRate: 16.9,
		ConversionTrend: Trend{Direction: TrendUp, Value: "+1.8%"},
		PipelineValue:   "$290K", ActivitiesThisWeek: 20, DealsAtRisk: 2,
		Status: RepOnTrack, QuickActions: []string{"continue", "monitor"},
	},
}

// DefaultReps returns a copy of the demo reps.
func DefaultReps() []RepPerformance {
	out := make([]RepPerformance, len(defaultReps))
	for i, rep := range defaultReps {
		rep.QuickActions = append([]string(nil), rep.QuickActions...)
		out[i] = rep
	}
	return out
}

// RepStatusView is the icon/color/label triple for a rep status.
type RepStatusView struct {
	Color       string `json:"color"`
	BgColor     string `json:"bg_color"`
	BorderColor string `json:"border_color"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
}

// RepStatusStyle maps a status to its presentation; unknown values render
// as "Unknown".
func RepStatusStyle(status RepStatus) RepStatusView {
	switch status {
	case RepNeedsCoaching:
		return RepStatusView{Color: "text-red-600", BgColor: "bg-red-50", BorderColor: "border-red-200", Icon: "🔴", Label: "Needs Coaching"}
	case RepWatch:
		return RepStatusView{Color: "text-yellow-600", BgColor: "bg-yellow-50", BorderColor: "border-yellow-200", Icon: "🟡", Label: "Watch"}
	case RepExcelling:
		return RepStatusView{Color: "text-green-600", BgColor: "bg-green-50", BorderColor: "border-green-200", Icon: "🟢", Label: "Excelling"}
	case RepOnTrack:
		return RepStatusView{Color: "text-green-600", BgColor: "bg-green-50", BorderColor: "border-green-200", Icon: "🟢", Label: "On Track"}
	default:
		return RepStatusView{Color: "text-gray-600", BgColor: "bg-gray-50", BorderColor: "border-gray-200", Icon: "⚪", Label: "Unknown"}
	}
}

// QuickActionIcon maps a quick action name to its button icon.
func QuickActionIcon(action string) string {
	switch action {
	case "call":
		return "📞"
	case "message":
		return "💬"
	case "celebrate":
		return "🏆"
	case "continue":
		return "✅"
	default:
		return "⚡"
	}
}

// QuickActionView is an icon-only button bound to a rep.
type QuickActionView struct {
	Action    string `json:"action"`
	Icon      string `json:"icon"`
	AriaLabel string `json:"aria_label"`
}

// CallToAction is a labeled button on the mobile rep card.
type CallToAction struct {
	Label   string `json:"label"`
	Action  string `json:"action"`
	Primary bool   `json:"primary"`
	CSS     string `json:"css"`
}

// RepRow is the single row transformation shared by the desktop table and
// the mobile card list.
type RepRow struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	ConversionRate     string            `json:"conversion_rate"`
	Trend              TrendStyle        `json:"trend"`
	TrendValue         string            `json:"trend_value"`
	PipelineValue      string            `json:"pipeline_value"`
	ActivitiesThisWeek int               `json:"activities_this_week"`
	DealsAtRisk        int               `json:"deals_at_risk"`
	Status             RepStatusView     `json:"status"`
	QuickActions       []QuickActionView `json:"quick_actions"`
	CallsToAction      []CallToAction    `json:"calls_to_action"`
	MobileSummary      string            `json:"mobile_summary"`
	DetailsAction      string            `json:"details_action"`
	DetailsLabel       string            `json:"details_label"`
}

// RepsColumn is a table header cell.
type RepsColumn struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Active   bool   `json:"active"`
	Href     string `json:"href,omitempty"`
}

// RepsTableOptions carries the externally owned sort selection.
type RepsTableOptions struct {
	Loading       bool
	SortBy        string
	SortDirection SortDirection
}

// RepsTableView is the render-ready reps table.
type RepsTableView struct {
	Heading       string       `json:"heading"`
	HeadingNote   string       `json:"heading_note"`
	Loading       bool         `json:"loading"`
	SortBy        string       `json:"sort_by"`
	SortDirection string       `json:"sort_direction"`
	SortArrow     string       `json:"sort_arrow"`
	Columns       []RepsColumn `json:"columns"`
	Rows          []RepRow     `json:"rows"`
	SkeletonRows  []int        `json:"skeleton_rows,omitempty"`
}

// SortArrow is the header arrow for a direction: asc shows ▼, anything else ▲.
func SortArrow(direction SortDirection) string {
	if direction == SortAsc {
		return "▼"
	}
	return "▲"
}

// BuildRepsTable converts rep records into rows. It never reorders rows;
// ordering belongs to whoever handles the sort callback.
func BuildRepsTable(reps []RepPerformance, opts RepsTableOptions) RepsTableView {
	if reps == nil {
		reps = defaultReps
	}
	if opts.SortBy == "" {
		opts.SortBy = defaultRepsSortBy
	}
	if opts.SortDirection == "" {
		opts.SortDirection = SortAsc
	}
	view := RepsTableView{
		Heading:       "Rep Performance Overview",
		HeadingNote:   "- Sortable by Conversion Rate " + SortArrow(opts.SortDirection),
		Loading:       opts.Loading,
		SortBy:        opts.SortBy,
		SortDirection: string(opts.SortDirection),
		SortArrow:     SortArrow(opts.SortDirection),
		Columns:       make([]RepsColumn, len(repsColumns)),
	}
	for i, col := range repsColumns {
		col.Active = col.Key == opts.SortBy
		view.Columns[i] = col
	}
	if opts.Loading {
		view.SkeletonRows = skeletonRows(repsSkeletonRows)
		return view
	}
	view.Rows = make([]RepRow, 0, len(reps))
	for _, rep := range reps {
		view.Rows = append(view.Rows, BuildRepRow(rep))
	}
	return view
}

// BuildRepRow converts a single rep record.
func BuildRepRow(rep RepPerformance) RepRow {
	actions := rep.QuickActions
	if len(actions) > maxQuickActions {
		actions = actions[:maxQuickActions]
	}
	quick := make([]QuickActionView, 0, len(actions))
	for _, action := range actions {
		quick = append(quick, QuickActionView{
			Action:    action,
			Icon:      QuickActionIcon(action),
			AriaLabel: action + " " + rep.Name,
		})
	}
	return RepRow{
		ID:                 rep.ID,
		Name:               rep.Name,
		ConversionRate:     formatNumber(rep.ConversionRate) + "%",
		Trend:              TrendStyleFor(rep.ConversionTrend.Direction),
		TrendValue:         rep.ConversionTrend.Value,
		PipelineValue:      rep.PipelineValue,
		ActivitiesThisWeek: rep.ActivitiesThisWeek,
		DealsAtRisk:        rep.DealsAtRisk,
		Status:             RepStatusStyle(rep.Status),
		QuickActions:       quick,
		CallsToAction:      callsToAction(rep.Status),
		MobileSummary:      fmt.Sprintf("%s pipeline, %d at risk", rep.PipelineValue, rep.DealsAtRisk),
		DetailsAction:      ActionViewDetails,
		DetailsLabel:       "View details for " + rep.Name,
	}
}

// ApplySortLinks fills each sortable column with a link that requests it,
// flipping the direction when the column is already active.
func (v *RepsTableView) ApplySortLinks(params url.Values) {
	for i, col := range v.Columns {
		if !col.Sortable {
			continue
		}
		dir := SortAsc
		if col.Active && v.SortDirection == string(SortAsc) {
			dir = SortDesc
		}
		values := url.Values{}
		for key, vals := range params {
			values[key] = append([]string(nil), vals...)
		}
		values.Set("sort", col.Key)
		values.Set("dir", string(dir))
		v.Columns[i].Href = "?" + values.Encode()
	}
}

func callsToAction(status RepStatus) []CallToAction {
	details := CallToAction{
		Label:  "View Details",
		Action: ActionViewDetails,
		CSS:    "border border-gray-300 text-gray-700 hover:bg-gray-50 focus:ring-gray-500",
	}
	switch status {
	case RepNeedsCoaching:
		return []CallToAction{
			{Label: "Coach", Action: "coach", Primary: true, CSS: "bg-blue-600 text-white hover:bg-blue-700 focus:ring-blue-500"},
			details,
		}
	case RepWatch:
		return []CallToAction{
			{Label: "Check In", Action: "check-in", Primary: true, CSS: "bg-yellow-600 text-white hover:bg-yellow-700 focus:ring-yellow-500"},
			details,
		}
	default:
		return []CallToAction{details}
	}
}

// ValidSortColumn reports whether key is a sortable reps column.
func ValidSortColumn(key string) bool {
	for _, col := range repsColumns {
		if col.Key == key {
			return col.Sortable
		}
	}
	return false
}

// SortReps returns a sorted copy of reps. Unknown columns keep input order.
func SortReps(reps []RepPerformance, column string, direction SortDirection) []RepPerformance {
	out := append([]RepPerformance(nil), reps...)
	var less func(a, b RepPerformance) bool
	switch column {
	case SortByName:
		less = func(a, b RepPerformance) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByConversionRate:
		less = func(a, b RepPerformance) bool { return a.ConversionRate < b.ConversionRate }
	case SortByPipelineValue:
		less = func(a, b RepPerformance) bool { return ParseMoney(a.PipelineValue) < ParseMoney(b.PipelineValue) }
	case SortByActivitiesThisWeek:
		less = func(a, b RepPerformance) bool { return a.ActivitiesThisWeek < b.ActivitiesThisWeek }
	case SortByDealsAtRisk:
		less = func(a, b RepPerformance) bool { return a.DealsAtRisk < b.DealsAtRisk }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if direction == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// ParseMoney reads display amounts such as "$185K" or "$2.4M". Unparseable
// input yields 0.
func ParseMoney(value string) float64 {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	multiplier := 1.0
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1e3
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1e6
		s = s[:len(s)-1]
	case 'B', 'b':
		multiplier = 1e9
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n * multiplier
}

// FindRep looks up a rep by id.
func FindRep(reps []RepPerformance, id string) (RepPerformance, bool) {
	for _, rep := range reps {
		if rep.ID == id {
			return rep, true
		}
	}
	return RepPerformance{}, false
}
