package salesboard

import "strings"

const activitySkeletonRows = 6

var defaultActivities = []Activity{
	{
		ID: "activity-1", Type: ActivityDealClosed, Actor: "Lisa Wong",
		Description: "closed $45K deal with TechCorp", Timestamp: "2 mins ago",
		Details: &ActivityDetails{DealValue: "$45K", Company: "TechCorp"},
	},
	{
		ID: "activity-2", Type: ActivityMeetingScheduled, Actor: "Tom Rodriguez",
		Description: "scheduled demo with MegaRetail", Timestamp: "15 mins ago",
		Details: &ActivityDetails{Company: "MegaRetail"},
	},
	{
		ID: "activity-3", Type: ActivityDealAtRisk, Actor: "Sarah Chen",
		Description: `Acme Corp deal moved to "At Risk"`, Timestamp: "1 hour ago",
		Details: &ActivityDetails{Company: "Acme Corp", DealName: "Acme Corp deal"},
	},
	{
		ID: "activity-4", Type: ActivityProposalSent, Actor: "Mike Johnson",
		Description: "sent proposal to StartupXYZ", Timestamp: "2 hours ago",
		Details: &ActivityDetails{Company: "StartupXYZ"},
	},
	{
		ID: "activity-5", Type: ActivitySystemReminder, Actor: "System",
		Description: "Weekly 1:1s scheduled for tomorrow", Timestamp: "3 hours ago",
	},
	{
		ID: "activity-6", Type: ActivitySystemUpdate, Actor: "Jennifer Park",
		Description: "updated lead scoring algorithm", Timestamp: "4 hours ago",
	},
}

// DefaultActivities returns a copy of the demo activity stream.
func DefaultActivities() []Activity {
	out := make([]Activity, len(defaultActivities))
	for i, item := range defaultActivities {
		if item.Details != nil {
			details := *item.Details
			item.Details = &details
		}
		out[i] = item
	}
	return out
}

// ActivityStyleView is the icon and color classes of an activity type.
type ActivityStyleView struct {
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	BgColor     string `json:"bg_color"`
	BorderColor string `json:"border_color"`
}

// CSS joins the color classes.
func (s ActivityStyleView) CSS() string {
	return strings.Join([]string{s.Color, s.BgColor, s.BorderColor}, " ")
}

func activityColors(color string) ActivityStyleView {
	return ActivityStyleView{
		Color:       "text-" + color + "-600",
		BgColor:     "bg-" + color + "-50",
		BorderColor: "border-" + color + "-200",
	}
}

// ActivityStyle maps an activity type to its icon and colors. Unknown types
// get the clipboard icon in gray.
func ActivityStyle(kind ActivityType) ActivityStyleView {
	var style ActivityStyleView
	switch kind {
	case ActivityDealClosed:
		style = activityColors("green")
		style.Icon = "🎉"
	case ActivityMeetingScheduled:
		style = activityColors("blue")
		style.Icon = "📞"
	case ActivityDealAtRisk:
		style = activityColors("red")
		style.Icon = "⚠️"
	case ActivityProposalSent:
		style = activityColors("purple")
		style.Icon = "📧"
	case ActivitySystemReminder:
		style = activityColors("yellow")
		style.Icon = "📅"
	case ActivitySystemUpdate:
		style = activityColors("gray")
		style.Icon = "🔄"
	default:
		style = activityColors("gray")
		style.Icon = "📋"
	}
	return style
}

// ActivityItemView is a render-ready feed row.
type ActivityItemView struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Actor       string            `json:"actor"`
	Description string            `json:"description"`
	Timestamp   string            `json:"timestamp"`
	DealValue   string            `json:"deal_value,omitempty"`
	Company     string            `json:"company,omitempty"`
	Style       ActivityStyleView `json:"style"`
	CSS         string            `json:"css"`
	AriaLabel   string            `json:"aria_label"`
}

// EmptyStateView is shown in place of the list when there are no items.
type EmptyStateView struct {
	Icon    string `json:"icon"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// ActivityFeedView is the render-ready activity feed.
type ActivityFeedView struct {
	Loading      bool               `json:"loading"`
	Items        []ActivityItemView `json:"items"`
	Empty        bool               `json:"empty"`
	EmptyState   *EmptyStateView    `json:"empty_state,omitempty"`
	SkeletonRows []int              `json:"skeleton_rows,omitempty"`
}

// BuildActivityFeed converts activities into feed rows. A nil slice selects
// the demo stream; an empty non-nil slice yields the empty state.
func BuildActivityFeed(items []Activity, loading bool) ActivityFeedView {
	if items == nil {
		items = defaultActivities
	}
	view := ActivityFeedView{Loading: loading}
	if loading {
		view.SkeletonRows = skeletonRows(activitySkeletonRows)
		return view
	}
	if len(items) == 0 {
		view.Empty = true
		view.EmptyState = &EmptyStateView{
			Icon:    "📭",
			Message: "No recent activities",
			Action:  "Refresh feed",
		}
		return view
	}
	view.Items = make([]ActivityItemView, 0, len(items))
	for _, item := range items {
		view.Items = append(view.Items, buildActivityItem(item))
	}
	return view
}

func buildActivityItem(item Activity) ActivityItemView {
	style := ActivityStyle(item.Type)
	out := ActivityItemView{
		ID:          item.ID,
		Type:        string(item.Type),
		Actor:       item.Actor,
		Description: item.Description,
		Timestamp:   item.Timestamp,
		Style:       style,
		CSS:         style.CSS(),
		AriaLabel:   item.Actor + " " + item.Description + " " + item.Timestamp,
	}
	if item.Details != nil {
		out.DealValue = item.Details.DealValue
		out.Company = item.Details.Company
	}
	return out
}

// FindActivity looks up an activity by id.
func FindActivity(items []Activity, id string) (Activity, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Activity{}, false
}
