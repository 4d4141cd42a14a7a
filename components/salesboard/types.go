package salesboard

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
)

// KPIStatus classifies a KPI card and drives its border/background pair.
type KPIStatus string

const (
	KPIStatusPositive KPIStatus = "positive"
	KPIStatusNegative KPIStatus = "negative"
	KPIStatusWarning  KPIStatus = "warning"
	KPIStatusNeutral  KPIStatus = "neutral"
)

// TrendDirection describes where a metric moved compared with its period.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// RepStatus is the coaching classification of a sales representative.
type RepStatus string

const (
	RepNeedsCoaching RepStatus = "needs-coaching"
	RepWatch         RepStatus = "watch"
	RepExcelling     RepStatus = "excelling"
	RepOnTrack       RepStatus = "on-track"
)

// ActivityType tags an activity feed event.
type ActivityType string

const (
	ActivityDealClosed       ActivityType = "deal-closed"
	ActivityMeetingScheduled ActivityType = "meeting-scheduled"
	ActivityDealAtRisk       ActivityType = "deal-at-risk"
	ActivityProposalSent     ActivityType = "proposal-sent"
	ActivitySystemReminder   ActivityType = "system-reminder"
	ActivitySystemUpdate     ActivityType = "system-update"
)

// NotificationType is the severity of a header notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// SortDirection controls the arrow shown in the reps table header.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DisplayValue is a pre-formatted metric value. Upstream payloads send it as
// either a JSON string ("$2.4M") or a number (147).
type DisplayValue string

// UnmarshalJSON accepts strings and numbers.
func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = DisplayValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = DisplayValue(n.String())
	return nil
}

// String returns the display text.
func (v DisplayValue) String() string { return string(v) }

// Trend is a direction plus a pre-formatted delta and comparison period.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Value     string         `json:"value"`
	Period    string         `json:"period,omitempty"`
}

// KPICard is a single metric tile.
type KPICard struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Value  DisplayValue `json:"value"`
	Trend  Trend        `json:"trend"`
	Status KPIStatus    `json:"status"`
}

// PipelineStage is one step of the conversion funnel. Percentage is relative
// to the first stage and is rendered as-is.
type PipelineStage struct {
	Stage      string  `json:"stage"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Trend      Trend   `json:"trend"`
}

// PipelineData groups the funnel stages with their heading.
type PipelineData struct {
	Title    string          `json:"title,omitempty"`
	Subtitle string          `json:"subtitle,omitempty"`
	Stages   []PipelineStage `json:"stages"`
}

// RepPerformance holds the per-representative metrics row.
type RepPerformance struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ConversionRate     float64   `json:"conversionRate"`
	ConversionTrend    Trend     `json:"conversionTrend"`
	PipelineValue      string    `json:"pipelineValue"`
	ActivitiesThisWeek int       `json:"activitiesThisWeek"`
	DealsAtRisk        int       `json:"dealsAtRisk"`
	Status             RepStatus `json:"status"`
	QuickActions       []string  `json:"quickActions"`
}

// ActivityDetails carries optional deal context for an activity.
type ActivityDetails struct {
	DealValue string `json:"dealValue,omitempty"`
	Company   string `json:"company,omitempty"`
	DealName  string `json:"dealName,omitempty"`
}

// Activity is a single feed entry. Timestamp is a display string such as
// "15 mins ago" and is never parsed.
type Activity struct {
	ID          string           `json:"id"`
	Type        ActivityType     `json:"type"`
	Actor       string           `json:"actor"`
	Description string           `json:"description"`
	Timestamp   string           `json:"timestamp"`
	Details     *ActivityDetails `json:"details,omitempty"`
}

// Notification is a header notification entry. Unread, when set, overrides
// the timestamp-based unread heuristic.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	Type      NotificationType `json:"type"`
	Unread    *bool            `json:"unread,omitempty"`
}

// User is the signed-in manager shown in the header.
type User struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// HeaderData is the header-level payload.
type HeaderData struct {
	User          *User          `json:"user,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
	LastUpdated   string         `json:"lastUpdated,omitempty"`
}

// ViewerContext captures the active user/locale information needed to render dashboards.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// DashboardQuery carries the global filters and the reps sort selection for
// a single request. None of it is persisted.
type DashboardQuery struct {
	Period        string        `json:"period,omitempty"`
	Territory     string        `json:"territory,omitempty"`
	Rep           string        `json:"rep,omitempty"`
	SortBy        string        `json:"sortBy,omitempty"`
	SortDirection SortDirection `json:"sortDirection,omitempty"`
}

// KPIRepository loads KPI cards for the grid.
type KPIRepository interface {
	FetchKPIs(ctx context.Context, query DashboardQuery) ([]KPICard, error)
}

// PipelineRepository loads funnel stages.
type PipelineRepository interface {
	FetchPipeline(ctx context.Context, query DashboardQuery) (*PipelineData, error)
}

// RepsRepository loads rep rows, already sorted by the query selection.
type RepsRepository interface {
	FetchReps(ctx context.Context, query DashboardQuery) ([]RepPerformance, error)
}

// ActivityRepository loads the activity feed.
type ActivityRepository interface {
	FetchActivities(ctx context.Context, query DashboardQuery) ([]Activity, error)
}

// HeaderRepository loads the user, notifications and update stamp.
type HeaderRepository interface {
	FetchHeader(ctx context.Context, viewer ViewerContext) (HeaderData, error)
}

// Repository is the full data seam behind the dashboard.
type Repository interface {
	KPIRepository
	PipelineRepository
	RepsRepository
	ActivityRepository
	HeaderRepository
}

// ActionHook receives UI actions (quick actions, activity opens, KPI and
// stage selections) so applications can route them elsewhere.
type ActionHook interface {
	ActionTriggered(ctx context.Context, event ActionEvent) error
}

// ActionKind names the UI affordance that produced an ActionEvent.
type ActionKind string

const (
	ActionQuickAction  ActionKind = "quick_action"
	ActionOpenActivity ActionKind = "open_activity"
	ActionSelectKPI    ActionKind = "select_kpi"
	ActionSelectStage  ActionKind = "select_stage"
)

// ActionEvent describes a UI action forwarded to hooks.
type ActionEvent struct {
	ID       string     `json:"id"`
	Kind     ActionKind `json:"kind"`
	TargetID string     `json:"target_id"`
	Action   string     `json:"action,omitempty"`
	UserID   string     `json:"user_id,omitempty"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
