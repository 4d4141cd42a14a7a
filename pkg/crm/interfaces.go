package crm

import (
	"context"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// MetricsClient fetches KPI cards and the pipeline funnel.
type MetricsClient interface {
	FetchKPIs(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.KPICard, error)
	FetchPipeline(ctx context.Context, query salesboard.DashboardQuery) (*salesboard.PipelineData, error)
}

// TeamClient fetches rep performance and the activity stream.
type TeamClient interface {
	FetchReps(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.RepPerformance, error)
	FetchActivities(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.Activity, error)
}

// ProfileClient fetches the signed in user and their notifications.
type ProfileClient interface {
	FetchHeader(ctx context.Context, viewer salesboard.ViewerContext) (salesboard.HeaderData, error)
}

// Client is a convenience union for CRMs that serve every section.
type Client interface {
	MetricsClient
	TeamClient
	ProfileClient
}
