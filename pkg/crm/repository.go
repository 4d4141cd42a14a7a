package crm

import (
	"context"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// NewRepository adapts a CRM client into a salesboard repository. Sections
// the CRM leaves out render as empty instead of falling back to demo data,
// and rep sorting is applied locally since not every CRM honors it.
func NewRepository(client Client) salesboard.Repository {
	return &repository{client: client}
}

type repository struct {
	client Client
}

func (r *repository) FetchKPIs(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.KPICard, error) {
	cards, err := r.client.FetchKPIs(ctx, query)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []salesboard.KPICard{}
	}
	return cards, nil
}

func (r *repository) FetchPipeline(ctx context.Context, query salesboard.DashboardQuery) (*salesboard.PipelineData, error) {
	pipeline, err := r.client.FetchPipeline(ctx, query)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		pipeline = &salesboard.PipelineData{Stages: []salesboard.PipelineStage{}}
	}
	return pipeline, nil
}

func (r *repository) FetchReps(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.RepPerformance, error) {
	reps, err := r.client.FetchReps(ctx, query)
	if err != nil {
		return nil, err
	}
	if reps == nil {
		return []salesboard.RepPerformance{}, nil
	}
	if query.SortBy != "" {
		reps = salesboard.SortReps(reps, query.SortBy, query.SortDirection)
	}
	return reps, nil
}

func (r *repository) FetchActivities(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.Activity, error) {
	activities, err := r.client.FetchActivities(ctx, query)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []salesboard.Activity{}
	}
	return activities, nil
}

func (r *repository) FetchHeader(ctx context.Context, viewer salesboard.ViewerContext) (salesboard.HeaderData, error) {
	return r.client.FetchHeader(ctx, viewer)
}
