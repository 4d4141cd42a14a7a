package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

type dashboardService interface {
	Dashboard(ctx context.Context, viewer salesboard.ViewerContext, query salesboard.DashboardQuery, state salesboard.ViewState) (salesboard.DashboardView, error)
}

// DashboardQuery resolves the full page view.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[salesboard.PageRequest, salesboard.DashboardView] = (*DashboardQuery)(nil)

// Query loads every section for the request.
func (q *DashboardQuery) Query(ctx context.Context, req salesboard.PageRequest) (salesboard.DashboardView, error) {
	if q.service == nil {
		return salesboard.DashboardView{}, goerrors.New("dashboard query requires service", goerrors.CategoryInternal)
	}
	return q.service.Dashboard(ctx, req.Viewer, req.Query, req.State)
}
