package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

type repsService interface {
	Reps(ctx context.Context, query salesboard.DashboardQuery) (salesboard.RepsTableView, error)
}

// RepsQuery resolves the reps table for a sort selection.
type RepsQuery struct {
	service repsService
}

// NewRepsQuery builds the query.
func NewRepsQuery(service repsService) *RepsQuery {
	return &RepsQuery{service: service}
}

var _ gocommand.Querier[salesboard.DashboardQuery, salesboard.RepsTableView] = (*RepsQuery)(nil)

// Query returns the reps table view.
func (q *RepsQuery) Query(ctx context.Context, query salesboard.DashboardQuery) (salesboard.RepsTableView, error) {
	if q.service == nil {
		return salesboard.RepsTableView{}, goerrors.New("reps query requires service", goerrors.CategoryInternal)
	}
	return q.service.Reps(ctx, query)
}
