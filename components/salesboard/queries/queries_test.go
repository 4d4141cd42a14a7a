package queries

import (
	"context"
	"testing"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

type stubDashboardService struct {
	calls int
	last  salesboard.DashboardQuery
}

func (s *stubDashboardService) Dashboard(_ context.Context, _ salesboard.ViewerContext, query salesboard.DashboardQuery, _ salesboard.ViewState) (salesboard.DashboardView, error) {
	s.calls++
	s.last = query
	return salesboard.DashboardView{}, nil
}

type stubRepsService struct {
	calls int
}

func (s *stubRepsService) Reps(context.Context, salesboard.DashboardQuery) (salesboard.RepsTableView, error) {
	s.calls++
	return salesboard.RepsTableView{SortBy: salesboard.SortByConversionRate}, nil
}

func TestDashboardQuery(t *testing.T) {
	service := &stubDashboardService{}
	query := NewDashboardQuery(service)
	_, err := query.Query(context.Background(), salesboard.PageRequest{Query: salesboard.DashboardQuery{Rep: "sarah-chen"}})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if service.last.Rep != "sarah-chen" {
		t.Fatalf("expected query propagation, got %+v", service.last)
	}
}

func TestDashboardQueryAgainstService(t *testing.T) {
	query := NewDashboardQuery(salesboard.NewService(salesboard.Options{}))
	view, err := query.Query(context.Background(), salesboard.PageRequest{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(view.KPIs.Cards) != 7 {
		t.Fatalf("expected 7 KPI cards, got %d", len(view.KPIs.Cards))
	}
}

func TestRepsQuery(t *testing.T) {
	service := &stubRepsService{}
	query := NewRepsQuery(service)
	view, err := query.Query(context.Background(), salesboard.DashboardQuery{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || view.SortBy != salesboard.SortByConversionRate {
		t.Fatalf("unexpected result %+v after %d calls", view, service.calls)
	}
}

func TestQueriesRequireService(t *testing.T) {
	if _, err := NewDashboardQuery(nil).Query(context.Background(), salesboard.PageRequest{}); err == nil {
		t.Fatalf("expected dashboard query error")
	}
	if _, err := NewRepsQuery(nil).Query(context.Background(), salesboard.DashboardQuery{}); err == nil {
		t.Fatalf("expected reps query error")
	}
}
