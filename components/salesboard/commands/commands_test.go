package commands

import (
	"context"
	"errors"
	"testing"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

type stubService struct {
	quick  []salesboard.QuickActionRequest
	opened []string
	kpis   []string
	stages []string
	err    error
}

func (s *stubService) RecordQuickAction(_ context.Context, req salesboard.QuickActionRequest) (salesboard.ActionEvent, error) {
	s.quick = append(s.quick, req)
	return salesboard.ActionEvent{ID: "evt-1", Kind: salesboard.ActionQuickAction, TargetID: req.RepID, Action: req.Action}, s.err
}

func (s *stubService) OpenActivity(_ context.Context, _ salesboard.ViewerContext, id string) (salesboard.ActionEvent, error) {
	s.opened = append(s.opened, id)
	return salesboard.ActionEvent{ID: "evt-2", Kind: salesboard.ActionOpenActivity, TargetID: id}, s.err
}

func (s *stubService) SelectKPI(_ context.Context, _ salesboard.ViewerContext, id string) (salesboard.ActionEvent, error) {
	s.kpis = append(s.kpis, id)
	return salesboard.ActionEvent{ID: "evt-3", Kind: salesboard.ActionSelectKPI, TargetID: id}, s.err
}

func (s *stubService) SelectStage(_ context.Context, _ salesboard.ViewerContext, stage string) (salesboard.ActionEvent, error) {
	s.stages = append(s.stages, stage)
	return salesboard.ActionEvent{ID: "evt-4", Kind: salesboard.ActionSelectStage, TargetID: stage}, s.err
}

type stubTelemetry struct {
	events []string
	last   map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.events = append(s.events, event)
	s.last = payload
}

func TestQuickActionCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewQuickActionCommand(service, telemetry)
	err := cmd.Execute(context.Background(), QuickActionInput{
		Viewer: salesboard.ViewerContext{UserID: "manager-1"},
		RepID:  "sarah-chen",
		Action: "call",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.quick) != 1 {
		t.Fatalf("expected one quick action, got %d", len(service.quick))
	}
	if got := service.quick[0]; got.RepID != "sarah-chen" || got.Action != "call" || got.Viewer.UserID != "manager-1" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "salesboard.command.quick_action" {
		t.Fatalf("expected quick action telemetry, got %v", telemetry.events)
	}
	if telemetry.last["event_id"] != "evt-1" {
		t.Fatalf("expected event id in telemetry payload, got %v", telemetry.last)
	}
}

func TestQuickActionCommandPropagatesErrors(t *testing.T) {
	service := &stubService{err: errors.New("boom")}
	telemetry := &stubTelemetry{}
	cmd := NewQuickActionCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), QuickActionInput{RepID: "x", Action: "call"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(telemetry.events) != 0 {
		t.Fatalf("expected no telemetry on failure")
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewQuickActionCommand(nil, nil).Execute(ctx, QuickActionInput{}); err == nil {
		t.Fatalf("expected quick action error")
	}
	if err := NewOpenActivityCommand(nil, nil).Execute(ctx, OpenActivityInput{}); err == nil {
		t.Fatalf("expected open activity error")
	}
	if err := NewSelectKPICommand(nil, nil).Execute(ctx, SelectKPIInput{}); err == nil {
		t.Fatalf("expected select kpi error")
	}
	if err := NewSelectStageCommand(nil, nil).Execute(ctx, SelectStageInput{}); err == nil {
		t.Fatalf("expected select stage error")
	}
}

func TestOpenActivityCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewOpenActivityCommand(service, nil)
	if err := cmd.Execute(context.Background(), OpenActivityInput{ActivityID: "activity-3"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.opened) != 1 || service.opened[0] != "activity-3" {
		t.Fatalf("expected activity-3 to open, got %v", service.opened)
	}
}

func TestSelectionCommands(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	if err := NewSelectKPICommand(service, telemetry).Execute(context.Background(), SelectKPIInput{KPIID: "pipeline-value"}); err != nil {
		t.Fatalf("select kpi returned error: %v", err)
	}
	if err := NewSelectStageCommand(service, telemetry).Execute(context.Background(), SelectStageInput{Stage: "Qualified"}); err != nil {
		t.Fatalf("select stage returned error: %v", err)
	}
	if len(service.kpis) != 1 || service.kpis[0] != "pipeline-value" {
		t.Fatalf("unexpected kpi calls %v", service.kpis)
	}
	if len(service.stages) != 1 || service.stages[0] != "Qualified" {
		t.Fatalf("unexpected stage calls %v", service.stages)
	}
	if len(telemetry.events) != 2 {
		t.Fatalf("expected two telemetry events, got %v", telemetry.events)
	}
}
