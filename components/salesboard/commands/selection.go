package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// SelectKPIInput identifies an activated KPI card.
type SelectKPIInput struct {
	Viewer salesboard.ViewerContext `json:"-"`
	KPIID  string                   `json:"kpi_id"`
}

// SelectStageInput identifies an activated funnel bar.
type SelectStageInput struct {
	Viewer salesboard.ViewerContext `json:"-"`
	Stage  string                   `json:"stage"`
}

type kpiService interface {
	SelectKPI(ctx context.Context, viewer salesboard.ViewerContext, id string) (salesboard.ActionEvent, error)
}

type stageService interface {
	SelectStage(ctx context.Context, viewer salesboard.ViewerContext, stage string) (salesboard.ActionEvent, error)
}

// SelectKPICommand records KPI card activations.
type SelectKPICommand struct {
	service   kpiService
	telemetry Telemetry
}

// NewSelectKPICommand creates the command.
func NewSelectKPICommand(service kpiService, telemetry Telemetry) *SelectKPICommand {
	return &SelectKPICommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectKPIInput] = (*SelectKPICommand)(nil)

// Execute records the selection.
func (c *SelectKPICommand) Execute(ctx context.Context, msg SelectKPIInput) error {
	if c.service == nil {
		return goerrors.New("select kpi command requires service", goerrors.CategoryInternal)
	}
	event, err := c.service.SelectKPI(ctx, msg.Viewer, msg.KPIID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesboard.command.select_kpi", map[string]any{
		"event_id": event.ID,
		"kpi_id":   msg.KPIID,
	})
	return nil
}

// SelectStageCommand records funnel stage activations.
type SelectStageCommand struct {
	service   stageService
	telemetry Telemetry
}

// NewSelectStageCommand creates the command.
func NewSelectStageCommand(service stageService, telemetry Telemetry) *SelectStageCommand {
	return &SelectStageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectStageInput] = (*SelectStageCommand)(nil)

// Execute records the selection.
func (c *SelectStageCommand) Execute(ctx context.Context, msg SelectStageInput) error {
	if c.service == nil {
		return goerrors.New("select stage command requires service", goerrors.CategoryInternal)
	}
	event, err := c.service.SelectStage(ctx, msg.Viewer, msg.Stage)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesboard.command.select_stage", map[string]any{
		"event_id": event.ID,
		"stage":    msg.Stage,
	})
	return nil
}
