package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// OpenActivityInput identifies an activated feed row.
type OpenActivityInput struct {
	Viewer     salesboard.ViewerContext `json:"-"`
	ActivityID string                   `json:"activity_id"`
}

type activityService interface {
	OpenActivity(ctx context.Context, viewer salesboard.ViewerContext, id string) (salesboard.ActionEvent, error)
}

// OpenActivityCommand forwards activity activations to the service.
type OpenActivityCommand struct {
	service   activityService
	telemetry Telemetry
}

// NewOpenActivityCommand creates the command.
func NewOpenActivityCommand(service activityService, telemetry Telemetry) *OpenActivityCommand {
	return &OpenActivityCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OpenActivityInput] = (*OpenActivityCommand)(nil)

// Execute records the activation.
func (c *OpenActivityCommand) Execute(ctx context.Context, msg OpenActivityInput) error {
	if c.service == nil {
		return goerrors.New("open activity command requires service", goerrors.CategoryInternal)
	}
	event, err := c.service.OpenActivity(ctx, msg.Viewer, msg.ActivityID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesboard.command.open_activity", map[string]any{
		"event_id":    event.ID,
		"activity_id": msg.ActivityID,
	})
	return nil
}
