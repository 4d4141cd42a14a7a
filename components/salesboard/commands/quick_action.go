package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// QuickActionInput is the payload of a rep row quick action or mobile call
// to action.
type QuickActionInput struct {
	Viewer salesboard.ViewerContext `json:"-"`
	RepID  string                   `json:"rep_id"`
	Action string                   `json:"action"`
}

type quickActionService interface {
	RecordQuickAction(ctx context.Context, req salesboard.QuickActionRequest) (salesboard.ActionEvent, error)
}

// QuickActionCommand forwards rep quick actions to the service.
type QuickActionCommand struct {
	service   quickActionService
	telemetry Telemetry
}

// NewQuickActionCommand creates the command.
func NewQuickActionCommand(service quickActionService, telemetry Telemetry) *QuickActionCommand {
	return &QuickActionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[QuickActionInput] = (*QuickActionCommand)(nil)

// Execute records the action.
func (c *QuickActionCommand) Execute(ctx context.Context, msg QuickActionInput) error {
	if c.service == nil {
		return goerrors.New("quick action command requires service", goerrors.CategoryInternal)
	}
	event, err := c.service.RecordQuickAction(ctx, salesboard.QuickActionRequest{
		Viewer: msg.Viewer,
		RepID:  msg.RepID,
		Action: msg.Action,
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesboard.command.quick_action", map[string]any{
		"event_id": event.ID,
		"rep_id":   msg.RepID,
		"action":   msg.Action,
	})
	return nil
}
