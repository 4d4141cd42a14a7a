package httpapi

import (
	"context"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
	"github.com/goliatone/go-salesboard/components/salesboard/commands"
	"github.com/goliatone/go-salesboard/components/salesboard/queries"
)

// Executor is the transport agnostic surface the HTTP adapters call into.
type Executor interface {
	QuickAction(ctx context.Context, input commands.QuickActionInput) error
	OpenActivity(ctx context.Context, input commands.OpenActivityInput) error
	SelectKPI(ctx context.Context, input commands.SelectKPIInput) error
	SelectStage(ctx context.Context, input commands.SelectStageInput) error
	Reps(ctx context.Context, query salesboard.DashboardQuery) (salesboard.RepsTableView, error)
}

// CommandExecutor adapts commands and queries to the Executor interface.
type CommandExecutor struct {
	QuickActionCommander  gocommand.Commander[commands.QuickActionInput]
	OpenActivityCommander gocommand.Commander[commands.OpenActivityInput]
	SelectKPICommander    gocommand.Commander[commands.SelectKPIInput]
	SelectStageCommander  gocommand.Commander[commands.SelectStageInput]
	RepsQuerier           gocommand.Querier[salesboard.DashboardQuery, salesboard.RepsTableView]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) QuickAction(ctx context.Context, input commands.QuickActionInput) error {
	if e.QuickActionCommander == nil {
		return notConfigured("quick action")
	}
	return e.QuickActionCommander.Execute(ctx, input)
}

func (e *CommandExecutor) OpenActivity(ctx context.Context, input commands.OpenActivityInput) error {
	if e.OpenActivityCommander == nil {
		return notConfigured("open activity")
	}
	return e.OpenActivityCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SelectKPI(ctx context.Context, input commands.SelectKPIInput) error {
	if e.SelectKPICommander == nil {
		return notConfigured("select kpi")
	}
	return e.SelectKPICommander.Execute(ctx, input)
}

func (e *CommandExecutor) SelectStage(ctx context.Context, input commands.SelectStageInput) error {
	if e.SelectStageCommander == nil {
		return notConfigured("select stage")
	}
	return e.SelectStageCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Reps(ctx context.Context, query salesboard.DashboardQuery) (salesboard.RepsTableView, error) {
	if e.RepsQuerier == nil {
		return salesboard.RepsTableView{}, notConfigured("reps")
	}
	return e.RepsQuerier.Query(ctx, query)
}

// NewServiceExecutor wires every command and query against a single service.
func NewServiceExecutor(service *salesboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		QuickActionCommander:  commands.NewQuickActionCommand(service, telemetry),
		OpenActivityCommander: commands.NewOpenActivityCommand(service, telemetry),
		SelectKPICommander:    commands.NewSelectKPICommand(service, telemetry),
		SelectStageCommander:  commands.NewSelectStageCommand(service, telemetry),
		RepsQuerier:           queries.NewRepsQuery(service),
	}
}

func notConfigured(name string) error {
	return goerrors.New(name+" handler is not configured", goerrors.CategoryInternal).
		WithCode(http.StatusNotImplemented).
		WithTextCode("NOT_CONFIGURED")
}
