package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	core "github.com/goliatone/go-salesboard/components/salesboard"
	"github.com/goliatone/go-salesboard/components/salesboard/gorouter"
	"github.com/goliatone/go-salesboard/components/salesboard/httpapi"
	"github.com/goliatone/go-salesboard/pkg/crm"
	"github.com/goliatone/go-salesboard/pkg/salesboard"
)

type cli struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"SALESBOARD_LOG_LEVEL" help:"Minimum log level."`

	Serve    serveCmd    `cmd:"" help:"Serve the sales dashboard over HTTP."`
	Render   renderCmd   `cmd:"" help:"Render the dashboard once to stdout."`
	Tokens   tokensCmd   `cmd:"" help:"Print the design tokens."`
	Validate validateCmd `cmd:"" help:"Validate a dataset document."`
}

type sourceFlags struct {
	Data   string `type:"path" env:"SALESBOARD_DATA" help:"Dataset YAML/JSON file. Demo data is used when empty."`
	CRMURL string `name:"crm-url" env:"SALESBOARD_CRM_URL" help:"Base URL of a CRM API. Takes precedence over --data."`
	CRMKey string `name:"crm-key" env:"SALESBOARD_CRM_KEY" help:"Bearer token for the CRM API."`
}

type queryFlags struct {
	Period    string `help:"Period filter value."`
	Territory string `help:"Territory filter value."`
	Rep       string `help:"Restrict to one rep id."`
	Sort      string `help:"Reps table sort column."`
	Dir       string `help:"Reps table sort direction (asc or desc)."`
	Open      string `help:"Comma separated panels to render open (search,notifications,user,menu)."`
}

func (q queryFlags) request() core.PageRequest {
	return core.PageRequest{
		Query: core.DashboardQuery{
			Period:        q.Period,
			Territory:     q.Territory,
			Rep:           q.Rep,
			SortBy:        q.Sort,
			SortDirection: core.SortDirection(q.Dir),
		},
		State: core.ParseViewState(q.Open),
	}
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("salesboard"),
		kong.Description("Sales manager dashboard server and tooling."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	ctx.Bind(newLogger(app.LogLevel, os.Stderr))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func newLogger(level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "salesboard").
		Logger()
}

func (s sourceFlags) repository() (core.Repository, error) {
	if s.CRMURL != "" {
		client, err := crm.NewHTTPClient(crm.HTTPConfig{BaseURL: s.CRMURL, APIKey: s.CRMKey})
		if err != nil {
			return nil, err
		}
		return crm.NewRepository(client), nil
	}
	if s.Data != "" {
		return core.NewFileRepository(s.Data)
	}
	return core.NewStaticRepository(nil), nil
}

type serveCmd struct {
	sourceFlags `embed:""`
	Addr     string `default:":8080" env:"SALESBOARD_ADDR" help:"Listen address."`
	BasePath string `name:"base-path" default:"/sales" env:"SALESBOARD_BASE_PATH" help:"Route prefix."`
	Theme    string `default:"westeros" help:"go-echarts theme for the funnel chart."`
	NoChart  bool   `name:"no-chart" help:"Disable the funnel chart."`
}

func (cmd *serveCmd) Run(_ context.Context, logger zerolog.Logger) error {
	repo, err := cmd.repository()
	if err != nil {
		return err
	}
	telemetry := core.NewLoggerTelemetry(logger)
	opts := salesboard.Options{
		Repository: repo,
		Telemetry:  telemetry,
		ActionHook: core.ActionHookFunc(func(_ context.Context, event core.ActionEvent) error {
			logger.Info().
				Str("event_id", event.ID).
				Str("kind", string(event.Kind)).
				Str("target", event.TargetID).
				Str("action", event.Action).
				Msg("dashboard action")
			return nil
		}),
	}
	if !cmd.NoChart {
		opts.Charts = core.NewFunnelChartRenderer(core.WithFunnelChartTheme(cmd.Theme))
	}
	service := salesboard.NewService(opts)

	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return err
	}
	base := strings.TrimRight(cmd.BasePath, "/")
	controller := core.NewController(core.ControllerOptions{
		Service:       service,
		Renderer:      renderer,
		StylesheetURL: base + "/dashboard/tokens.css",
		ActionsURL:    base + "/dashboard",
	})

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        httpapi.NewServiceExecutor(service, telemetry),
		BasePath:   base,
	}); err != nil {
		return err
	}

	logger.Info().
		Str("addr", cmd.Addr).
		Str("dashboard", base+"/dashboard").
		Msg("salesboard routes ready")
	return server.Serve(cmd.Addr)
}

type renderCmd struct {
	sourceFlags `embed:""`
	queryFlags  `embed:""`
	Format string `default:"html" enum:"html,json,yaml" help:"Output format."`
}

func (cmd *renderCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	return cmd.render(ctx, logger, os.Stdout)
}

func (cmd *renderCmd) render(ctx context.Context, logger zerolog.Logger, out io.Writer) error {
	repo, err := cmd.repository()
	if err != nil {
		return err
	}
	service := salesboard.NewService(salesboard.Options{
		Repository: repo,
		Telemetry:  core.NewLoggerTelemetry(logger).WithLevel(zerolog.DebugLevel),
	})
	req := cmd.request()
	switch cmd.Format {
	case "html":
		renderer, err := core.NewTemplateRenderer()
		if err != nil {
			return err
		}
		controller := core.NewController(core.ControllerOptions{Service: service, Renderer: renderer})
		return controller.RenderTemplate(ctx, req, out)
	default:
		view, err := service.Dashboard(ctx, req.Viewer, req.Query, req.State)
		if err != nil {
			return err
		}
		return writeStructured(out, cmd.Format, view)
	}
}

type tokensCmd struct {
	Format string `default:"css" enum:"css,json,yaml" help:"Output format."`
}

func (cmd *tokensCmd) Run(_ context.Context, _ zerolog.Logger) error {
	tokens := salesboard.DefaultTokens()
	if cmd.Format == "css" {
		_, err := io.WriteString(os.Stdout, tokens.Stylesheet())
		return err
	}
	return writeStructured(os.Stdout, cmd.Format, tokens)
}

type validateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Dataset file to validate."`
}

func (cmd *validateCmd) Run(_ context.Context, logger zerolog.Logger) error {
	dataset, err := core.ReadDataset(cmd.Path)
	if err != nil {
		return err
	}
	logger.Info().
		Str("path", cmd.Path).
		Int("kpis", len(dataset.KPIs)).
		Int("reps", len(dataset.Reps)).
		Int("activities", len(dataset.Activities)).
		Msg("dataset is valid")
	fmt.Fprintf(os.Stdout, "✓ %s is a valid dataset\n", cmd.Path)
	return nil
}

// writeStructured emits v as indented JSON or as YAML with the same keys.
func writeStructured(out io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format == "json" {
		_, err = out.Write(append(data, '\n'))
		return err
	}
	var generic any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
