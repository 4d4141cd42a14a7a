package salesboard

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Options configures the Service. Every collaborator is an interface so
// applications can plug in their own data sources and sinks.
type Options struct {
	Repository Repository
	ActionHook ActionHook
	Telemetry  Telemetry
	// Charts renders the optional funnel chart. Nil disables it.
	Charts ChartRenderer
	// NewID generates action event ids.
	NewID func() string
}

// Service loads dashboard sections and routes UI actions.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults: demo data, no-op hooks and
// no chart.
func NewService(opts Options) *Service {
	if opts.Repository == nil {
		opts.Repository = NewStaticRepository(nil)
	}
	if opts.ActionHook == nil {
		opts.ActionHook = noopActionHook{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// NormalizeQuery checks the sort selection and fills the default direction.
func NormalizeQuery(query DashboardQuery) (DashboardQuery, error) {
	query.Period = strings.TrimSpace(query.Period)
	query.Territory = strings.TrimSpace(query.Territory)
	query.Rep = strings.TrimSpace(query.Rep)
	query.SortBy = strings.TrimSpace(query.SortBy)
	if query.SortBy != "" && !ValidSortColumn(query.SortBy) {
		return query, errInvalidSort("column", query.SortBy)
	}
	switch SortDirection(strings.ToLower(string(query.SortDirection))) {
	case "":
	case SortAsc:
		query.SortDirection = SortAsc
	case SortDesc:
		query.SortDirection = SortDesc
	default:
		return query, errInvalidSort("direction", string(query.SortDirection))
	}
	return query, nil
}

// QueryFromValues reads the filter and sort selection from URL parameters.
// It is the inverse of DashboardQuery.Values.
func QueryFromValues(values url.Values) DashboardQuery {
	return DashboardQuery{
		Period:        values.Get("period"),
		Territory:     values.Get("territory"),
		Rep:           values.Get("rep"),
		SortBy:        values.Get("sort"),
		SortDirection: SortDirection(values.Get("dir")),
	}
}

// Values encodes the query as URL parameters.
func (q DashboardQuery) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("period", q.Period)
	set("territory", q.Territory)
	set("rep", q.Rep)
	set("sort", q.SortBy)
	set("dir", string(q.SortDirection))
	return values
}

// Dashboard loads every section and composes the page view.
func (s *Service) Dashboard(ctx context.Context, viewer ViewerContext, query DashboardQuery, state ViewState) (DashboardView, error) {
	query, err := NormalizeQuery(query)
	if err != nil {
		return DashboardView{}, err
	}
	repo := s.opts.Repository

	header, err := repo.FetchHeader(ctx, viewer)
	if err != nil {
		return DashboardView{}, wrapRepositoryError(err, "header")
	}
	kpis, err := repo.FetchKPIs(ctx, query)
	if err != nil {
		return DashboardView{}, wrapRepositoryError(err, "kpis")
	}
	pipeline, err := repo.FetchPipeline(ctx, query)
	if err != nil {
		return DashboardView{}, wrapRepositoryError(err, "pipeline")
	}
	reps, err := repo.FetchReps(ctx, query)
	if err != nil {
		return DashboardView{}, wrapRepositoryError(err, "reps")
	}
	repOptions := reps
	if query.Rep != "" {
		if repOptions, err = repo.FetchReps(ctx, DashboardQuery{}); err != nil {
			return DashboardView{}, wrapRepositoryError(err, "reps")
		}
	}
	activities, err := repo.FetchActivities(ctx, query)
	if err != nil {
		return DashboardView{}, wrapRepositoryError(err, "activities")
	}

	view := BuildLayout(LayoutInput{
		Header:     header,
		KPIs:       kpis,
		Pipeline:   pipeline,
		Reps:       reps,
		RepOptions: repOptions,
		Activities: activities,
		Query:      query,
		State:      state,
		Params:     query.Values(),
		ChartHTML:  s.chartHTML(ctx, pipeline),
	})

	s.opts.Telemetry.Record(ctx, "salesboard.dashboard.rendered", map[string]any{
		"user":       viewer.UserID,
		"period":     query.Period,
		"territory":  query.Territory,
		"rep":        query.Rep,
		"sort_by":    view.Reps.SortBy,
		"sort_dir":   view.Reps.SortDirection,
		"kpis":       len(view.KPIs.Cards),
		"reps":       len(view.Reps.Rows),
		"activities": len(view.Activities.Items),
	})
	return view, nil
}

func (s *Service) chartHTML(ctx context.Context, pipeline *PipelineData) string {
	if s.opts.Charts == nil {
		return ""
	}
	html, err := s.opts.Charts.RenderFunnel(ctx, pipeline)
	if err != nil {
		s.opts.Telemetry.Record(ctx, "salesboard.chart.failed", map[string]any{"error": err.Error()})
		return ""
	}
	return html
}

// Reps loads the reps table for the given sort selection.
func (s *Service) Reps(ctx context.Context, query DashboardQuery) (RepsTableView, error) {
	query, err := NormalizeQuery(query)
	if err != nil {
		return RepsTableView{}, err
	}
	reps, err := s.opts.Repository.FetchReps(ctx, query)
	if err != nil {
		return RepsTableView{}, wrapRepositoryError(err, "reps")
	}
	view := BuildRepsTable(reps, RepsTableOptions{
		SortBy:        query.SortBy,
		SortDirection: query.SortDirection,
	})
	s.opts.Telemetry.Record(ctx, "salesboard.reps.sorted", map[string]any{
		"sort_by":  view.SortBy,
		"sort_dir": view.SortDirection,
		"rows":     len(view.Rows),
	})
	return view, nil
}

// QuickActionRequest identifies a quick action or mobile call to action on
// a rep row.
type QuickActionRequest struct {
	Viewer ViewerContext
	RepID  string
	Action string
}

// RecordQuickAction validates that action is offered on the rep's row and
// forwards it to the action hook.
func (s *Service) RecordQuickAction(ctx context.Context, req QuickActionRequest) (ActionEvent, error) {
	repID := strings.TrimSpace(req.RepID)
	action := strings.TrimSpace(req.Action)
	if repID == "" {
		return ActionEvent{}, errMissingTarget("rep")
	}
	if action == "" {
		return ActionEvent{}, errMissingAction()
	}
	reps, err := s.opts.Repository.FetchReps(ctx, DashboardQuery{})
	if err != nil {
		return ActionEvent{}, wrapRepositoryError(err, "reps")
	}
	if reps == nil {
		reps = defaultReps
	}
	rep, ok := FindRep(reps, repID)
	if !ok {
		return ActionEvent{}, errNotFound("rep", repID)
	}
	if !rowOffersAction(BuildRepRow(rep), action) {
		return ActionEvent{}, errUnknownAction(repID, action)
	}
	return s.emit(ctx, ActionEvent{
		Kind:     ActionQuickAction,
		TargetID: repID,
		Action:   action,
		UserID:   req.Viewer.UserID,
	})
}

func rowOffersAction(row RepRow, action string) bool {
	for _, quick := range row.QuickActions {
		if quick.Action == action {
			return true
		}
	}
	for _, cta := range row.CallsToAction {
		if cta.Action == action {
			return true
		}
	}
	return false
}

// OpenActivity records an activity row activation.
func (s *Service) OpenActivity(ctx context.Context, viewer ViewerContext, id string) (ActionEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ActionEvent{}, errMissingTarget("activity")
	}
	items, err := s.opts.Repository.FetchActivities(ctx, DashboardQuery{})
	if err != nil {
		return ActionEvent{}, wrapRepositoryError(err, "activities")
	}
	if items == nil {
		items = defaultActivities
	}
	if _, ok := FindActivity(items, id); !ok {
		return ActionEvent{}, errNotFound("activity", id)
	}
	return s.emit(ctx, ActionEvent{Kind: ActionOpenActivity, TargetID: id, UserID: viewer.UserID})
}

// SelectKPI records a KPI card activation.
func (s *Service) SelectKPI(ctx context.Context, viewer ViewerContext, id string) (ActionEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ActionEvent{}, errMissingTarget("kpi")
	}
	cards, err := s.opts.Repository.FetchKPIs(ctx, DashboardQuery{})
	if err != nil {
		return ActionEvent{}, wrapRepositoryError(err, "kpis")
	}
	if cards == nil {
		cards = defaultKPICards
	}
	if _, ok := FindKPI(cards, id); !ok {
		return ActionEvent{}, errNotFound("kpi", id)
	}
	return s.emit(ctx, ActionEvent{Kind: ActionSelectKPI, TargetID: id, UserID: viewer.UserID})
}

// SelectStage records a funnel bar activation.
func (s *Service) SelectStage(ctx context.Context, viewer ViewerContext, stage string) (ActionEvent, error) {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return ActionEvent{}, errMissingTarget("stage")
	}
	pipeline, err := s.opts.Repository.FetchPipeline(ctx, DashboardQuery{})
	if err != nil {
		return ActionEvent{}, wrapRepositoryError(err, "pipeline")
	}
	if pipeline == nil {
		pipeline = &defaultPipeline
	}
	if _, ok := FindStage(pipeline, stage); !ok {
		return ActionEvent{}, errNotFound("stage", stage)
	}
	return s.emit(ctx, ActionEvent{Kind: ActionSelectStage, TargetID: stage, UserID: viewer.UserID})
}

func (s *Service) emit(ctx context.Context, event ActionEvent) (ActionEvent, error) {
	event.ID = s.opts.NewID()
	payload := map[string]any{
		"id":        event.ID,
		"target_id": event.TargetID,
		"user":      event.UserID,
	}
	if event.Action != "" {
		payload["action"] = event.Action
	}
	s.opts.Telemetry.Record(ctx, "salesboard.action."+string(event.Kind), payload)
	if err := s.opts.ActionHook.ActionTriggered(ctx, event); err != nil {
		return event, wrapHookError(err, event.Kind)
	}
	return event, nil
}
