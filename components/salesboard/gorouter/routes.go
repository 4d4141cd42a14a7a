package gorouter

import (
	"bytes"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	router "github.com/goliatone/go-router"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
	"github.com/goliatone/go-salesboard/components/salesboard/commands"
	"github.com/goliatone/go-salesboard/components/salesboard/httpapi"
)

// ViewerResolver converts a router.Context into a salesboard.ViewerContext.
type ViewerResolver func(router.Context) salesboard.ViewerContext

// Config wires go-router with the salesboard controller and action API.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *salesboard.Controller
	API            httpapi.Executor
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
	// Tokens backs the stylesheet route. Defaults to salesboard.DefaultTokens.
	Tokens *salesboard.Tokens
}

// RouteConfig customizes the relative paths used for salesboard endpoints.
type RouteConfig struct {
	HTML         string
	Data         string
	Reps         string
	Tokens       string
	QuickAction  string
	OpenActivity string
	SelectKPI    string
	SelectStage  string
}

// Register mounts the dashboard page, its JSON payload, the token stylesheet
// and the action endpoints on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return goerrors.New("gorouter: router is required", goerrors.CategoryBadInput)
	}
	if cfg.Controller == nil {
		return goerrors.New("gorouter: controller is required", goerrors.CategoryBadInput)
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/sales"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}
	tokens := cfg.Tokens
	if tokens == nil {
		defaults := salesboard.DefaultTokens()
		tokens = &defaults
	}
	stylesheet := []byte(tokens.Stylesheet())

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		req := pageRequest(viewerResolver(ctx), queryLookup(ctx))
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), req, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Data, router.WrapHandler(func(ctx router.Context) error {
		req := pageRequest(viewerResolver(ctx), queryLookup(ctx))
		payload, err := cfg.Controller.Payload(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	group.Get(routes.Tokens, router.WrapHandler(func(ctx router.Context) error {
		ctx.SetHeader("Content-Type", "text/css; charset=utf-8")
		ctx.SetHeader("Cache-Control", "public, max-age=86400")
		return ctx.Send(stylesheet)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes, joinPath(base, routes.HTML))
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig, page string) {
	r.Get(routes.Reps, router.WrapHandler(func(ctx router.Context) error {
		query := queryFromLookup(queryLookup(ctx))
		view, err := api.Reps(ctx.Context(), query)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Post(routes.QuickAction, router.WrapHandler(func(ctx router.Context) error {
		action := strings.TrimSpace(ctx.Query("action"))
		if action == "" && isFormPost(ctx) {
			action = strings.TrimSpace(ctx.FormValue("action"))
		} else if action == "" {
			var err error
			if action, err = httpapi.ActionFromBody(ctx.Body()); err != nil {
				return respondError(ctx, err)
			}
		}
		input := commands.QuickActionInput{Viewer: resolver(ctx), RepID: ctx.Param("id"), Action: action}
		if err := api.QuickAction(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return recorded(ctx, page)
	}))

	r.Post(routes.OpenActivity, router.WrapHandler(func(ctx router.Context) error {
		input := commands.OpenActivityInput{Viewer: resolver(ctx), ActivityID: ctx.Param("id")}
		if err := api.OpenActivity(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return recorded(ctx, page)
	}))

	r.Post(routes.SelectKPI, router.WrapHandler(func(ctx router.Context) error {
		input := commands.SelectKPIInput{Viewer: resolver(ctx), KPIID: ctx.Param("id")}
		if err := api.SelectKPI(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return recorded(ctx, page)
	}))

	r.Post(routes.SelectStage, router.WrapHandler(func(ctx router.Context) error {
		input := commands.SelectStageInput{Viewer: resolver(ctx), Stage: ctx.Param("stage")}
		if err := api.SelectStage(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return recorded(ctx, page)
	}))
}

// recorded answers a successful action. Browser form posts are sent back to
// the page they came from (or the dashboard with the request's filters) with
// 303 See Other; API callers get 202 and a JSON body.
func recorded(ctx router.Context, page string) error {
	if isFormPost(ctx) || prefersHTML(ctx.Header("Accept")) {
		return ctx.RedirectBack(dashboardURL(page, queryLookup(ctx)), http.StatusSeeOther)
	}
	return ctx.JSON(http.StatusAccepted, map[string]string{"status": "recorded"})
}

func isFormPost(ctx router.Context) bool {
	contentType := strings.ToLower(strings.TrimSpace(ctx.Header("Content-Type")))
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}

// prefersHTML reports whether the first recognized media type of an Accept
// header is HTML.
func prefersHTML(accept string) bool {
	for _, token := range strings.Split(accept, ",") {
		mediaType := token
		if idx := strings.Index(mediaType, ";"); idx >= 0 {
			mediaType = mediaType[:idx]
		}
		switch strings.ToLower(strings.TrimSpace(mediaType)) {
		case "text/html", "application/xhtml+xml":
			return true
		case "application/json":
			return false
		}
	}
	return false
}

// dashboardURL keeps the filter, sort and panel parameters of get.
func dashboardURL(page string, get lookup) string {
	values := queryFromLookup(get).Values()
	if open := strings.TrimSpace(get(salesboard.OpenParam)); open != "" {
		values.Set(salesboard.OpenParam, open)
	}
	if len(values) == 0 {
		return page
	}
	return page + "?" + values.Encode()
}

func joinPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

type lookup func(string) string

func queryLookup(ctx router.Context) lookup {
	return func(key string) string { return ctx.Query(key) }
}

func queryFromLookup(get lookup) salesboard.DashboardQuery {
	return salesboard.DashboardQuery{
		Period:        get("period"),
		Territory:     get("territory"),
		Rep:           get("rep"),
		SortBy:        get("sort"),
		SortDirection: salesboard.SortDirection(get("dir")),
	}
}

func pageRequest(viewer salesboard.ViewerContext, get lookup) salesboard.PageRequest {
	return salesboard.PageRequest{
		Viewer: viewer,
		Query:  queryFromLookup(get),
		State:  salesboard.ParseViewState(get(salesboard.OpenParam)),
	}
}

func defaultViewerResolver(ctx router.Context) salesboard.ViewerContext {
	var viewer salesboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(salesboard.HTTPStatus(err), salesboard.ErrorResponse(err))
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Data == "" {
		routes.Data = "/dashboard/_data"
	}
	if routes.Reps == "" {
		routes.Reps = "/dashboard/reps"
	}
	if routes.Tokens == "" {
		routes.Tokens = "/dashboard/tokens.css"
	}
	if routes.QuickAction == "" {
		routes.QuickAction = "/dashboard/reps/:id/actions"
	}
	if routes.OpenActivity == "" {
		routes.OpenActivity = "/dashboard/activities/:id/open"
	}
	if routes.SelectKPI == "" {
		routes.SelectKPI = "/dashboard/kpis/:id/select"
	}
	if routes.SelectStage == "" {
		routes.SelectStage = "/dashboard/stages/:stage/select"
	}
	return routes
}
