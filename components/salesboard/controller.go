package salesboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	goerrors "github.com/goliatone/go-errors"
)

const defaultTemplate = "salesboard.html"

// DashboardResolver produces the page view for a request.
type DashboardResolver interface {
	Dashboard(ctx context.Context, viewer ViewerContext, query DashboardQuery, state ViewState) (DashboardView, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  DashboardResolver
	Renderer Renderer
	Template string
	// StylesheetURL is linked from the page head when set.
	StylesheetURL string
	// ActionsURL is the base path the page posts actions to.
	ActionsURL string
}

// Controller renders dashboard pages and JSON payloads.
type Controller struct {
	opts ControllerOptions
}

// PageRequest is the per-request input of the controller.
type PageRequest struct {
	Viewer ViewerContext
	Query  DashboardQuery
	State  ViewState
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	return &Controller{opts: opts}
}

// Dashboard resolves the typed view.
func (c *Controller) Dashboard(ctx context.Context, req PageRequest) (DashboardView, error) {
	if c.opts.Service == nil {
		return BuildLayout(LayoutInput{Query: req.Query, State: req.State, Params: req.Query.Values()}), nil
	}
	return c.opts.Service.Dashboard(ctx, req.Viewer, req.Query, req.State)
}

// Payload returns the JSON friendly view.
func (c *Controller) Payload(ctx context.Context, req PageRequest) (map[string]any, error) {
	view, err := c.Dashboard(ctx, req)
	if err != nil {
		return nil, err
	}
	return viewToMap(view)
}

// RenderTemplate renders the page into out.
func (c *Controller) RenderTemplate(ctx context.Context, req PageRequest, out io.Writer) error {
	if c.opts.Renderer == nil {
		return goerrors.New("salesboard: renderer not configured", goerrors.CategoryInternal)
	}
	payload, err := c.Payload(ctx, req)
	if err != nil {
		return err
	}
	data := map[string]any{
		"dashboard":      payload,
		"stylesheet_url": c.opts.StylesheetURL,
		"actions_url":    c.opts.ActionsURL,
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: render "+c.opts.Template)
	}
	return nil
}

// viewToMap converts the view into plain maps keyed by the json tags so the
// templates address fields the same way API clients do. The template engine
// decodes numbers as floats, so integer fields use the integer filter.
func viewToMap(view DashboardView) (map[string]any, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: encode view")
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: decode view")
	}
	return out, nil
}
