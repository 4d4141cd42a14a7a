package gorouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
	"github.com/goliatone/go-salesboard/components/salesboard/httpapi"
)

type eventLog struct {
	mu     sync.Mutex
	events []salesboard.ActionEvent
}

func (l *eventLog) ActionTriggered(_ context.Context, event salesboard.ActionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *eventLog) last(t *testing.T) salesboard.ActionEvent {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.events)
	return l.events[len(l.events)-1]
}

func newTestApp(t *testing.T) (*fiber.App, *eventLog) {
	t.Helper()
	hooks := &eventLog{}
	service := salesboard.NewService(salesboard.Options{ActionHook: hooks})
	renderer, err := salesboard.NewTemplateRenderer()
	require.NoError(t, err)

	server := router.NewFiberAdapter(func(app *fiber.App) *fiber.App { return app })
	err = Register(Config[*fiber.App]{
		Router: server.Router(),
		Controller: salesboard.NewController(salesboard.ControllerOptions{
			Service:       service,
			Renderer:      renderer,
			StylesheetURL: "/sales/dashboard/tokens.css",
			ActionsURL:    "/sales/dashboard",
		}),
		API:      httpapi.NewServiceExecutor(service, nil),
		BasePath: "/sales",
	})
	require.NoError(t, err)
	return server.WrappedRouter(), hooks
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func decodeError(t *testing.T, body string) map[string]any {
	t.Helper()
	var payload struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.NotNil(t, payload.Error)
	return payload.Error
}

func TestDashboardPageRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "$2.4M")
	assert.Contains(t, body, "width: 30.2%")
	assert.Contains(t, body, "+2.1%")
	assert.NotContains(t, body, ">Notifications</div>")

	resp, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard?open=notifications", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ">Notifications</div>")

	resp, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard?sort=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, salesboard.CodeInvalidSort, decodeError(t, body)["text_code"])
}

func TestDashboardDataRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard/_data?rep=lisa-wong", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var payload struct {
		Reps struct {
			Rows []struct {
				ID string `json:"id"`
			} `json:"rows"`
		} `json:"reps"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Len(t, payload.Reps.Rows, 1)
	assert.Equal(t, "lisa-wong", payload.Reps.Rows[0].ID)
}

func TestRepsRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard/reps?sort=name&dir=asc", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view salesboard.RepsTableView
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, "name", view.SortBy)
	require.Len(t, view.Rows, 4)
	assert.Equal(t, "Lisa Wong", view.Rows[0].Name)
	assert.Equal(t, "Tom Rodriguez", view.Rows[3].Name)

	resp, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard/reps?sort=name&dir=sideways", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, salesboard.CodeInvalidSort, decodeError(t, body)["text_code"])
}

func TestTokensRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sales/dashboard/tokens.css", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Equal(t, "public, max-age=86400", resp.Header.Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(body, ":root {"))
}

func TestActionRoutesAnswerAPICallersWithJSON(t *testing.T) {
	app, hooks := newTestApp(t)

	cases := []struct {
		name   string
		req    *http.Request
		kind   salesboard.ActionKind
		target string
	}{
		{
			name:   "quick action from query",
			req:    httptest.NewRequest(http.MethodPost, "/sales/dashboard/reps/sarah-chen/actions?action=call", nil),
			kind:   salesboard.ActionQuickAction,
			target: "sarah-chen",
		},
		{
			name:   "quick action from json body",
			req:    jsonRequest("/sales/dashboard/reps/mike-johnson/actions", `{"action":"message"}`),
			kind:   salesboard.ActionQuickAction,
			target: "mike-johnson",
		},
		{
			name:   "open activity",
			req:    httptest.NewRequest(http.MethodPost, "/sales/dashboard/activities/activity-1/open", nil),
			kind:   salesboard.ActionOpenActivity,
			target: "activity-1",
		},
		{
			name:   "select kpi",
			req:    httptest.NewRequest(http.MethodPost, "/sales/dashboard/kpis/pipeline-value/select", nil),
			kind:   salesboard.ActionSelectKPI,
			target: "pipeline-value",
		},
		{
			name:   "select stage",
			req:    httptest.NewRequest(http.MethodPost, "/sales/dashboard/stages/Qualified/select", nil),
			kind:   salesboard.ActionSelectStage,
			target: "Qualified",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Header.Set("Accept", "application/json")
			resp, body := doRequest(t, app, tc.req)
			require.Equal(t, http.StatusAccepted, resp.StatusCode, body)
			assert.JSONEq(t, `{"status":"recorded"}`, body)

			event := hooks.last(t)
			assert.Equal(t, tc.kind, event.Kind)
			assert.Equal(t, tc.target, event.TargetID)
		})
	}
}

func TestActionRoutesRedirectFormPosts(t *testing.T) {
	app, hooks := newTestApp(t)

	t.Run("back to the referring page", func(t *testing.T) {
		req := formRequest("/sales/dashboard/kpis/pipeline-value/select", "")
		req.Header.Set("Referer", "/sales/dashboard?sort=name&dir=desc")
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/sales/dashboard?sort=name&dir=desc", resp.Header.Get("Location"))
		assert.Equal(t, "pipeline-value", hooks.last(t).TargetID)
	})

	t.Run("dashboard with query when there is no referer", func(t *testing.T) {
		req := formRequest("/sales/dashboard/reps/lisa-wong/actions?action=view-details&rep=lisa-wong&open=user", "")
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/sales/dashboard?open=user&rep=lisa-wong", resp.Header.Get("Location"))
		event := hooks.last(t)
		assert.Equal(t, salesboard.ActionViewDetails, event.Action)
	})

	t.Run("foreign referer falls back to the dashboard", func(t *testing.T) {
		req := formRequest("/sales/dashboard/stages/Qualified/select", "")
		req.Header.Set("Referer", "https://evil.example.com/phish")
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/sales/dashboard", resp.Header.Get("Location"))
	})

	t.Run("action read from the form body", func(t *testing.T) {
		resp, _ := doRequest(t, app, formRequest("/sales/dashboard/reps/tom-rodriguez/actions", "action=monitor"))
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		event := hooks.last(t)
		assert.Equal(t, "tom-rodriguez", event.TargetID)
		assert.Equal(t, "monitor", event.Action)
	})

	t.Run("browser accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sales/dashboard/activities/activity-1/open", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/sales/dashboard", resp.Header.Get("Location"))
	})
}

func TestActionRoutesMapErrors(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{"unknown kpi", httptest.NewRequest(http.MethodPost, "/sales/dashboard/kpis/ghost/select", nil), http.StatusNotFound, salesboard.CodeTargetNotFound},
		{"unknown stage", httptest.NewRequest(http.MethodPost, "/sales/dashboard/stages/Nowhere/select", nil), http.StatusNotFound, salesboard.CodeTargetNotFound},
		{"unknown activity", httptest.NewRequest(http.MethodPost, "/sales/dashboard/activities/activity-999/open", nil), http.StatusNotFound, salesboard.CodeTargetNotFound},
		{"unknown rep", httptest.NewRequest(http.MethodPost, "/sales/dashboard/reps/ghost/actions?action=call", nil), http.StatusNotFound, salesboard.CodeTargetNotFound},
		{"action not offered", httptest.NewRequest(http.MethodPost, "/sales/dashboard/reps/sarah-chen/actions?action=celebrate", nil), http.StatusUnprocessableEntity, salesboard.CodeUnknownAction},
		{"missing action", httptest.NewRequest(http.MethodPost, "/sales/dashboard/reps/sarah-chen/actions", nil), http.StatusBadRequest, salesboard.CodeMissingAction},
		{"malformed body", jsonRequest("/sales/dashboard/reps/sarah-chen/actions", "{"), http.StatusBadRequest, "INVALID_PAYLOAD"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doRequest(t, app, tc.req)
			assert.Equal(t, tc.status, resp.StatusCode, body)
			assert.Equal(t, tc.code, decodeError(t, body)["text_code"])
		})
	}
}

func TestPrefersHTML(t *testing.T) {
	assert.True(t, prefersHTML("text/html,application/xhtml+xml;q=0.9"))
	assert.True(t, prefersHTML("application/xhtml+xml"))
	assert.False(t, prefersHTML("application/json, text/html"))
	assert.False(t, prefersHTML("*/*"))
	assert.False(t, prefersHTML(""))
}

func TestDashboardURLKeepsQuery(t *testing.T) {
	values := map[string]string{"period": "last-30-days", "dir": "desc", "action": "call", "open": "menu"}
	get := func(key string) string { return values[key] }
	assert.Equal(t, "/sales/dashboard?dir=desc&open=menu&period=last-30-days", dashboardURL("/sales/dashboard", get))
	assert.Equal(t, "/sales/dashboard", dashboardURL("/sales/dashboard", func(string) string { return "" }))
	assert.Equal(t, "/sales/dashboard", joinPath("/sales/", "/dashboard"))
}

func jsonRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
