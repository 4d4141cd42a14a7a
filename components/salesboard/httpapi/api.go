package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
	"github.com/goliatone/go-salesboard/components/salesboard/commands"
)

// ViewerFunc resolves the viewer for a request.
type ViewerFunc func(*http.Request) salesboard.ViewerContext

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	QuickAction  gocommand.Commander[commands.QuickActionInput]
	OpenActivity gocommand.Commander[commands.OpenActivityInput]
	SelectKPI    gocommand.Commander[commands.SelectKPIInput]
	SelectStage  gocommand.Commander[commands.SelectStageInput]
	Reps         gocommand.Querier[salesboard.DashboardQuery, salesboard.RepsTableView]
	Viewer       ViewerFunc
}

type actionPayload struct {
	Action string `json:"action"`
}

// HandleQuickAction accepts the action either as a JSON body or as the
// action query parameter used by the rendered forms.
func (h *Handlers) HandleQuickAction(w http.ResponseWriter, r *http.Request, repID string) {
	action, err := ActionFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	input := commands.QuickActionInput{Viewer: h.viewer(r), RepID: repID, Action: action}
	if err := h.QuickAction.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handlers) HandleOpenActivity(w http.ResponseWriter, r *http.Request, activityID string) {
	input := commands.OpenActivityInput{Viewer: h.viewer(r), ActivityID: activityID}
	if err := h.OpenActivity.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handlers) HandleSelectKPI(w http.ResponseWriter, r *http.Request, kpiID string) {
	input := commands.SelectKPIInput{Viewer: h.viewer(r), KPIID: kpiID}
	if err := h.SelectKPI.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handlers) HandleSelectStage(w http.ResponseWriter, r *http.Request, stage string) {
	input := commands.SelectStageInput{Viewer: h.viewer(r), Stage: stage}
	if err := h.SelectStage.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

// HandleReps returns the reps table for the sort parameters in the URL.
func (h *Handlers) HandleReps(w http.ResponseWriter, r *http.Request) {
	view, err := h.Reps.Query(r.Context(), salesboard.QueryFromValues(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) viewer(r *http.Request) salesboard.ViewerContext {
	if h.Viewer == nil {
		return salesboard.ViewerContext{}
	}
	return h.Viewer(r)
}

// ActionFromRequest reads the quick action name from the query string or a
// JSON body. The query parameter wins when both are present.
func ActionFromRequest(r *http.Request) (string, error) {
	if action := strings.TrimSpace(r.URL.Query().Get("action")); action != "" {
		return action, nil
	}
	if r.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "read request body").WithCode(http.StatusBadRequest)
	}
	return ActionFromBody(body)
}

// ActionFromBody decodes {"action": "..."}. An empty body yields no action.
func ActionFromBody(body []byte) (string, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", nil
	}
	var payload actionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "decode action payload").
			WithCode(http.StatusBadRequest).
			WithTextCode("INVALID_PAYLOAD")
	}
	return strings.TrimSpace(payload.Action), nil
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, salesboard.HTTPStatus(err), salesboard.ErrorResponse(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
