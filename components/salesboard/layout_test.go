package salesboard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayoutDefaults(t *testing.T) {
	view := BuildLayout(LayoutInput{})

	assert.Equal(t, "Skip to main content", view.SkipLink)
	assert.Equal(t, "Auto", view.AutoRefresh)
	assert.Len(t, view.KPIs.Cards, 7)
	assert.Len(t, view.Pipeline.Stages, 5)
	assert.Len(t, view.Reps.Rows, 4)
	assert.Len(t, view.Activities.Items, 6)
	assert.Equal(t, "Oct 28, 8:15 AM", view.Footer.DataUpdated)
	assert.Len(t, view.QuickFilters, 4)

	require.Len(t, view.Filters, 3)
	period := view.Filters[0]
	assert.Equal(t, "📅", period.Icon)
	require.Len(t, period.Options, 3)
	assert.Equal(t, "this-week", period.Options[0].Value)
	assert.True(t, period.Options[0].Selected)

	territory := view.Filters[1]
	assert.Equal(t, "🎯", territory.Icon)
	assert.Equal(t, "All Territories", territory.Options[0].Label)
	assert.True(t, territory.Options[0].Selected)

	reps := view.Filters[2]
	assert.Equal(t, "👥", reps.Icon)
	assert.Equal(t, "All Reps (4)", reps.Options[0].Label)
	assert.Len(t, reps.Options, 5)
}

func TestBuildLayoutSelectsFilters(t *testing.T) {
	query := DashboardQuery{Period: "this-month", Territory: "west", Rep: "lisa-wong"}
	view := BuildLayout(LayoutInput{
		Query:      query,
		Reps:       []RepPerformance{DefaultReps()[2]},
		RepOptions: DefaultReps(),
		Params:     query.Values(),
	})

	assert.False(t, view.Filters[0].Options[0].Selected)
	assert.True(t, view.Filters[0].Options[2].Selected)
	assert.False(t, view.Filters[1].Options[0].Selected)
	assert.True(t, view.Filters[1].Options[4].Selected)

	repFilter := view.Filters[2]
	assert.Equal(t, "All Reps (4)", repFilter.Options[0].Label)
	assert.True(t, repFilter.Options[3].Selected)
	require.Len(t, view.Reps.Rows, 1)
	assert.Equal(t, "Lisa Wong", view.Reps.Rows[0].Name)

	for _, col := range view.Reps.Columns {
		if col.Sortable {
			href, err := url.ParseQuery(col.Href[1:])
			require.NoError(t, err)
			assert.Equal(t, "lisa-wong", href.Get("rep"))
		}
	}
}

func TestBuildLayoutLoadingHidesChart(t *testing.T) {
	view := BuildLayout(LayoutInput{Loading: true, ChartHTML: "<div>chart</div>"})
	assert.True(t, view.KPIs.Loading)
	assert.True(t, view.Pipeline.Loading)
	assert.True(t, view.Reps.Loading)
	assert.True(t, view.Activities.Loading)
	assert.Empty(t, view.Pipeline.ChartHTML)

	ready := BuildLayout(LayoutInput{ChartHTML: "<div>chart</div>"})
	assert.Equal(t, "<div>chart</div>", ready.Pipeline.ChartHTML)
}

func TestBuildLayoutFooterUsesHeaderTimestamp(t *testing.T) {
	view := BuildLayout(LayoutInput{Header: HeaderData{LastUpdated: "Nov 2, 9:30 AM"}})
	assert.Equal(t, "Nov 2, 9:30 AM", view.Footer.DataUpdated)
	assert.Equal(t, "Nov 2, 9:30 AM", view.Header.LastUpdated)
}
