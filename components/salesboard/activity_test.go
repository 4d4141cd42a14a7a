package salesboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActivityFeedEmptyState(t *testing.T) {
	view := BuildActivityFeed([]Activity{}, false)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Items)
	require.NotNil(t, view.EmptyState)
	assert.Equal(t, "📭", view.EmptyState.Icon)
	assert.Equal(t, "No recent activities", view.EmptyState.Message)
	assert.Equal(t, "Refresh feed", view.EmptyState.Action)
}

func TestBuildActivityFeedDefaults(t *testing.T) {
	view := BuildActivityFeed(nil, false)
	assert.False(t, view.Empty)
	assert.Nil(t, view.EmptyState)
	require.Len(t, view.Items, 6)

	first := view.Items[0]
	assert.Equal(t, "Lisa Wong", first.Actor)
	assert.Equal(t, "$45K", first.DealValue)
	assert.Equal(t, "TechCorp", first.Company)
	assert.Equal(t, "🎉", first.Style.Icon)
	assert.Equal(t, "text-green-600 bg-green-50 border-green-200", first.CSS)
	assert.Equal(t, "Lisa Wong closed $45K deal with TechCorp 2 mins ago", first.AriaLabel)

	reminder := view.Items[4]
	assert.Empty(t, reminder.Company)
	assert.Equal(t, "📅", reminder.Style.Icon)
}

func TestBuildActivityFeedLoading(t *testing.T) {
	view := BuildActivityFeed(nil, true)
	assert.True(t, view.Loading)
	assert.Empty(t, view.Items)
	assert.False(t, view.Empty)
	assert.Len(t, view.SkeletonRows, 6)
}

func TestActivityStyleUnknownType(t *testing.T) {
	style := ActivityStyle("webinar-hosted")
	assert.Equal(t, "📋", style.Icon)
	assert.Equal(t, "text-gray-600 bg-gray-50 border-gray-200", style.CSS())
	assert.Equal(t, "⚠️", ActivityStyle(ActivityDealAtRisk).Icon)
}

func TestDefaultActivitiesIsACopy(t *testing.T) {
	items := DefaultActivities()
	items[0].Details.Company = "Changed"
	fresh := DefaultActivities()
	assert.Equal(t, "TechCorp", fresh[0].Details.Company)

	_, ok := FindActivity(fresh, "activity-6")
	assert.True(t, ok)
}
