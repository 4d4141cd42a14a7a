package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

func TestRepositoryDelegatesToClient(t *testing.T) {
	mock := NewMockClientFromDataset(nil)
	repo := NewRepository(mock)
	ctx := context.Background()

	cards, err := repo.FetchKPIs(ctx, salesboard.DashboardQuery{})
	require.NoError(t, err)
	assert.Len(t, cards, 7)

	pipeline, err := repo.FetchPipeline(ctx, salesboard.DashboardQuery{})
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	assert.NotEmpty(t, pipeline.Stages)

	reps, err := repo.FetchReps(ctx, salesboard.DashboardQuery{SortBy: salesboard.SortByPipelineValue, SortDirection: salesboard.SortDesc})
	require.NoError(t, err)
	require.Len(t, reps, 4)
	assert.Equal(t, "lisa-wong", reps[0].ID)
	assert.Equal(t, "sarah-chen", reps[3].ID)
}

func TestRepositoryTreatsMissingSectionsAsEmpty(t *testing.T) {
	repo := NewRepository(NewMockClient(MockData{}))
	ctx := context.Background()

	cards, err := repo.FetchKPIs(ctx, salesboard.DashboardQuery{})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)

	activities, err := repo.FetchActivities(ctx, salesboard.DashboardQuery{})
	require.NoError(t, err)
	assert.NotNil(t, activities)

	feed := salesboard.BuildActivityFeed(activities, false)
	assert.True(t, feed.Empty)

	pipeline, err := repo.FetchPipeline(ctx, salesboard.DashboardQuery{})
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	assert.Empty(t, pipeline.Stages)
}

func TestRepositoryPropagatesClientErrors(t *testing.T) {
	mock := NewMockClientFromDataset(nil)
	mock.FailWith(errors.New("crm offline"))
	service := salesboard.NewService(salesboard.Options{Repository: NewRepository(mock)})

	_, err := service.Dashboard(context.Background(), salesboard.ViewerContext{}, salesboard.DashboardQuery{}, salesboard.ViewState{})
	require.Error(t, err)
	assert.Equal(t, 502, salesboard.HTTPStatus(err))

	mock.FailWith(nil)
	view, err := service.Dashboard(context.Background(), salesboard.ViewerContext{}, salesboard.DashboardQuery{}, salesboard.ViewState{})
	require.NoError(t, err)
	assert.Len(t, view.Reps.Rows, 4)
}
