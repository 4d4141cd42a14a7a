package salesboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepositoryFiltersAndSortsReps(t *testing.T) {
	repo := NewStaticRepository(nil)
	ctx := context.Background()

	reps, err := repo.FetchReps(ctx, DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sarah-chen", "mike-johnson", "lisa-wong", "tom-rodriguez"}, repIDs(reps))

	reps, err = repo.FetchReps(ctx, DashboardQuery{SortBy: SortByActivitiesThisWeek, SortDirection: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"lisa-wong", "tom-rodriguez", "mike-johnson", "sarah-chen"}, repIDs(reps))

	reps, err = repo.FetchReps(ctx, DashboardQuery{Rep: "mike-johnson"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mike-johnson"}, repIDs(reps))
}

func TestStaticRepositoryActivitiesForRep(t *testing.T) {
	repo := NewStaticRepository(nil)
	ctx := context.Background()

	items, err := repo.FetchActivities(ctx, DashboardQuery{Rep: "sarah-chen"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "activity-3", items[0].ID)

	items, err = repo.FetchActivities(ctx, DashboardQuery{Rep: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStaticRepositoryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewStaticRepository(nil)

	_, err := repo.FetchKPIs(ctx, DashboardQuery{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FetchHeader(ctx, ViewerContext{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileRepositoryReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reps:\n  - {id: a, name: Alpha}\n"), 0o600))

	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	assert.Equal(t, path, repo.Path())

	reps, err := repo.FetchReps(context.Background(), DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, repIDs(reps))

	require.NoError(t, os.WriteFile(path, []byte("reps:\n  - {id: b, name: Beta}\n  - {id: c, name: Gamma}\n"), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	reps, err = repo.FetchReps(context.Background(), DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, repIDs(reps))
}

func TestFileRepositoryMissingFile(t *testing.T) {
	_, err := NewFileRepository(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryNotFound))
	assert.Equal(t, 404, HTTPStatus(err))
}
