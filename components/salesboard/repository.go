package salesboard

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// StaticRepository serves a fixed dataset. It applies the rep filter and the
// reps sort so the table receives rows in the requested order.
type StaticRepository struct {
	dataset *Dataset
}

var _ Repository = (*StaticRepository)(nil)

// NewStaticRepository wraps a dataset; nil selects the demo data.
func NewStaticRepository(dataset *Dataset) *StaticRepository {
	if dataset == nil {
		dataset = DefaultDataset()
	}
	return &StaticRepository{dataset: dataset}
}

// Dataset exposes the underlying document.
func (r *StaticRepository) Dataset() *Dataset {
	return r.dataset
}

// FetchKPIs returns the KPI cards as stored.
func (r *StaticRepository) FetchKPIs(ctx context.Context, _ DashboardQuery) ([]KPICard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.dataset.KPIs, nil
}

// FetchPipeline returns the funnel as stored.
func (r *StaticRepository) FetchPipeline(ctx context.Context, _ DashboardQuery) (*PipelineData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.dataset.Pipeline, nil
}

// FetchReps filters by rep id and sorts by the query selection. Without a
// sort column the stored order is kept.
func (r *StaticRepository) FetchReps(ctx context.Context, query DashboardQuery) ([]RepPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reps := r.allReps()
	if query.Rep != "" {
		filtered := make([]RepPerformance, 0, 1)
		for _, rep := range reps {
			if rep.ID == query.Rep {
				filtered = append(filtered, rep)
			}
		}
		reps = filtered
	}
	if query.SortBy == "" {
		return append([]RepPerformance(nil), reps...), nil
	}
	return SortReps(reps, query.SortBy, query.SortDirection), nil
}

// FetchActivities returns the stream, narrowed to the selected rep's events.
func (r *StaticRepository) FetchActivities(ctx context.Context, query DashboardQuery) ([]Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := r.dataset.Activities
	if query.Rep == "" {
		return items, nil
	}
	rep, ok := FindRep(r.allReps(), query.Rep)
	if !ok {
		return []Activity{}, nil
	}
	if items == nil {
		items = defaultActivities
	}
	out := make([]Activity, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Actor, rep.Name) {
			out = append(out, item)
		}
	}
	return out, nil
}

// FetchHeader returns the header section.
func (r *StaticRepository) FetchHeader(ctx context.Context, _ ViewerContext) (HeaderData, error) {
	if err := ctx.Err(); err != nil {
		return HeaderData{}, err
	}
	return r.dataset.Header(), nil
}

func (r *StaticRepository) allReps() []RepPerformance {
	if r.dataset.Reps == nil {
		return defaultReps
	}
	return r.dataset.Reps
}

// FileRepository serves a dataset file, reloading it when its modification
// time changes.
type FileRepository struct {
	path string

	mu      sync.Mutex
	modTime time.Time
	static  *StaticRepository
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository loads path eagerly so configuration errors surface at
// startup.
func NewFileRepository(path string) (*FileRepository, error) {
	repo := &FileRepository{path: path}
	if _, err := repo.current(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Path returns the dataset location.
func (r *FileRepository) Path() string { return r.path }

func (r *FileRepository) current() (*StaticRepository, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "salesboard: dataset "+r.path+" not found")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: stat dataset "+r.path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.static != nil && info.ModTime().Equal(r.modTime) {
		return r.static, nil
	}
	doc, err := ReadDataset(r.path)
	if err != nil {
		return nil, err
	}
	r.static = NewStaticRepository(doc)
	r.modTime = info.ModTime()
	return r.static, nil
}

func (r *FileRepository) FetchKPIs(ctx context.Context, query DashboardQuery) ([]KPICard, error) {
	repo, err := r.current()
	if err != nil {
		return nil, err
	}
	return repo.FetchKPIs(ctx, query)
}

func (r *FileRepository) FetchPipeline(ctx context.Context, query DashboardQuery) (*PipelineData, error) {
	repo, err := r.current()
	if err != nil {
		return nil, err
	}
	return repo.FetchPipeline(ctx, query)
}

func (r *FileRepository) FetchReps(ctx context.Context, query DashboardQuery) ([]RepPerformance, error) {
	repo, err := r.current()
	if err != nil {
		return nil, err
	}
	return repo.FetchReps(ctx, query)
}

func (r *FileRepository) FetchActivities(ctx context.Context, query DashboardQuery) ([]Activity, error) {
	repo, err := r.current()
	if err != nil {
		return nil, err
	}
	return repo.FetchActivities(ctx, query)
}

func (r *FileRepository) FetchHeader(ctx context.Context, viewer ViewerContext) (HeaderData, error) {
	repo, err := r.current()
	if err != nil {
		return HeaderData{}, err
	}
	return repo.FetchHeader(ctx, viewer)
}
