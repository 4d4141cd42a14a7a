package crm

import (
	"context"
	"sync"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// MockData seeds deterministic CRM responses for tests or local demos.
type MockData struct {
	KPIs       []salesboard.KPICard
	Pipeline   *salesboard.PipelineData
	Reps       []salesboard.RepPerformance
	Activities []salesboard.Activity
	Header     salesboard.HeaderData
}

// MockClient implements Client using in-memory fixtures. Query filters are
// ignored.
type MockClient struct {
	data MockData
	err  error
	mu   sync.RWMutex
}

// NewMockClient builds a mock CRM client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// NewMockClientFromDataset seeds the mock from a dataset document.
func NewMockClientFromDataset(dataset *salesboard.Dataset) *MockClient {
	if dataset == nil {
		dataset = salesboard.DefaultDataset()
	}
	return NewMockClient(MockData{
		KPIs:       dataset.KPIs,
		Pipeline:   dataset.Pipeline,
		Reps:       dataset.Reps,
		Activities: dataset.Activities,
		Header:     dataset.Header(),
	})
}

// FailWith makes every call return err until it is cleared with nil.
func (c *MockClient) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

var _ Client = (*MockClient)(nil)

func (c *MockClient) FetchKPIs(context.Context, salesboard.DashboardQuery) ([]salesboard.KPICard, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	return append([]salesboard.KPICard(nil), c.data.KPIs...), nil
}

func (c *MockClient) FetchPipeline(context.Context, salesboard.DashboardQuery) (*salesboard.PipelineData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.data.Pipeline == nil {
		return nil, nil
	}
	out := *c.data.Pipeline
	out.Stages = append([]salesboard.PipelineStage(nil), c.data.Pipeline.Stages...)
	return &out, nil
}

func (c *MockClient) FetchReps(context.Context, salesboard.DashboardQuery) ([]salesboard.RepPerformance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.data.Reps == nil {
		return nil, nil
	}
	out := make([]salesboard.RepPerformance, len(c.data.Reps))
	for i, rep := range c.data.Reps {
		rep.QuickActions = append([]string(nil), rep.QuickActions...)
		out[i] = rep
	}
	return out, nil
}

func (c *MockClient) FetchActivities(context.Context, salesboard.DashboardQuery) ([]salesboard.Activity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	return append([]salesboard.Activity(nil), c.data.Activities...), nil
}

func (c *MockClient) FetchHeader(context.Context, salesboard.ViewerContext) (salesboard.HeaderData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return salesboard.HeaderData{}, c.err
	}
	header := c.data.Header
	header.Notifications = append([]salesboard.Notification(nil), c.data.Header.Notifications...)
	return header, nil
}
