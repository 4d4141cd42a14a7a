package salesboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `
version: "1"
user:
  name: Ana P.
  role: VP Sales
last_updated: "9:05 AM"
notifications:
  - id: n1
    message: Deal closed
    timestamp: ""
kpis:
  - id: new-leads
    title: New Leads
    value: 147
    trend: {direction: up, value: "+12", period: vs Last Week}
    status: celebrating
pipeline:
  stages:
    - {stage: Leads, count: 487, percentage: 100}
    - {stage: Qualified, count: 147, percentage: 30.2, trend: {direction: up, value: "+2.1%"}}
reps:
  - id: lisa-wong
    name: Lisa Wong
    conversionRate: 18.7
    pipelineValue: $340K
    activitiesThisWeek: 24
    dealsAtRisk: 1
    status: excelling
    quickActions: [celebrate, share-best-practice]
activities:
  - id: a1
    type: deal-closed
    actor: Lisa Wong
    description: closed $45K deal with TechCorp
    timestamp: 2 mins ago
    details: {dealValue: $45K, company: TechCorp}
`

func TestDecodeDatasetYAML(t *testing.T) {
	doc, err := DecodeDataset(strings.NewReader(sampleDataset))
	require.NoError(t, err)

	require.NotNil(t, doc.User)
	assert.Equal(t, "Ana P.", doc.User.Name)
	assert.Equal(t, "9:05 AM", doc.LastUpdated)
	require.Len(t, doc.KPIs, 1)
	assert.Equal(t, DisplayValue("147"), doc.KPIs[0].Value)
	assert.Equal(t, KPIStatus("celebrating"), doc.KPIs[0].Status)
	require.NotNil(t, doc.Pipeline)
	assert.Len(t, doc.Pipeline.Stages, 2)
	require.Len(t, doc.Reps, 1)
	assert.Equal(t, 18.7, doc.Reps[0].ConversionRate)
	require.Len(t, doc.Activities, 1)
	assert.Equal(t, "TechCorp", doc.Activities[0].Details.Company)

	header := doc.Header()
	assert.Equal(t, 1, UnreadCount(header.Notifications))
}

func TestDecodeDatasetJSON(t *testing.T) {
	doc, err := DecodeDataset(strings.NewReader(`{"kpis":[{"id":"x","title":"X","value":"$1"}]}`))
	require.NoError(t, err)
	assert.Len(t, doc.KPIs, 1)
	assert.Nil(t, doc.Reps)
}

func TestDecodeDatasetRejectsInvalidDocuments(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader("widgets: []\n"))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))

	_, err = DecodeDataset(strings.NewReader("reps:\n  - name: No Id\n"))
	require.Error(t, err)

	_, err = DecodeDataset(strings.NewReader("pipeline:\n  stages:\n    - {stage: Leads, count: -1, percentage: 100}\n"))
	require.Error(t, err)

	_, err = DecodeDataset(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryBadInput))

	_, err = DecodeDataset(strings.NewReader("kpis: [unclosed"))
	require.Error(t, err)
}

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o600))

	doc, err := ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	_, err = ReadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryNotFound))
}

func TestDefaultDatasetValidates(t *testing.T) {
	require.NoError(t, ValidateDatasetPayload(DefaultDataset()))
}
