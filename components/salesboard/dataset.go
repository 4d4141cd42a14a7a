package salesboard

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const datasetSchemaName = "dataset.schema.json"

//go:embed dataset.schema.json
var datasetSchemaJSON []byte

// Dataset is a YAML/JSON document carrying every dashboard section. Omitted
// sections fall back to the demo data; an explicit empty list stays empty.
type Dataset struct {
	Version       string           `json:"version,omitempty" yaml:"version,omitempty"`
	User          *User            `json:"user,omitempty" yaml:"user,omitempty"`
	Notifications []Notification   `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	LastUpdated   string           `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	KPIs          []KPICard        `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	Pipeline      *PipelineData    `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
	Reps          []RepPerformance `json:"reps,omitempty" yaml:"reps,omitempty"`
	Activities    []Activity       `json:"activities,omitempty" yaml:"activities,omitempty"`
	Source        string           `json:"-" yaml:"-"`
}

// DefaultDataset returns the demo data as a dataset.
func DefaultDataset() *Dataset {
	user := defaultUser
	return &Dataset{
		User:       &user,
		KPIs:       DefaultKPICards(),
		Pipeline:   DefaultPipeline(),
		Reps:       DefaultReps(),
		Activities: DefaultActivities(),
	}
}

// Header extracts the header section.
func (d *Dataset) Header() HeaderData {
	if d == nil {
		return HeaderData{}
	}
	return HeaderData{
		User:          d.User,
		Notifications: d.Notifications,
		LastUpdated:   d.LastUpdated,
	}
}

var (
	datasetSchemaOnce sync.Once
	datasetSchema     *jsonschema.Schema
	datasetSchemaErr  error
)

func compiledDatasetSchema() (*jsonschema.Schema, error) {
	datasetSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(datasetSchemaName, bytes.NewReader(datasetSchemaJSON)); err != nil {
			datasetSchemaErr = goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: load dataset schema")
			return
		}
		datasetSchema, datasetSchemaErr = compiler.Compile(datasetSchemaName)
		if datasetSchemaErr != nil {
			datasetSchemaErr = goerrors.Wrap(datasetSchemaErr, goerrors.CategoryInternal, "salesboard: compile dataset schema")
		}
	})
	return datasetSchema, datasetSchemaErr
}

// ValidateDatasetPayload checks a generic decoded payload against the
// dataset schema. Enum-like fields are plain strings so unknown values
// render with fallback styles instead of failing.
func ValidateDatasetPayload(payload any) error {
	schema, err := compiledDatasetSchema()
	if err != nil {
		return err
	}
	normalized, err := normalizePayload(payload)
	if err != nil {
		return err
	}
	if err := schema.Validate(normalized); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "salesboard: dataset failed validation").
			WithTextCode("INVALID_DATASET")
	}
	return nil
}

// DecodeDataset reads a YAML or JSON dataset, validates it and decodes it.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, goerrors.New("salesboard: dataset is empty", goerrors.CategoryBadInput)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "salesboard: parse dataset")
	}
	if err := ValidateDatasetPayload(raw); err != nil {
		return nil, err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "salesboard: encode dataset")
	}
	var doc Dataset
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "salesboard: decode dataset")
	}
	return &doc, nil
}

// ReadDataset loads a dataset file from disk.
func ReadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "salesboard: dataset "+path+" not found")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: open dataset "+path)
	}
	defer f.Close()
	doc, err := DecodeDataset(f)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// normalizePayload round-trips through encoding/json so the validator sees
// JSON types (map[string]any, []any, float64) regardless of the decoder.
func normalizePayload(payload any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "salesboard: marshal dataset payload")
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "salesboard: normalize dataset payload")
	}
	return out, nil
}
