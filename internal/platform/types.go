package platform

import "time"

// DataRef identifies a dataset consumed or produced by a dataflow.
type DataRef struct {
	DataSourceID string `json:"dataSourceId"`
	Name         string `json:"name,omitempty"`
}

// Execution describes a single dataflow run as reported by the platform.
type Execution struct {
	ID        string     `json:"id,omitempty"`
	State     string     `json:"state,omitempty"`
	BeginTime *time.Time `json:"beginTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// Dataflow is a transformation job record as returned by the platform API.
// Status-related fields frequently disagree with each other across API
// versions; lineage.ResolveStatus applies the canonical priority order.
type Dataflow struct {
	ID                      string     `json:"id"`
	Name                    string     `json:"name,omitempty"`
	Description             string     `json:"description,omitempty"`
	Owner                   string     `json:"responsibleUserName,omitempty"`
	Status                  string     `json:"status,omitempty"`
	RunState                string     `json:"runState,omitempty"`
	Enabled                 *bool      `json:"enabled,omitempty"`
	Inputs                  []DataRef  `json:"inputs,omitempty"`
	Outputs                 []DataRef  `json:"outputs,omitempty"`
	LastExecution           *Execution `json:"lastExecution,omitempty"`
	LastSuccessfulExecution *Execution `json:"lastSuccessfulExecution,omitempty"`
	ExecutionCount          int        `json:"executionCount,omitempty"`
	ExecutionSuccessCount   int        `json:"executionSuccessCount,omitempty"`
	LastUpdated             *time.Time `json:"lastUpdated,omitempty"`
}

// SuccessRate returns the fraction of successful executions in [0,1],
// or 0 when the dataflow has never run.
func (d Dataflow) SuccessRate() float64 {
	if d.ExecutionCount == 0 {
		return 0
	}
	return float64(d.ExecutionSuccessCount) / float64(d.ExecutionCount)
}

// Dataset is a tabular data resource record.
type Dataset struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Rows      int64      `json:"rows,omitempty"`
	Columns   int        `json:"columns,omitempty"`
	Owner     string     `json:"ownerName,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Card is a visualization backed by a dataset.
type Card struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Type      string `json:"type,omitempty"`
	DatasetID string `json:"datasetId,omitempty"`
	Owner     string `json:"ownerName,omitempty"`
}
