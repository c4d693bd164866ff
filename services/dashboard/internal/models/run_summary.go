package models

import (
	"encoding/json"
	"time"
)

// KPI is one headline metric. Value is an int for counts and a formatted
// string otherwise.
type KPI struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// RunSummary describes one completed prepare run.
type RunSummary struct {
	RunID           string    `json:"run_id"`
	InputFile       string    `json:"input_file"`
	InputChecksum   string    `json:"input_checksum"`
	TargetResidence string    `json:"target_residence"`
	ReferenceTime   time.Time `json:"reference_time"`
	RawRows         int       `json:"raw_rows"`
	FilteredRows    int       `json:"filtered_rows"`
	EnrichedRows    int       `json:"enriched_rows"`
	SkillRows       int       `json:"skill_rows"`
	ActiveJobs      int       `json:"active_jobs"`
	KPIs            []KPI     `json:"kpis"`
	Outputs         []string  `json:"outputs"`
	CompletedAt     time.Time `json:"completed_at"`
}

func (s *RunSummary) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *RunSummary) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
