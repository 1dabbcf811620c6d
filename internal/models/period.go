package models

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	DefaultFlow         = 3

	MinFlow = 1
	MaxFlow = 5

	MinPeriodLength = 1
	MaxPeriodLength = 14
)

// PeriodRecord describes one day inside a period run. Every record of
// the same run carries the run's total length, and exactly one record
// in the run has IsStart set.
type PeriodRecord struct {
	IsPeriod bool `json:"isPeriod"`
	IsStart  bool `json:"isStart"`
	Flow     int  `json:"flow"`
	Length   int  `json:"length"`
}

// PeriodLog maps date keys (YYYY-MM-DD) to period records.
type PeriodLog map[string]PeriodRecord
