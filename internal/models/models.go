package models

import "time"

type DashboardData struct {
	Progress    Progress       `json:"progress"`
	Best        BestCase       `json:"best"`
	History     []HistoryPoint `json:"objective_history"`
	Files       []LogFile      `json:"files"`
	Directory   string         `json:"directory"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}

type Progress struct {
	MaxSimulations     int     `json:"max_simulations"`
	CurrentSimulations int     `json:"current_simulations"`
	Fraction           float64 `json:"fraction"`
	MinStepLength      float64 `json:"min_step_length"`
	MaxStepLength      float64 `json:"max_step_length"`
	CurrentStepLength  float64 `json:"current_step_length"`
	CurrentIteration   int     `json:"current_iteration"`
}

type BestCase struct {
	UUID           string          `json:"uuid"`
	ObjectiveValue float64         `json:"objective_value"`
	Variables      []VariableValue `json:"variables"`
}

type VariableValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// HistoryPoint is one sample of the objective function plot.
type HistoryPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

type LogFile struct {
	Role     string   `json:"role"`
	Path     string   `json:"path"`
	Headers  []string `json:"headers"`
	Rows     int      `json:"rows"`
	Dropped  int      `json:"dropped"`
	Checksum string   `json:"checksum"`
}
