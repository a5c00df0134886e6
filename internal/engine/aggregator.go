package engine

import (
	"optmonitor/internal/models"
	"strconv"
	"time"
)

// Files lists the bound roles in Roles order.
func (idx *Index) Files() []models.LogFile {
	files := make([]models.LogFile, 0, numRoles)
	for _, role := range Roles {
		b := idx.bindings[role]
		if b == nil {
			continue
		}
		files = append(files, models.LogFile{
			Role:     role.String(),
			Path:     b.path,
			Headers:  b.table.Headers(),
			Rows:     b.table.Rows(),
			Dropped:  b.table.Dropped(),
			Checksum: strconv.FormatUint(b.checksum, 16),
		})
	}
	return files
}

// Aggregate runs every query once and packs the results into a snapshot
// that can be handed to other goroutines.
func (r *Reader) Aggregate(now time.Time) *models.DashboardData {
	// 1. Progress
	p := models.Progress{
		MaxSimulations:     r.MaxSimulations(),
		CurrentSimulations: r.CurrentSimulations(),
		MinStepLength:      r.MinStepLength(),
		MaxStepLength:      r.MaxStepLength(),
		CurrentStepLength:  r.CurrentStepLength(),
		CurrentIteration:   r.CurrentIteration(),
	}
	if p.MaxSimulations > 0 {
		p.Fraction = float64(p.CurrentSimulations) / float64(p.MaxSimulations)
	}

	// 2. Tentative best case
	vars := r.TentativeBestVariableValues()
	best := models.BestCase{
		UUID:           r.TentativeBestUUID(),
		ObjectiveValue: r.TentativeBestObjectiveValue(),
		Variables:      make([]models.VariableValue, len(vars)),
	}
	for i, v := range vars {
		best.Variables[i] = models.VariableValue{Name: v.Name, Value: v.Value}
	}

	// 3. Objective history (x axis = row position)
	values := r.ObjectiveFunctionHistory()
	history := make([]models.HistoryPoint, len(values))
	for i, v := range values {
		history[i] = models.HistoryPoint{Index: i, Value: v}
	}

	return &models.DashboardData{
		Progress:    p,
		Best:        best,
		History:     history,
		Files:       r.idx.Files(),
		Directory:   r.idx.Dir(),
		RefreshedAt: now.UTC(),
	}
}
