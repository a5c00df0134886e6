package engine

import "log/slog"

// Column names read by the queries.
const (
	colMaxEvals       = "maxevals"
	colMinStep        = "minstep"
	colInitStep       = "initstep"
	colEvaluatedCases = "EvaluatedCases"
	colStepLength     = "StepLength"
	colBestCaseID     = "TentativeBestCaseID"
	colBestCaseOF     = "TentativeBestCaseOFValue"
	colIteration      = "Iteration"
	colCaseID         = "CaseID"
	colEvaluated      = "Evaluated"
	colReaVarID       = "ReaVarID"
	colReaVarVal      = "ReaVarVal"
	colUUID           = "UUID"
	colName           = "name"
)

// VariableValue is one variable of the tentative best case.
type VariableValue struct {
	Name  string
	Value float64
}

// Reader answers the optimizer progress queries over an Index.
//
// Every query is computed from the current tables on each call. When the table
// a query needs is missing, or the column is empty, the query returns its zero
// value: 0, 0.0, "" or an empty slice. Like Index, a Reader is single-owner.
type Reader struct {
	idx *Index
}

// NewReader scans dir and returns a Reader over it.
func NewReader(dir string, log *slog.Logger) *Reader {
	return &Reader{idx: NewIndex(dir, log)}
}

// NewReaderFromIndex wraps an existing Index.
func NewReaderFromIndex(idx *Index) *Reader {
	return &Reader{idx: idx}
}

// Index returns the underlying Index.
func (r *Reader) Index() *Index {
	return r.idx
}

// Refresh rescans the log directory. Results of earlier queries are stale
// afterwards and must be re-read.
func (r *Reader) Refresh() error {
	return r.idx.Refresh()
}

func (r *Reader) settings() *Table     { return r.idx.Table(RoleSettings) }
func (r *Reader) optimization() *Table { return r.idx.Table(RoleOptimization) }

// MaxSimulations is the evaluation budget from the settings log.
func (r *Reader) MaxSimulations() int {
	return toInt(r.settings().first(colMaxEvals))
}

// CurrentSimulations is the number of evaluated cases so far.
func (r *Reader) CurrentSimulations() int {
	return toInt(r.optimization().last(colEvaluatedCases))
}

func (r *Reader) MinStepLength() float64 {
	return toFloat(r.settings().first(colMinStep))
}

func (r *Reader) MaxStepLength() float64 {
	return toFloat(r.settings().first(colInitStep))
}

func (r *Reader) CurrentStepLength() float64 {
	return toFloat(r.optimization().last(colStepLength))
}

// TentativeBestUUID is the identifier of the current best case.
func (r *Reader) TentativeBestUUID() string {
	return r.optimization().last(colBestCaseID)
}

func (r *Reader) TentativeBestObjectiveValue() float64 {
	return toFloat(r.optimization().last(colBestCaseOF))
}

func (r *Reader) CurrentIteration() int {
	return toInt(r.optimization().last(colIteration))
}

// ObjectiveFunctionHistory returns the tentative best objective value of every
// optimization row, oldest first.
func (r *Reader) ObjectiveFunctionHistory() []float64 {
	values := r.optimization().values(colBestCaseOF)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = toFloat(v)
	}
	return out
}

// TentativeBestVariableValues joins the cases log against the tentative best
// case id. Every evaluated row of that case yields one entry, in cases-log row
// order, with the variable id resolved to its name through the uuid map.
// Duplicates are kept.
func (r *Reader) TentativeBestVariableValues() []VariableValue {
	out := []VariableValue{}
	cases := r.idx.Table(RoleCases)
	if cases == nil || r.optimization() == nil {
		return out
	}

	bestID := r.TentativeBestUUID()
	caseIDs := cases.values(colCaseID)
	evaluated := cases.values(colEvaluated)
	varIDs := cases.values(colReaVarID)
	varVals := cases.values(colReaVarVal)

	names := r.propertyNames()
	for i, id := range caseIDs {
		if id != bestID || at(evaluated, i) != "true" {
			continue
		}
		out = append(out, VariableValue{
			Name:  names.resolve(at(varIDs, i)),
			Value: toFloat(at(varVals, i)),
		})
	}
	return out
}

// propertyNames pairs the UUID and name columns of the uuid map.
type propertyNames struct {
	uuids []string
	names []string
}

func (r *Reader) propertyNames() propertyNames {
	m := r.idx.Table(RoleUUIDMap)
	return propertyNames{uuids: m.values(colUUID), names: m.values(colName)}
}

// resolve returns the name of the first entry with the given uuid, or "".
func (p propertyNames) resolve(uuid string) string {
	for i, u := range p.uuids {
		if u == uuid {
			return at(p.names, i)
		}
	}
	return ""
}

// at is a bounds-checked index; missing columns read as "".
func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}
