package squery

// Result is the outcome of an [Output] stage.
type Result bool

const (
	Fail    Result = false
	Success Result = true
)

// Output consumes a table through ordered stages. [Dump] calls WriteSchema,
// Preprocess and WriteRecords in turn and stops at the first Fail; only when
// all three succeed does it ask for the sink's artifact.
type Output[R any] interface {
	// WriteSchema captures column headers.
	WriteSchema(t *Table) Result
	// Preprocess lets layout-sensitive sinks look at all the data before
	// anything is rendered.
	Preprocess(t *Table) Result
	// WriteRecords renders every row reachable through t.Rows().
	WriteRecords(t *Table) Result
	// OutputResult returns the rendered artifact.
	OutputResult() R
}

// Dump drives out over t. It reports false, with the zero R, when any stage
// fails.
func Dump[R any](t *Table, out Output[R]) (R, bool) {
	var zero R
	if out.WriteSchema(t) == Fail {
		return zero, false
	}
	if out.Preprocess(t) == Fail {
		return zero, false
	}
	if out.WriteRecords(t) == Fail {
		return zero, false
	}
	return out.OutputResult(), true
}
