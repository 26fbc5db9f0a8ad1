package report

// ReportableObject is a finding which can be sent to a Reporter.
type ReportableObject interface{}

// Dataset names the dataset a finding is about.
type Dataset string

const (
	Training Dataset = "training"
	Testing  Dataset = "testing"
)

// ColumnCountMismatch represents a dataset whose column count differs from
// the schema.
type ColumnCountMismatch struct {
	Dataset  Dataset
	Expected int
	Actual   int
}

// MissingColumns represents schema columns absent from a dataset.
type MissingColumns struct {
	Dataset Dataset
	Columns []string
}

type StatusReport struct {
	Info string
}
