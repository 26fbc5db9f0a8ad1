package report

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Reporter interface {
	Report(obj ReportableObject)
	Close()
}

type CombinedReporter struct {
	Reporters []Reporter
}

func (c CombinedReporter) Report(obj ReportableObject) {
	for _, r := range c.Reporters {
		r.Report(obj)
	}
}

func (c CombinedReporter) Close() {
	for _, r := range c.Reporters {
		r.Close()
	}
}

// LogReporter reports to `zerolog`.
type LogReporter struct {
	zerolog.Logger
}

func (l LogReporter) Report(obj ReportableObject) {
	switch obj := obj.(type) {
	case ColumnCountMismatch:
		l.Warn().
			Str("dataset", string(obj.Dataset)).
			Int("expected_columns", obj.Expected).
			Int("actual_columns", obj.Actual).
			Msgf("column count mismatch")
	case MissingColumns:
		l.Warn().
			Str("dataset", string(obj.Dataset)).
			Strs("missing_columns", obj.Columns).
			Msgf("missing columns")
	case StatusReport:
		l.Info().Msg(obj.Info)
	default:
		l.Error().
			Str("type", fmt.Sprintf("%T", obj)).
			Msgf("unknown object type")
	}
}

func (l LogReporter) Close() {
}

// CollectingReporter keeps every reported object in memory.
type CollectingReporter struct {
	Objects []ReportableObject
}

func (c *CollectingReporter) Report(obj ReportableObject) {
	c.Objects = append(c.Objects, obj)
}

func (c *CollectingReporter) Close() {
}
