// Package validation checks the datasets produced by ingestion against the
// schema definition before they are used for training.
package validation

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/usvisa/datacheck/artifact"
	"github.com/usvisa/datacheck/dataset"
	"github.com/usvisa/datacheck/report"
	"github.com/usvisa/datacheck/schemadef"
)

const DefaultSchemaFilePath = "config/schema.yaml"

// Message fragments appended to the validation message on failure.
const (
	TrainingColumnCountMismatch = "Training dataframe column mismatch."
	TestingColumnCountMismatch  = "Testing dataframe column mismatch."
	TrainingMissingColumns      = "Training dataframe missing columns."
	TestingMissingColumns       = "Testing dataframe missing columns."
)

const (
	checkColumnCount  = "column_count"
	checkColumnsExist = "columns_exist"
	statusPassed      = "passed"
	statusFailed      = "failed"
)

const (
	opLoadSchema = "load schema"
	opLoadTable  = "load table"
	opCheck      = "check"
)

var (
	validationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datacheck",
		Subsystem: "validation",
		Name:      "runs_total",
		Help:      "Number of completed validation runs by outcome.",
	}, []string{"status"})
	checkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datacheck",
		Subsystem: "validation",
		Name:      "check_failures_total",
		Help:      "Number of failed checks by dataset and check.",
	}, []string{"dataset", "check"})
	rowsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "datacheck",
		Subsystem: "dataset",
		Name:      "rows_loaded_total",
		Help:      "Number of dataset rows loaded for validation.",
	})
)

type Config struct {
	SchemaFilePath string
	Delimiter      rune
}

func DefaultConfig() Config {
	return Config{
		SchemaFilePath: DefaultSchemaFilePath,
		Delimiter:      dataset.DefaultDelimiter,
	}
}

// Validator checks the training and testing datasets of an ingestion
// artifact against a schema loaded at construction.
type Validator struct {
	logger    zerolog.Logger
	reporter  report.Reporter
	ingestion artifact.Ingestion
	cfg       Config
	schema    schemadef.Schema
}

// New loads the schema named by cfg. A missing or malformed schema returns a
// KindConfig error.
func New(
	logger zerolog.Logger, reporter report.Reporter, ingestion artifact.Ingestion, cfg Config,
) (*Validator, error) {
	s, err := schemadef.Load(cfg.SchemaFilePath)
	if err != nil {
		return nil, newError(KindConfig, opLoadSchema, err)
	}
	logger.Debug().
		Str("schema", cfg.SchemaFilePath).
		Strs("columns", s.ColumnNames()).
		Int("numerical_columns", len(s.NumericalColumns)).
		Int("categorical_columns", len(s.CategoricalColumns)).
		Msgf("loaded schema")
	return NewWithSchema(logger, reporter, ingestion, cfg, s), nil
}

// NewWithSchema builds a Validator around an already loaded schema.
func NewWithSchema(
	logger zerolog.Logger,
	reporter report.Reporter,
	ingestion artifact.Ingestion,
	cfg Config,
	s schemadef.Schema,
) *Validator {
	return &Validator{
		logger:    logger,
		reporter:  reporter,
		ingestion: ingestion,
		cfg:       cfg,
		schema:    s,
	}
}

func (v *Validator) Schema() schemadef.Schema {
	return v.schema
}

// ValidateColumnCount returns whether t has as many columns as the schema.
func (v *Validator) ValidateColumnCount(t *dataset.Table) bool {
	return v.columnCountMatches(v.logger, t)
}

func (v *Validator) columnCountMatches(logger zerolog.Logger, t *dataset.Table) bool {
	status := len(t.Columns) == len(v.schema.Columns)
	logger.Info().Bool("status", status).Msgf("required column count correct")
	return status
}

// ValidateColumnsExist returns whether every schema column is present in t.
// Extra columns and ordering are ignored. Missing columns are logged.
func (v *Validator) ValidateColumnsExist(t *dataset.Table) bool {
	missing := v.missingColumns(t)
	if len(missing) > 0 {
		v.logger.Info().Strs("missing_columns", missing).Msgf("missing columns")
	}
	return len(missing) == 0
}

// missingColumns returns the schema columns absent from t, in schema order.
func (v *Validator) missingColumns(t *dataset.Table) []string {
	present := t.ColumnSet()
	var missing []string
	for _, c := range v.schema.Columns {
		if _, ok := present[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// LoadTable reads the delimited file at path. Unreadable or unparsable files
// return a KindDataRead error.
func (v *Validator) LoadTable(ctx context.Context, path string) (*dataset.Table, error) {
	return v.loadTable(ctx, v.logger, path)
}

func (v *Validator) loadTable(
	ctx context.Context, logger zerolog.Logger, path string,
) (*dataset.Table, error) {
	loc, err := dataset.ParseLocation(path)
	if err != nil {
		return nil, newError(KindDataRead, opLoadTable, err)
	}
	opts := dataset.DefaultReadOptions()
	if v.cfg.Delimiter != 0 {
		opts.Delimiter = v.cfg.Delimiter
	}
	t, err := dataset.Load(ctx, logger, loc, opts)
	if err != nil {
		return nil, newError(KindDataRead, opLoadTable, err)
	}
	rowsLoaded.Add(float64(t.NumRows()))
	return t, nil
}

type namedTable struct {
	name              report.Dataset
	table             *dataset.Table
	countMismatchMsg  string
	missingColumnsMsg string
}

// Run loads both datasets, runs every check against each and returns the
// validation artifact. All checks run regardless of earlier failures.
func (v *Validator) Run(ctx context.Context) (artifact.Validation, error) {
	if len(v.schema.Columns) == 0 {
		return artifact.Validation{}, newError(
			KindValidation,
			opCheck,
			errors.AssertionFailedf("validator has no schema columns loaded"),
		)
	}
	logger := v.logger.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().Msgf("starting data validation")

	train, err := v.loadTable(ctx, logger, v.ingestion.TrainedFilePath)
	if err != nil {
		return artifact.Validation{}, err
	}
	test, err := v.loadTable(ctx, logger, v.ingestion.TestFilePath)
	if err != nil {
		return artifact.Validation{}, err
	}
	tables := []namedTable{
		{
			name:              report.Training,
			table:             train,
			countMismatchMsg:  TrainingColumnCountMismatch,
			missingColumnsMsg: TrainingMissingColumns,
		},
		{
			name:              report.Testing,
			table:             test,
			countMismatchMsg:  TestingColumnCountMismatch,
			missingColumnsMsg: TestingMissingColumns,
		},
	}

	var fragments []string
	for _, nt := range tables {
		if !v.columnCountMatches(logger.With().Str("dataset", string(nt.name)).Logger(), nt.table) {
			v.reporter.Report(report.ColumnCountMismatch{
				Dataset:  nt.name,
				Expected: len(v.schema.Columns),
				Actual:   len(nt.table.Columns),
			})
			checkFailures.WithLabelValues(string(nt.name), checkColumnCount).Inc()
			fragments = append(fragments, nt.countMismatchMsg)
		}
	}
	// Missing columns are logged by the reporter.
	for _, nt := range tables {
		if missing := v.missingColumns(nt.table); len(missing) > 0 {
			v.reporter.Report(report.MissingColumns{Dataset: nt.name, Columns: missing})
			checkFailures.WithLabelValues(string(nt.name), checkColumnsExist).Inc()
			fragments = append(fragments, nt.missingColumnsMsg)
		}
	}

	res := artifact.NewValidation(strings.Join(fragments, " "))
	if res.Status {
		validationRuns.WithLabelValues(statusPassed).Inc()
	} else {
		validationRuns.WithLabelValues(statusFailed).Inc()
	}
	logger.Info().
		Bool("validation_status", res.Status).
		Str("message", res.Message).
		Str("drift_report_file_path", res.DriftReportFilePath).
		Msgf("data validation artifact")
	return res, nil
}
