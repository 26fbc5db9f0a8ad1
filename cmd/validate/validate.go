package validate

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/usvisa/datacheck/artifact"
	"github.com/usvisa/datacheck/cmd/internal/cmdutil"
	"github.com/usvisa/datacheck/report"
	"github.com/usvisa/datacheck/validation"
)

func Command() *cobra.Command {
	var (
		artifactOut   string
		failOnInvalid bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate ingested datasets against the schema.",
		Long:  `Validate checks that the training and testing datasets have the column count and column names declared by the schema, and writes the validation artifact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cmdutil.Logger()
			if err != nil {
				return err
			}
			cmdutil.RunMetricsServer(logger)

			reporter := report.CombinedReporter{}
			reporter.Reporters = append(reporter.Reporters, &report.LogReporter{Logger: logger})
			defer reporter.Close()

			ingestion, err := cmdutil.LoadIngestion()
			if err != nil {
				return err
			}
			cfg, err := cmdutil.ValidationConfig()
			if err != nil {
				return err
			}
			v, err := validation.New(logger, reporter, ingestion, cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			reporter.Report(report.StatusReport{Info: "data validation in progress"})
			res, err := v.Run(ctx)
			if err != nil {
				return errors.Wrapf(err, "error validating datasets")
			}
			if artifactOut != "" {
				if err := artifact.Write(artifactOut, res); err != nil {
					return err
				}
				logger.Info().Str("path", artifactOut).Msgf("wrote validation artifact")
			}
			reporter.Report(report.StatusReport{Info: "data validation complete"})
			if failOnInvalid && !res.Status {
				return errors.Newf("datasets failed validation: %s", res.Message)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(
		&artifactOut,
		"artifact-out",
		"",
		"if set, path to write the validation artifact to (.json for JSON, YAML otherwise)",
	)
	cmd.PersistentFlags().BoolVar(
		&failOnInvalid,
		"fail-on-invalid",
		false,
		"exit with an error if the datasets fail validation",
	)
	cmdutil.RegisterInputFlags(cmd)
	cmdutil.RegisterLoggerFlags(cmd)
	cmdutil.RegisterMetricsFlags(cmd)
	return cmd
}
