package cmdutil

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/usvisa/datacheck/artifact"
	"github.com/usvisa/datacheck/validation"
)

type inputConfig struct {
	schemaFilePath        string
	trainedFilePath       string
	testFilePath          string
	ingestionArtifactPath string
	delimiter             string
}

var inputCfg = inputConfig{}

func RegisterInputFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&inputCfg.schemaFilePath,
		"schema",
		validation.DefaultSchemaFilePath,
		"path to the schema definition",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.trainedFilePath,
		"train",
		"",
		"location of the training dataset (path, s3://bucket/key or gs://bucket/key)",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.testFilePath,
		"test",
		"",
		"location of the testing dataset (path, s3://bucket/key or gs://bucket/key)",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.ingestionArtifactPath,
		"ingestion-artifact",
		"",
		"path to the ingestion artifact naming the datasets; alternative to --train and --test",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.delimiter,
		"delimiter",
		",",
		`field delimiter of the datasets; "tab" for tab separated`,
	)
	cmd.MarkFlagsMutuallyExclusive("ingestion-artifact", "train")
	cmd.MarkFlagsMutuallyExclusive("ingestion-artifact", "test")
}

// LoadIngestion returns the dataset locations from either the ingestion
// artifact or the --train and --test flags.
func LoadIngestion() (artifact.Ingestion, error) {
	if inputCfg.ingestionArtifactPath != "" {
		return artifact.ReadIngestion(inputCfg.ingestionArtifactPath)
	}
	ing := artifact.Ingestion{
		TrainedFilePath: inputCfg.trainedFilePath,
		TestFilePath:    inputCfg.testFilePath,
	}
	if err := ing.Verify(); err != nil {
		return ing, errors.WithHint(err, "set --train and --test, or --ingestion-artifact")
	}
	return ing, nil
}

func ValidationConfig() (validation.Config, error) {
	cfg := validation.DefaultConfig()
	cfg.SchemaFilePath = inputCfg.schemaFilePath
	switch d := inputCfg.delimiter; {
	case d == "tab" || d == `\t`:
		cfg.Delimiter = '\t'
	case utf8.RuneCountInString(d) == 1:
		cfg.Delimiter, _ = utf8.DecodeRuneInString(d)
	default:
		return cfg, errors.Newf("delimiter must be a single character, got %q", d)
	}
	return cfg, nil
}
