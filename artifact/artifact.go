package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Ingestion is produced by the ingestion stage and points at the datasets
// to validate.
type Ingestion struct {
	TrainedFilePath string `yaml:"trained_file_path" json:"trained_file_path"`
	TestFilePath    string `yaml:"test_file_path" json:"test_file_path"`
}

func (i Ingestion) Verify() error {
	if i.TrainedFilePath == "" {
		return errors.Newf("ingestion artifact is missing trained_file_path")
	}
	if i.TestFilePath == "" {
		return errors.Newf("ingestion artifact is missing test_file_path")
	}
	return nil
}

// Validation is the outcome of a validation run, consumed by the training
// stage. Status is true iff Message is empty.
type Validation struct {
	Status  bool   `yaml:"validation_status" json:"validation_status"`
	Message string `yaml:"message" json:"message"`
	// DriftReportFilePath is always empty; drift detection is disabled.
	DriftReportFilePath string `yaml:"drift_report_file_path" json:"drift_report_file_path"`
}

// NewValidation builds a Validation from the accumulated failure message.
func NewValidation(message string) Validation {
	message = strings.TrimSpace(message)
	return Validation{
		Status:  message == "",
		Message: message,
	}
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

func formatOf(path string) format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}
	return formatYAML
}

// ReadIngestion reads an ingestion artifact. Files ending in .json are
// decoded as JSON, everything else as YAML.
func ReadIngestion(path string) (Ingestion, error) {
	var ret Ingestion
	b, err := os.ReadFile(path)
	if err != nil {
		return ret, errors.Wrapf(err, "error reading ingestion artifact")
	}
	switch formatOf(path) {
	case formatJSON:
		err = json.Unmarshal(b, &ret)
	default:
		err = yaml.Unmarshal(b, &ret)
	}
	if err != nil {
		return ret, errors.Wrapf(err, "error decoding ingestion artifact %s", path)
	}
	return ret, ret.Verify()
}

// Write serializes v to path, creating parent directories as needed.
func Write(path string, v interface{}) error {
	var b []byte
	var err error
	switch formatOf(path) {
	case formatJSON:
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	default:
		b, err = yaml.Marshal(v)
	}
	if err != nil {
		return errors.Wrapf(err, "error encoding artifact")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "error creating artifact directory")
		}
	}
	return errors.Wrapf(os.WriteFile(path, b, 0o644), "error writing artifact")
}
