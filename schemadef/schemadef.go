// Package schemadef loads the schema definition datasets are validated
// against.
package schemadef

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var documentSchema []byte

const documentSchemaURL = "schemadef://schema.json"

var compileOnce struct {
	sync.Once
	schema *jsonschema.Schema
	err    error
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
		if err != nil {
			compileOnce.err = errors.Wrap(err, "error parsing schema document definition")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, doc); err != nil {
			compileOnce.err = errors.Wrap(err, "error adding schema document definition")
			return
		}
		compileOnce.schema, compileOnce.err = c.Compile(documentSchemaURL)
	})
	return compileOnce.schema, compileOnce.err
}

// Column is an expected column. Type is informational only.
type Column struct {
	Name string
	Type string
}

// UnmarshalYAML accepts either a bare column name or a single `name: type`
// mapping.
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.Name = value.Value
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return errors.Newf("line %d: column mapping must have exactly one entry", value.Line)
		}
		c.Name = value.Content[0].Value
		c.Type = value.Content[1].Value
		return nil
	default:
		return errors.Newf("line %d: unexpected column definition", value.Line)
	}
}

// Schema is the ordered list of expected columns along with metadata that
// downstream stages use.
type Schema struct {
	Columns            []Column `yaml:"columns"`
	NumericalColumns   []string `yaml:"numerical_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`
	DropColumns        []string `yaml:"drop_columns"`
}

// ColumnNames returns the expected column names in schema order.
func (s Schema) ColumnNames() []string {
	ret := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		ret[i] = c.Name
	}
	return ret
}

// Load reads and checks the schema definition at path.
func Load(path string) (Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, errors.Wrapf(err, "error reading schema file")
	}
	return Parse(b)
}

// Parse decodes a YAML schema definition.
func Parse(b []byte) (Schema, error) {
	var raw interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Schema{}, errors.Wrap(err, "error parsing schema file")
	}
	if err := checkShape(raw); err != nil {
		return Schema{}, err
	}
	var s Schema
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Schema{}, errors.Wrap(err, "error decoding schema file")
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if _, ok := seen[c.Name]; ok {
			return Schema{}, errors.Newf("duplicate column %q in schema", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return s, nil
}

func checkShape(raw interface{}) error {
	compiled, err := compiledDocumentSchema()
	if err != nil {
		return err
	}
	// Round trip through JSON so the validator sees json.Number and
	// map[string]any regardless of how YAML typed the scalars.
	asJSON, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return errors.Wrap(err, "schema file is not a JSON-compatible document")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return errors.Wrap(err, "error re-reading schema file")
	}
	if err := compiled.Validate(doc); err != nil {
		return errors.Wrap(err, "invalid schema file")
	}
	return nil
}

// jsonCompatible converts the map[interface{}]interface{} values yaml.v3
// produces for non-string keys (`2023: int`) into string-keyed maps.
func jsonCompatible(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		ret := make(map[string]interface{}, len(v))
		for k, e := range v {
			ret[fmt.Sprint(k)] = jsonCompatible(e)
		}
		return ret
	case map[string]interface{}:
		for k, e := range v {
			v[k] = jsonCompatible(e)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = jsonCompatible(e)
		}
		return v
	default:
		return v
	}
}
