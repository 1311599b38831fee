package rubric

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the scoring rubric handed to the judgment collaborator. The
// criteria interpretation happens on the model side; locally the rubric is
// an opaque-but-parseable document whose pass threshold is surfaced to the
// operator.
type Definition struct {
	Version       string      `yaml:"version"`
	PassThreshold float64     `yaml:"pass_threshold"`
	Criteria      []Criterion `yaml:"criteria"`

	raw string
}

type Criterion struct {
	Name        string  `yaml:"name"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description"`
}

const defaultRubricYAML = `version: v1
pass_threshold: 75
criteria:
  - name: reproduction
    weight: 25
    description: Reproduction steps are present, ordered and actionable.
  - name: root_cause
    weight: 25
    description: Root cause or current best finding is stated explicitly.
  - name: customer_communication
    weight: 20
    description: Customer-facing reply and SLA handling are covered, especially for S0/S1.
  - name: policy_compliance
    weight: 15
    description: No suggested step violates data-security or customer policy.
  - name: accuracy
    weight: 15
    description: No fabricated logs, IDs or other hallucinated evidence.
`

// Default returns the built-in rubric.
func Default() Definition {
	def, err := Parse([]byte(defaultRubricYAML))
	if err != nil {
		panic(fmt.Sprintf("built-in rubric is invalid: %v", err))
	}
	return def
}

// Parse decodes a rubric document, keeping the raw YAML for prompt
// composition.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("invalid rubric YAML: %w", err)
	}
	if def.PassThreshold == 0 {
		def.PassThreshold = 75
	}
	if def.Version == "" {
		def.Version = "v1"
	}
	def.raw = string(data)
	return def, nil
}

// Load reads a rubric file from disk.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading rubric %s: %w", path, err)
	}
	return Parse(data)
}

// YAML returns the raw rubric document as given to Parse.
func (d Definition) YAML() string {
	return d.raw
}
