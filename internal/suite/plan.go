package suite

import (
	"bytes"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"qrconform/internal/matrix"
)

// Case identifies one comparison run: a payload encoded at one
// error-correction level. Immutable.
type Case struct {
	Name    string
	Payload string
	Level   matrix.ECLevel
}

// Plan is an ordered, fixed list of cases. Cases run sequentially in
// list order.
type Plan struct {
	Name  string
	Cases []Case
}

// planSchema constrains plan files. The YAML is checked against this CUE
// schema before decoding, so shape errors (wrong types, bad level names)
// are reported with positions instead of surfacing as zero values.
const planSchema = `
name: string & !=""
cases: [...{
	name?: string & !=""
	payload: string
	level: "L" | "M" | "Q" | "H"
}]
`

// planFile and caseFile are the YAML DTOs for plan files.
type planFile struct {
	Name  string     `yaml:"name"`
	Cases []caseFile `yaml:"cases"`
}

type caseFile struct {
	Name    string `yaml:"name,omitempty"`
	Payload string `yaml:"payload"`
	Level   string `yaml:"level"`
}

// DefaultPlan is the fixed built-in suite, run when no plan file is
// given.
func DefaultPlan() *Plan {
	return &Plan{
		Name: "builtin",
		Cases: []Case{
			{Name: "hello-medium", Payload: "HELLO", Level: matrix.ECMedium},
			{Name: "test123-low", Payload: "Test123", Level: matrix.ECLow},
			{Name: "url-quartile", Payload: "https://example.com", Level: matrix.ECQuartile},
		},
	}
}

// LoadPlan reads and parses a plan YAML file. The file is validated
// against the CUE schema, then decoded strictly (unknown fields are
// typos, not extensions).
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	if err := validatePlanSchema(path, data); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}

	var pf planFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to parse plan YAML: %w", err)
	}

	if len(pf.Cases) == 0 {
		return nil, fmt.Errorf("invalid plan %s: cases list is required and must be non-empty", path)
	}

	plan := &Plan{Name: pf.Name}
	for i, cf := range pf.Cases {
		level, err := matrix.ParseECLevel(cf.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid plan %s: cases[%d]: %w", path, i, err)
		}
		name := cf.Name
		if name == "" {
			name = fmt.Sprintf("case-%02d", i+1)
		}
		plan.Cases = append(plan.Cases, Case{Name: name, Payload: cf.Payload, Level: level})
	}
	return plan, nil
}

// validatePlanSchema unifies the YAML document with the plan schema and
// requires the result to be concrete.
func validatePlanSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(planSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("plan schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return err
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
