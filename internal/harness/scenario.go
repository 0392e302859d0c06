package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wordseed/internal/model"
)

// Step operations.
const (
	OpSeed   = "seed"
	OpSample = "sample"
)

// Scenario defines a reproducibility scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Secret is the hex HMAC key.
	Secret string `yaml:"secret"`

	// Pool and Lexicon are document paths, relative to the scenario file.
	Pool    string `yaml:"pool"`
	Lexicon string `yaml:"lexicon"`

	// AllowLexiconDrift loads the catalog leniently.
	AllowLexiconDrift bool `yaml:"allow_lexicon_drift,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions run after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is exactly one of Seed or Sample with an optional expectation.
type Step struct {
	Seed   *SeedStep   `yaml:"seed,omitempty"`
	Sample *SampleStep `yaml:"sample,omitempty"`
	Expect *Expect     `yaml:"expect,omitempty"`
}

// SeedStep derives the daily seed for a date.
type SeedStep struct {
	Date string `yaml:"date"`
}

// SampleStep samples words for a user.
type SampleStep struct {
	User  string `yaml:"user"`
	Date  string `yaml:"date"`
	Count int    `yaml:"count"`
}

// Expect lists expected step outcomes. Unset fields are not checked.
type Expect struct {
	// Error is the expected error kind: CONFIGURATION, VALIDATION or INTERNAL.
	Error string `yaml:"error,omitempty"`

	Theme   string `yaml:"theme,omitempty"`
	SeedHex string `yaml:"seed_hex,omitempty"`

	// Words is compared as a prefix of the result, so short lists pin the
	// leading draws of long samples.
	Words []string `yaml:"words,omitempty"`

	// Size is the exact result length; nil means unchecked.
	Size *int `yaml:"size,omitempty"`
}

// Assertion is a scenario-level property check.
type Assertion struct {
	// Type is one of distinct_sets, date_sensitivity, stable_seed.
	Type string `yaml:"type"`

	Date  string   `yaml:"date,omitempty"`
	Dates []string `yaml:"dates,omitempty"`
	User  string   `yaml:"user,omitempty"`
	Users int      `yaml:"users,omitempty"`
	Count int      `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertDistinctSets    = "distinct_sets"
	AssertDateSensitivity = "date_sensitivity"
	AssertStableSeed      = "stable_seed"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Pool and lexicon paths are resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	if !filepath.IsAbs(scenario.Pool) {
		scenario.Pool = filepath.Join(base, scenario.Pool)
	}
	if !filepath.IsAbs(scenario.Lexicon) {
		scenario.Lexicon = filepath.Join(base, scenario.Lexicon)
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML. Paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and step shape.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	if s.Pool == "" {
		return fmt.Errorf("pool is required")
	}
	if s.Lexicon == "" {
		return fmt.Errorf("lexicon is required")
	}
	if len(s.Steps) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("at least one step or assertion is required")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step Step) error {
	switch {
	case step.Seed != nil && step.Sample != nil:
		return fmt.Errorf("steps[%d]: seed and sample are mutually exclusive", index)
	case step.Seed == nil && step.Sample == nil:
		return fmt.Errorf("steps[%d]: one of seed or sample is required", index)
	}

	if step.Expect == nil || step.Expect.Error == "" {
		return nil
	}
	switch model.Kind(step.Expect.Error) {
	case model.KindConfiguration, model.KindValidation, model.KindInternal:
		return nil
	default:
		return fmt.Errorf("steps[%d]: unknown error kind %q", index, step.Expect.Error)
	}
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case AssertDistinctSets:
		if a.Date == "" || a.Users < 2 || a.Count < 1 {
			return fmt.Errorf("assertions[%d]: distinct_sets needs date, users >= 2 and count", index)
		}
	case AssertDateSensitivity:
		if a.User == "" || len(a.Dates) != 2 || a.Count < 1 {
			return fmt.Errorf("assertions[%d]: date_sensitivity needs user, two dates and count", index)
		}
	case AssertStableSeed:
		if a.Date == "" {
			return fmt.Errorf("assertions[%d]: stable_seed needs date", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
