// Package scenario reads dsviz scenario files: a container kind, initial
// renderer options and a list of steps to play against it.
//
//	version: v1
//	container: stack
//	props:
//	  cellWidth: 50
//	steps:
//	  - push: a
//	  - push: b
//	  - pop: {}
//	  - set: {field: showIndex, value: false}
//	  - wait: 500ms
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/visualds/pkg/props"
	"github.com/go-drift/visualds/pkg/structure"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Op names a step action.
type Op string

const (
	OpPush  Op = "push"
	OpPop   Op = "pop"
	OpSet   Op = "set"
	OpProps Op = "props"
	OpWait  Op = "wait"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Version   string         `yaml:"version" validate:"required"`
	Container string         `yaml:"container" validate:"required,oneof=stack queue Stack Queue"`
	Props     props.Values   `yaml:"props"`
	Steps     []Step         `yaml:"steps" validate:"dive"`
	Kind      structure.Kind `yaml:"-"`
}

// Step is one action. Exactly one of the step keys is set in YAML.
type Step struct {
	Op    Op            `validate:"required,oneof=push pop set props wait"`
	Value string        `validate:"required_if=Op push"`
	Field string        `validate:"required_if=Op set"`
	SetTo any           `validate:"-"`
	Props props.Values  `validate:"required_if=Op props"`
	Wait  time.Duration `validate:"required_if=Op wait,gte=0"`
}

type setStep struct {
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
}

// UnmarshalYAML decodes the single-key step forms.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a step is a mapping with exactly one key", node.Line)
	}
	key, val := node.Content[0].Value, node.Content[1]
	s.Op = Op(key)
	switch s.Op {
	case OpPush:
		return val.Decode(&s.Value)
	case OpPop:
		return nil
	case OpSet:
		var set setStep
		if err := val.Decode(&set); err != nil {
			return err
		}
		s.Field, s.SetTo = set.Field, set.Value
		return nil
	case OpProps:
		return val.Decode(&s.Props)
	case OpWait:
		var raw string
		if err := val.Decode(&raw); err != nil {
			return err
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("line %d: %w", val.Line, err)
		}
		s.Wait = d
		return nil
	default:
		return fmt.Errorf("line %d: unknown step %q", node.Line, key)
	}
}

// ErrUnsupportedVersion is returned for scenarios written for another
// major version of the format.
var ErrUnsupportedVersion = errors.New("unsupported scenario version")

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := validator.New().Struct(sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if !semver.IsValid(sc.Version) {
		return nil, fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, sc.Version)
	}
	if semver.Major(sc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, sc.Version, SupportedMajor)
	}
	kind, err := structure.ParseKind(sc.Container)
	if err != nil {
		return nil, err
	}
	sc.Kind = kind
	return &sc, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}
