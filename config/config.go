// SPDX-License-Identifier: MIT

// Package config loads the estimator configuration from YAML, an optional
// .env file and LINSE_* environment variables, in that order of precedence
// (later wins), and validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linse/estimator"
	"github.com/katalvlaran/linse/logger/console"
	"github.com/katalvlaran/linse/matrix/ops"
	"github.com/katalvlaran/linse/phasor"
)

var (
	// ErrInvalidConfig indicates a value that failed parsing or validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrRead indicates the configuration file could not be read.
	ErrRead = errors.New("config: cannot read file")
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LINSE_"

// Config is the full estimator configuration.
type Config struct {
	PhaseMode          string  `yaml:"phase_mode" validate:"oneof=positive-sequence three-phase"`
	BaseMVA            float64 `yaml:"base_mva" validate:"gt=0"`
	AcceptMeasurements bool    `yaml:"accept_measurements"`
	AcceptEstimates    bool    `yaml:"accept_estimates"`

	Output Output `yaml:"output"`
	Solver Solver `yaml:"solver"`
	Log    Log    `yaml:"log"`
}

// Output selects the published key groups.
type Output struct {
	Voltages          bool `yaml:"voltages"`
	CurrentFlows      bool `yaml:"current_flows"`
	CurrentInjections bool `yaml:"current_injections"`
	Residuals         bool `yaml:"residuals"`
	DeviceStates      bool `yaml:"device_states"`
	TapPositions      bool `yaml:"tap_positions"`
}

// Solver configures the pseudo-inverse.
type Solver struct {
	Method       string        `yaml:"method" validate:"oneof=svd normal"`
	Tolerance    float64       `yaml:"tolerance" validate:"gt=0,lt=1"`
	MaxCondition float64       `yaml:"max_condition" validate:"gt=1"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Log configures the console logger.
type Log struct {
	Debug bool `yaml:"debug"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PhaseMode:          phasor.ModePositiveSequence.String(),
		BaseMVA:            phasor.DefaultBaseMVA,
		AcceptMeasurements: true,
		Output: Output{
			Voltages:          true,
			CurrentFlows:      true,
			CurrentInjections: true,
		},
		Solver: Solver{
			Method:       ops.MethodSVD.String(),
			Tolerance:    ops.DefaultTolerance,
			MaxCondition: ops.DefaultMaxCondition,
			Timeout:      estimator.DefaultSolveTimeout,
		},
	}
}

// Load builds a Config from Default, the YAML file at path (skipped when
// path is empty), the given .env files (a missing file is not an error;
// none means ./.env) and LINSE_* variables.
func Load(path string, envFiles ...string) (Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("Load: %s: %w: %w", path, ErrRead, err)
		}
		if err = yaml.Unmarshal(raw, &c); err != nil {
			return Config{}, fmt.Errorf("Load: %s: %w: %w", path, ErrInvalidConfig, err)
		}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}

	return c, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w: %w", f, ErrRead, err)
		}
	}

	return nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// applyEnv overrides fields from LINSE_* variables.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"PHASE_MODE":    &c.PhaseMode,
		"SOLVER_METHOD": &c.Solver.Method,
	}
	for k, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + k); ok {
			*dst = v
		}
	}

	floats := map[string]*float64{
		"BASE_MVA":             &c.BaseMVA,
		"SOLVER_TOLERANCE":     &c.Solver.Tolerance,
		"SOLVER_MAX_CONDITION": &c.Solver.MaxCondition,
	}
	for k, dst := range floats {
		if v, ok := os.LookupEnv(EnvPrefix + k); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", EnvPrefix, k, v, ErrInvalidConfig)
			}
			*dst = f
		}
	}

	bools := map[string]*bool{
		"ACCEPT_MEASUREMENTS":       &c.AcceptMeasurements,
		"ACCEPT_ESTIMATES":          &c.AcceptEstimates,
		"OUTPUT_VOLTAGES":           &c.Output.Voltages,
		"OUTPUT_CURRENT_FLOWS":      &c.Output.CurrentFlows,
		"OUTPUT_CURRENT_INJECTIONS": &c.Output.CurrentInjections,
		"OUTPUT_RESIDUALS":          &c.Output.Residuals,
		"OUTPUT_DEVICE_STATES":      &c.Output.DeviceStates,
		"OUTPUT_TAP_POSITIONS":      &c.Output.TapPositions,
		"LOG_DEBUG":                 &c.Log.Debug,
	}
	for k, dst := range bools {
		if v, ok := os.LookupEnv(EnvPrefix + k); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", EnvPrefix, k, v, ErrInvalidConfig)
			}
			*dst = b
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "SOLVER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSOLVER_TIMEOUT=%q: %w", EnvPrefix, v, ErrInvalidConfig)
		}
		c.Solver.Timeout = d
	}

	return nil
}

// EstimatorOptions translates c into estimator options.
func (c Config) EstimatorOptions() []estimator.Option {
	return []estimator.Option{
		estimator.WithPhaseMode(phasor.ParsePhaseMode(c.PhaseMode)),
		estimator.WithBaseMVA(c.BaseMVA),
		estimator.WithAcceptMeasurements(c.AcceptMeasurements),
		estimator.WithAcceptEstimates(c.AcceptEstimates),
		estimator.WithOutput(estimator.OutputSelection(c.Output)),
		estimator.WithSolver(ops.ParseMethod(c.Solver.Method), c.Solver.Tolerance, c.Solver.MaxCondition),
		estimator.WithSolveTimeout(c.Solver.Timeout),
	}
}

// ConsoleLogger returns a console backend honoring Log.Debug.
func (c Config) ConsoleLogger() *console.Backend {
	return console.New(console.Params{Debug: c.Log.Debug, Prefix: "linse"})
}
