package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/config"
	"github.com/katalvlaran/linse/estimator"
	"github.com/katalvlaran/linse/matrix/ops"
	"github.com/katalvlaran/linse/phasor"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func noEnv(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefault_IsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "positive-sequence", c.PhaseMode)
	assert.Equal(t, phasor.DefaultBaseMVA, c.BaseMVA)
	assert.Equal(t, "svd", c.Solver.Method)
	assert.True(t, c.Output.Voltages)
	assert.False(t, c.Output.Residuals)
}

func TestLoad_YAML(t *testing.T) {
	p := write(t, "linse.yaml", `
phase_mode: three-phase
base_mva: 250
accept_estimates: true
output:
  residuals: true
  device_states: true
solver:
  method: normal
  tolerance: 1e-8
  max_condition: 1e9
  timeout: 750ms
log:
  debug: true
`)
	c, err := config.Load(p, noEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "three-phase", c.PhaseMode)
	assert.Equal(t, 250.0, c.BaseMVA)
	assert.True(t, c.AcceptMeasurements, "default kept")
	assert.True(t, c.AcceptEstimates)
	assert.True(t, c.Output.Voltages, "default kept")
	assert.True(t, c.Output.Residuals)
	assert.Equal(t, "normal", c.Solver.Method)
	assert.Equal(t, 1e-8, c.Solver.Tolerance)
	assert.Equal(t, 750*time.Millisecond, c.Solver.Timeout)
	assert.True(t, c.Log.Debug)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := write(t, "linse.yaml", "base_mva: 250\n")
	env := write(t, "test.env", "LINSE_SOLVER_METHOD=normal\n")
	t.Setenv("LINSE_BASE_MVA", "50")
	t.Setenv("LINSE_OUTPUT_RESIDUALS", "true")
	t.Setenv("LINSE_SOLVER_TIMEOUT", "2s")
	t.Cleanup(func() { _ = os.Unsetenv("LINSE_SOLVER_METHOD") })

	c, err := config.Load(p, env)
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.BaseMVA)
	assert.True(t, c.Output.Residuals)
	assert.Equal(t, 2*time.Second, c.Solver.Timeout)
	assert.Equal(t, "normal", c.Solver.Method)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv(t))
	assert.ErrorIs(t, err, config.ErrRead)

	_, err = config.Load(write(t, "bad.yaml", "base_mva: [1"), noEnv(t))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(write(t, "mode.yaml", "phase_mode: single\n"), noEnv(t))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(write(t, "mva.yaml", "base_mva: -1\n"), noEnv(t))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	t.Setenv("LINSE_LOG_DEBUG", "maybe")
	_, err = config.Load("", noEnv(t))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestEstimatorOptions(t *testing.T) {
	c := config.Default()
	c.PhaseMode = "three-phase"
	c.BaseMVA = 200
	c.Solver.Method = "normal"
	c.Output.TapPositions = true

	o := estimator.DefaultOptions()
	for _, opt := range c.EstimatorOptions() {
		opt(&o)
	}
	assert.Equal(t, phasor.ModeThreePhase, o.Mode)
	assert.Equal(t, 200.0, o.BaseMVA)
	assert.Equal(t, ops.MethodNormalEquations, o.Method)
	assert.True(t, o.Output.TapPositions)
	assert.Equal(t, estimator.DefaultSolveTimeout, o.SolveTimeout)

	assert.NotNil(t, c.ConsoleLogger())
}
