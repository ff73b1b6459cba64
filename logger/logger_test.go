package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/linse/logger"
	"github.com/katalvlaran/linse/logger/console"
)

type recorder struct{ lines []string }

func (r *recorder) Debug(m string, _ ...any) { r.lines = append(r.lines, "debug:"+m) }
func (r *recorder) Info(m string, _ ...any)  { r.lines = append(r.lines, "info:"+m) }
func (r *recorder) Warn(m string, _ ...any)  { r.lines = append(r.lines, "warn:"+m) }
func (r *recorder) Error(m string, _ ...any) { r.lines = append(r.lines, "error:"+m) }

func TestFacade_DispatchesToAllBackends(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	logger.Init(a, b)
	defer logger.Init()

	logger.Debug("d")
	logger.Info("i", "k", 1)
	logger.Warn("w")
	logger.Error("e")

	want := []string{"debug:d", "info:i", "warn:w", "error:e"}
	assert.Equal(t, want, a.lines)
	assert.Equal(t, want, b.lines)

	logger.Init()
	logger.Info("dropped")
	assert.Len(t, a.lines, 4)
}

func TestConsole_LevelAndKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(console.New(console.Params{Output: &buf, NoTimestamp: true}))
	defer logger.Init()

	logger.Debug("hidden")
	logger.Info("cycle done", "buses", 3)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "cycle done")
	assert.Contains(t, out, "buses=3")

	buf.Reset()
	logger.Init(console.New(console.Params{Output: &buf, NoTimestamp: true, Debug: true}))
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
