package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
)

func TestNewFallsBackToDefault(t *testing.T) {
	l := New(logr.Logger{})
	assert.NotNil(t, l.log.GetSink())
}

func TestLoggerForLevel(t *testing.T) {
	assert.True(t, LoggerForLevel("debug").V(1).Enabled())
	assert.False(t, LoggerForLevel("info").V(1).Enabled())
	assert.False(t, LoggerForLevel("bogus").V(1).Enabled())
}

func TestWithValuesAndName(t *testing.T) {
	var lines []string
	base := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{})

	New(base).WithName("history").WithValues("pr", 7).Info("lookup done", "matches", 2)

	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "history")
	assert.Contains(t, lines[0], `"pr"=7`)
	assert.Contains(t, lines[0], `"matches"=2`)
}
