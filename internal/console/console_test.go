package console

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/commands"
	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/scene"
	"github.com/rocksandvoids/console/internal/simulation"
	"github.com/rocksandvoids/console/internal/world"
)

func newConsole(t *testing.T) (*Console, *Terminal, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := config.Default()
	objects := world.NewRegistry()
	sc := scene.NewHeadless(logger, defaults.ArenaSize)
	sim, err := simulation.New(objects, sc, defaults.FrameTime)
	require.NoError(t, err)
	d, err := dispatcher.New(logger)
	require.NoError(t, err)
	commands.Register(d)

	out := &bytes.Buffer{}
	term := NewTerminal(out)
	ctx := &dispatcher.Context{
		Objects:    objects,
		Simulation: sim,
		Scene:      sc,
		Messages:   term,
		Settings:   config.NewRuntime(defaults),
		Defaults:   defaults,
		Dispatcher: d,
		Logger:     logger,
	}
	return New(ctx, NewHistory(defaults.HistorySize)), term, out
}

func TestExecuteSplitsCommands(t *testing.T) {
	c, term, _ := newConsole(t)

	results := c.Execute(`place small yellow sphere named "a;b" at (0,0,0); camera ; start`)

	require.Len(t, results, 3)
	for _, res := range results {
		assert.True(t, res.Success, res.Error)
	}
	assert.True(t, c.ctx.Objects.Has("a;b"))
	assert.True(t, c.ctx.Simulation.Running())
	assert.Equal(t, Message{LevelSuccess, "Simulation started"}, term.Messages()[len(term.Messages())-1])
	assert.Equal(t, 1, c.History().Len())
}

func TestExecuteShowsErrors(t *testing.T) {
	c, term, out := newConsole(t)

	results := c.Execute("start")

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, []Message{{LevelError, results[0].Error}}, term.Messages())
	assert.Contains(t, out.String(), "error: Cannot start simulation")
}

func TestExecuteIgnoresBlankInput(t *testing.T) {
	c, term, _ := newConsole(t)

	assert.Nil(t, c.Execute("   "))
	assert.Nil(t, c.Execute(" ; ;"))
	assert.Empty(t, term.Messages())
	assert.Zero(t, c.History().Len())
}

func TestResetClearsHistory(t *testing.T) {
	c, _, _ := newConsole(t)

	c.Execute("camera")
	c.Execute("config")
	c.Execute("reset")

	assert.Zero(t, c.History().Len())
}

func TestTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	term := NewTerminal(out)

	term.Info("hello")
	term.Success("done")
	term.Warning("careful")
	term.Help("line one\nline two")

	assert.Equal(t, "hello\nok: done\nwarning: careful\nline one\nline two\n", out.String())
	assert.Len(t, term.Messages(), 4)

	term.Clear()
	assert.Empty(t, term.Messages())
	assert.Equal(t, "hello\nok: done\nwarning: careful\nline one\nline two\n", out.String())
}

func TestTerminalColor(t *testing.T) {
	out := &bytes.Buffer{}
	term := NewTerminal(out)
	term.SetColor(true)

	term.Error("bad")
	term.Info("plain")
	term.Clear()

	assert.Equal(t, ansiRed+"error: bad"+ansiReset+"\nplain\n"+ansiClear, out.String())
}

func TestTerminalKeepsRecentMessages(t *testing.T) {
	term := NewTerminal(io.Discard)

	for i := 0; i < maxMessages+5; i++ {
		term.Info("x")
	}

	assert.Len(t, term.Messages(), maxMessages)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "help", LevelHelp.String())
}
