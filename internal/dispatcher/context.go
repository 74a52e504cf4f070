package dispatcher

import (
	"log/slog"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/scene"
	"github.com/rocksandvoids/console/internal/simulation"
	"github.com/rocksandvoids/console/internal/world"
)

// Messages is where commands report to the user.
type Messages interface {
	Info(text string)
	Success(text string)
	Warning(text string)
	Error(text string)
	// Help shows preformatted multi-line text.
	Help(text string)
	Clear()
}

// FileSource reads command scripts for import.
type FileSource interface {
	// ReadLines returns a display name for path and its lines.
	ReadLines(path string) (name string, lines []string, err error)
}

// HistoryClearer forgets previously entered commands.
type HistoryClearer interface {
	Clear()
}

// Context is the set of collaborators a command executes against. It is
// built once at startup and passed to every dispatch.
type Context struct {
	Objects    *world.Registry
	Simulation *simulation.Scheduler
	Scene      scene.Scene
	Messages   Messages
	Settings   *config.Runtime
	Defaults   config.Settings
	Files      FileSource
	History    HistoryClearer
	Dispatcher *Dispatcher
	Logger     *slog.Logger

	// ImportDepth counts nested imports currently running.
	ImportDepth int
}
