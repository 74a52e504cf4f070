// Package console turns raw input lines into dispatched commands and shows
// their outcome.
package console

import (
	"log/slog"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
)

// Prompt is printed before each input line.
const Prompt = "> "

// Console executes input lines against a dispatcher context.
type Console struct {
	ctx     *dispatcher.Context
	history *History
	logger  *slog.Logger
}

// New creates a Console. The history is also installed as ctx.History so
// reset and clear can empty it.
func New(ctx *dispatcher.Context, history *History) *Console {
	ctx.History = history
	logger := ctx.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{ctx: ctx, history: history, logger: logger}
}

// History returns the console's command history.
func (c *Console) History() *History {
	return c.history
}

// Execute runs one input line. Several commands may be separated by ";".
// Failures are shown as error messages and returned with the other results.
func (c *Console) Execute(line string) []dispatcher.Result {
	segments := parser.SplitCommands(line)
	if len(segments) == 0 {
		return nil
	}
	c.history.Add(line)

	results := make([]dispatcher.Result, 0, len(segments))
	for _, segment := range segments {
		cmd, ok := parser.Parse(segment)
		if !ok {
			continue
		}
		res := c.ctx.Dispatcher.Run(cmd, c.ctx)
		if !res.Success {
			c.ctx.Messages.Error(res.Error)
			c.logger.Debug("command rejected", "command", cmd.Name, "error", res.Error)
		}
		results = append(results, res)
	}
	return results
}
