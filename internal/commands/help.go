package commands

import (
	"errors"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
)

type helpCmd struct{}

func (helpCmd) Name() string                  { return dispatcher.HelpCommand }
func (helpCmd) Validate(parser.Command) error { return nil }

func (helpCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Show available commands or help for one command",
		Syntax: []string{
			"help              List all commands",
			"help <command>    Show help for a command",
			"<command> --help  Same as help <command>",
		},
		Examples: []string{"help", "help place", "camera --help"},
	}
}

func (helpCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	res := ctx.Dispatcher.ShowHelp(cmd, ctx)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	return nil, nil
}
