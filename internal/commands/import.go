package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
)

// MaxImportDepth bounds how deeply import files may import each other.
const MaxImportDepth = 8

// ImportSummary is the payload of a finished import.
type ImportSummary struct {
	Name     string
	Executed int
	Errors   int
}

type importCmd struct{}

func (importCmd) Name() string { return "import" }

func (importCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Import and execute commands from a text file",
		Syntax:      []string{"import <filepath>"},
		Examples: []string{
			"import scenes/solar.txt",
			`import "my scenes/demo.txt"`,
		},
	}
}

func (importCmd) Validate(cmd parser.Command) error {
	if _, ok := cmd.Arg(0); !ok {
		return errors.New("Missing file path. Use: import <filepath>")
	}
	return nil
}

func (importCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	path, _ := cmd.Arg(0)

	if ctx.Files == nil {
		return nil, errors.New("Import is not available")
	}
	if ctx.ImportDepth >= MaxImportDepth {
		return nil, fmt.Errorf("Import nesting too deep (max %d)", MaxImportDepth)
	}

	name, lines, err := ctx.Files.ReadLines(path.Raw)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file: %v", err)
	}

	ctx.Messages.Info(fmt.Sprintf("Importing %s (%d lines)...", name, len(lines)))

	ctx.ImportDepth++
	defer func() { ctx.ImportDepth-- }()

	summary := ImportSummary{Name: name}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed, ok := parser.Parse(line)
		if !ok {
			continue
		}
		res := ctx.Dispatcher.Run(parsed, ctx)
		if !res.Success {
			summary.Errors++
			ctx.Messages.Error(fmt.Sprintf("Line %d: %s", i+1, res.Error))
			continue
		}
		summary.Executed++
	}

	logger(ctx).Info("import finished", "file", name, "executed", summary.Executed, "errors", summary.Errors)

	if summary.Errors > 0 {
		ctx.Messages.Warning(fmt.Sprintf("Import complete: %d commands executed, %d errors", summary.Executed, summary.Errors))
	} else {
		ctx.Messages.Success(fmt.Sprintf("Import complete: %d commands executed", summary.Executed))
	}
	return summary, nil
}

// DiskFiles reads import scripts from the local filesystem. Relative paths
// resolve against Dir when it is set.
type DiskFiles struct {
	Dir string
}

func (f DiskFiles) ReadLines(path string) (string, []string, error) {
	if f.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return filepath.Base(path), strings.Split(text, "\n"), nil
}
