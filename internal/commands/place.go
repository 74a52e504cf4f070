package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/world"
)

const placeSyntax = `place <size> <color> <shape> named "<name>" at (x,y,z)`

type placeCmd struct{}

func (placeCmd) Name() string { return "place" }

func (placeCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Create and place an object in the arena",
		Syntax:      []string{placeSyntax},
		Examples: []string{
			`place medium red cube named "cube1" at (10,10,10)`,
			`place small yellow sphere named "sun" at (0,0,0)`,
			`place large blue pyramid named "marker" at (100,0,100)`,
		},
	}
}

type placement struct {
	size  catalog.SizeClass
	color string
	shape string
	name  string
	at    parser.Value
}

// readPlacement checks the positional grammar and extracts its parts.
func readPlacement(cmd parser.Command) (placement, error) {
	pos := cmd.Positional
	if len(pos) < 3 {
		return placement{}, fmt.Errorf("Missing required arguments. Expected: %s", placeSyntax)
	}

	nameIndex, atIndex := -1, -1
	for i, v := range pos {
		switch strings.ToLower(v.Raw) {
		case "named":
			nameIndex = i
		case "at":
			atIndex = i
		}
	}

	if nameIndex == -1 {
		return placement{}, errors.New(`Missing "named" keyword. Expected: place ... named "<name>" at (x,y,z)`)
	}
	if atIndex == -1 {
		return placement{}, errors.New(`Missing "at" keyword. Expected: place ... at (x,y,z)`)
	}
	if nameIndex+1 >= len(pos) || nameIndex+1 == atIndex {
		return placement{}, errors.New(`Missing object name after "named"`)
	}
	if atIndex+1 >= len(pos) {
		return placement{}, errors.New(`Missing coordinates after "at"`)
	}
	at := pos[atIndex+1]
	if at.Kind != parser.KindCoordinate {
		return placement{}, errors.New("Invalid coordinates. Use format: (x,y,z)")
	}

	sizeName := strings.ToLower(pos[0].Raw)
	color := strings.ToLower(pos[1].Raw)
	shape := strings.ToLower(pos[2].Raw)

	size, ok := catalog.ParseSizeClass(sizeName)
	if !ok {
		return placement{}, fmt.Errorf("Invalid size: %s. Use: small, medium, or large", sizeName)
	}
	if !catalog.IsColor(color) {
		return placement{}, fmt.Errorf("Invalid color: %s. Available: %s...", color, strings.Join(catalog.Colors()[:10], ", "))
	}
	if !catalog.IsShape(shape) {
		return placement{}, fmt.Errorf("Invalid shape: %s. Available: %s", shape, strings.Join(catalog.Shapes(), ", "))
	}

	return placement{
		size:  size,
		color: color,
		shape: shape,
		name:  pos[nameIndex+1].Raw,
		at:    at,
	}, nil
}

func (placeCmd) Validate(cmd parser.Command) error {
	_, err := readPlacement(cmd)
	return err
}

func (placeCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	p, err := readPlacement(cmd)
	if err != nil {
		return nil, err
	}

	if ctx.Objects.Has(p.name) {
		return nil, fmt.Errorf("Object %q already exists", p.name)
	}

	base := ctx.Settings.BaseSize
	obj := world.NewObject(world.ObjectSpec{
		Name:      p.name,
		Shape:     p.shape,
		Color:     p.color,
		SizeClass: p.size,
		Size:      base * ctx.Defaults.SizeMultipliers.For(p.size),
		Position:  p.at.Coord,
	})
	if err := ctx.Objects.Add(obj); err != nil {
		if errors.Is(err, world.ErrDuplicateName) {
			return nil, fmt.Errorf("Object %q already exists", p.name)
		}
		return nil, err
	}
	ctx.Scene.AddObject(obj)

	logger(ctx).Info("object placed", "name", obj.Name, "id", obj.ID, "size", obj.Size)
	ctx.Messages.Success(fmt.Sprintf("Created %s %s %s %q at %s", p.size, p.color, p.shape, p.name, formatPoint(p.at.Coord)))

	return obj, nil
}
