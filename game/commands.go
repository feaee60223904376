package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/console"
	"github.com/ZBemo/simple-pirate-sim/systems"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// registerCommands wires the developer console commands.
func (g *Game) registerCommands() {
	g.registry.Register("echo", echoCommand)
	g.registry.Register("help", g.helpCommand)
	g.registry.Register("exit", g.exitCommand)
	g.registry.Register("move", g.moveCommand)
	g.registry.Register("raycast", g.raycastCommand)
}

// echoCommand prints its arguments back.
func echoCommand(args []console.Token) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = string(a)
	}
	return strings.Join(parts, " ")
}

// helpCommand lists registered commands.
func (g *Game) helpCommand(args []console.Token) string {
	names := g.registry.Names()
	sort.Strings(names)
	return "Available commands: " + strings.Join(names, ", ")
}

// exitCommand requests shutdown at the end of the frame.
func (g *Game) exitCommand(args []console.Token) string {
	g.exitRequested = true
	return "Exiting"
}

// moveCommand teleports a named entity to a tile: move <name> <x> <y> <z>.
func (g *Game) moveCommand(args []console.Token) string {
	if len(args) != 4 {
		return fmt.Sprintf("Incorrect length: expected 4 arguments but was given %d", len(args))
	}

	name := string(args[0])
	var tile tilegrid.IVec3
	for i, out := range []*int32{&tile.X, &tile.Y, &tile.Z} {
		v, err := strconv.ParseInt(string(args[1+i]), 10, 32)
		if err != nil {
			return fmt.Sprintf("Invalid arguments: error '%s'", err)
		}
		*out = int32(v)
	}

	query := g.transformFilter.Query()
	for query.Next() {
		entity := query.Entity()
		if !g.nameMap.Has(entity) || g.nameMap.Get(entity).Value != name {
			continue
		}
		tr := query.Get()
		tr.Translation = g.stretch.World(tile)
		// Must consume the rest of the query to release the world lock.
		for query.Next() {
		}
		return fmt.Sprintf("Moved %s to %s", name, tile)
	}
	return fmt.Sprintf("No entity named '%s'", name)
}

// raycastCommand casts a ray over every transform-bearing entity:
// raycast <ox> <oy> <oz> <dx> <dy> <dz>.
func (g *Game) raycastCommand(args []console.Token) string {
	if len(args) != 6 {
		return fmt.Sprintf("Incorrect length: expected 6 arguments but was given %d", len(args))
	}

	var origin tilegrid.IVec3
	for i, out := range []*int32{&origin.X, &origin.Y, &origin.Z} {
		v, err := strconv.ParseInt(string(args[i]), 10, 32)
		if err != nil {
			return fmt.Sprintf("Invalid arguments: error '%s'", err)
		}
		*out = int32(v)
	}
	var dir tilegrid.Vec3
	for i, out := range []*float32{&dir.X, &dir.Y, &dir.Z} {
		v, err := strconv.ParseFloat(string(args[3+i]), 32)
		if err != nil {
			return fmt.Sprintf("Invalid arguments: error '%s'", err)
		}
		*out = float32(v)
	}

	var candidates []systems.Candidate[ecs.Entity]
	query := g.transformFilter.Query()
	for query.Next() {
		candidates = append(candidates, systems.Candidate[ecs.Entity]{
			Data: query.Entity(),
			Tile: g.stretch.Closest(query.Get().Translation),
		})
	}

	var lines []string
	castOrigin := systems.CastOrigin{Tile: origin}
	for h := range systems.Cast(castOrigin, dir, g.stretch, candidates, true) {
		name := "UnNamed Entity"
		if g.nameMap.Has(h.Data) {
			name = g.nameMap.Get(h.Data).Value
		}
		pos := g.transformMap.Get(h.Data).Translation
		lines = append(lines, fmt.Sprintf("Entity found in raycast:%s:%s", name, pos))
	}
	if len(lines) == 0 {
		return "No entities on ray"
	}
	return strings.Join(lines, "\n")
}
