package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// shipDecks is the ship blueprint, decks bottom-up. 'w' spawns a wall
// collider, 'f' a floor collider, ' ' nothing. Row 0 is the northern edge
// (+y); columns grow along +x.
var shipDecks = [][]string{
	{ // hull
		"wwwwww",
		"wwwwww",
		"wwwwww",
		"wwwwww",
	},
	{ // main deck floor
		"ffffff",
		"ffffff",
		"ffffff",
		"ffffff",
	},
	{ // bulwark at standing height
		"wwwwww",
		"w    w",
		"w    w",
		"wwwwww",
	},
}

// spawnShip creates a ship root drifting along +y with every wall and floor
// tile parented to it, so hierarchy propagation carries the whole ship as
// one body.
func (g *Game) spawnShip(name string, at tilegrid.IVec3, drift float32) ecs.Entity {
	root := g.shipRootMapper.NewEntity(
		&components.Name{Value: name},
		&components.Transform{Translation: g.stretch.World(at)},
		&components.MovementGoal{Value: tilegrid.Vec3{Y: drift}},
		&components.RelativeVelocity{},
		&components.TotalVelocity{},
		&components.Ticker{},
		&components.Children{},
	)

	children := g.childrenMap.Get(root)
	for z, deck := range shipDecks {
		for row, line := range deck {
			y := len(deck) - 1 - row
			for x, c := range line {
				var constraints components.Constraints
				var kind string
				switch c {
				case 'w':
					constraints = components.Wall
					kind = "wall"
				case 'f':
					constraints = components.Floor
					kind = "floor"
				default:
					continue
				}

				tile := at.Add(tilegrid.IVec3{X: int32(x), Y: int32(y), Z: int32(z)})
				col := components.NewCollider(constraints)
				part := g.shipPartMapper.NewEntity(
					&components.Name{Value: fmt.Sprintf("%s %s %d,%d,%d", name, kind, x, y, z)},
					&components.Transform{Translation: g.stretch.World(tile)},
					&col,
					&components.RelativeVelocity{},
					&components.TotalVelocity{},
					&components.Ticker{},
					&components.Parent{Entity: root},
				)
				children.All = append(children.All, part)
			}
		}
	}

	return root
}

// shipDeckTile returns a standing tile over the given deck of a spawned
// ship: one level above the floor cell nearest the blueprint center.
func (g *Game) shipDeckTile(root ecs.Entity, deck int) tilegrid.IVec3 {
	rootTile := g.stretch.Closest(g.transformMap.Get(root).Translation)
	layout := shipDecks[deck]

	var (
		best  tilegrid.IVec3
		found bool
		score int32
	)
	midX := int32(len(layout[0])) / 2
	midY := int32(len(layout)) / 2
	for row, line := range layout {
		y := int32(len(layout) - 1 - row)
		for x, c := range line {
			if c != 'f' {
				continue
			}
			d := abs32(int32(x)-midX) + abs32(y-midY)
			if !found || d < score {
				best = rootTile.Add(tilegrid.IVec3{X: int32(x), Y: y, Z: int32(deck) + 1})
				score = d
				found = true
			}
		}
	}
	if !found {
		return rootTile
	}
	return best
}

// spawnPlayer creates the keyboard-driven entity standing at the given tile.
func (g *Game) spawnPlayer(name string, at tilegrid.IVec3, walkSpeed float32) ecs.Entity {
	col := components.NewCollider(components.Entity)
	player := g.playerMapper.NewEntity(
		&components.Name{Value: name},
		&components.Transform{Translation: g.stretch.World(at)},
		&col,
		&components.MovementGoal{},
		&components.RelativeVelocity{},
		&components.TotalVelocity{},
		&components.Ticker{},
		&components.WalkSpeed{Value: walkSpeed},
	)
	g.playerExtraMapper.Add(player,
		&components.Weight{Value: 1},
		&components.MaintainedVelocity{},
		&components.VelocityFromGround{},
		&components.PlayerController{},
	)
	return player
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
