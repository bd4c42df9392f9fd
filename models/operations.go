package models

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/flowmatic/kineograph/vector"
)

// NewNode creates a node with a generated id when none is supplied and
// sensible physics defaults.
func NewNode(id, nodeType, label string) *Node {
	if id == "" {
		id = uuid.New().String()
	}
	return &Node{
		ID:    id,
		Type:  nodeType,
		Label: label,
		Size:  10,
		Shape: ShapeCircle,
	}
}

// NewGraph creates an empty graph with default dimensions.
func NewGraph(name string) *Graph {
	return &Graph{
		ID:     uuid.New().String(),
		Name:   name,
		Width:  800,
		Height: 600,
		nodes:  make(map[string]*Node),
	}
}

// Fix pins the node in place and kills its motion.
func (n *Node) Fix() {
	n.Fixed = true
	n.Velocity = vector.Vector{}
}

// Unfix releases a pinned node.
func (n *Node) Unfix() {
	n.Fixed = false
}

// SetPosition moves the node directly, e.g. to follow a drag gesture.
func (n *Node) SetPosition(x, y float64) {
	n.Position = vector.Vector{X: x, Y: y}
}

// PlaceRandom assigns a random position inside the given container
// bounds. A nil rng falls back to the shared package source.
func (n *Node) PlaceRandom(width, height float64, rng *rand.Rand) {
	if rng != nil {
		n.Position = vector.Vector{X: rng.Float64() * width, Y: rng.Float64() * height}
		return
	}
	n.Position = vector.Vector{X: rand.Float64() * width, Y: rand.Float64() * height}
}

// CollisionRadius returns the effective radius the physics engine uses
// to clamp repulsion at small separations. Dynamic extents win for
// rectangles when the rendering layer has supplied them.
func (n *Node) CollisionRadius() float64 {
	switch n.Shape {
	case ShapeRectangle:
		if n.Width > 0 || n.Height > 0 {
			return math.Max(n.Width, n.Height) / 2
		}
		return n.Size * nonCircularRadiusFactor
	case ShapeSquare, ShapeTriangle:
		return n.Size * nonCircularRadiusFactor
	default:
		return n.Size
	}
}
