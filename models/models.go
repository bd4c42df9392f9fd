// Package models defines the graph data model shared by the physics
// engine, the data loaders and the renderers.
package models

import (
	"sort"
	"sync"

	"github.com/flowmatic/kineograph/vector"
)

// Node shapes recognized by CollisionRadius.
const (
	ShapeCircle    = "circle"
	ShapeRectangle = "rectangle"
	ShapeSquare    = "square"
	ShapeTriangle  = "triangle"
)

// Non-circular shapes extend past their nominal radius; 1.4 approximates
// the circumscribed extent relative to Size.
const nonCircularRadiusFactor = 1.4

// Node represents one graph vertex. Position is the only physics field
// external collaborators should treat as authoritative; Velocity and
// Force are ephemeral simulation state, reset and overwritten
// continuously.
type Node struct {
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Label   string `json:"label,omitempty"`
	Payload any    `json:"payload,omitempty"` // opaque to the engine

	Position vector.Vector `json:"position"`
	Velocity vector.Vector `json:"velocity"`
	Force    vector.Vector `json:"-"`

	Size  float64 `json:"size"`
	Shape string  `json:"shape,omitempty"`
	// Width and Height are dynamic extents supplied by the rendering
	// layer once known; zero means unknown.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Fixed  bool    `json:"fixed,omitempty"`
}

// LinkSpec is a raw edge tuple in the id world. Weight zero means the
// default weight of 1.
type LinkSpec struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// Link is a resolved edge in the object-reference world the engine
// operates on. Links do not own their nodes.
type Link struct {
	Source *Node
	Target *Node
	Weight float64
}

// Filter is an optional set of currently visible node ids. A nil Filter
// admits every node.
type Filter map[string]struct{}

// NewFilter builds a filter admitting exactly the given ids.
func NewFilter(ids ...string) Filter {
	f := make(Filter, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

// Visible reports whether the node id passes the filter.
func (f Filter) Visible(id string) bool {
	if f == nil {
		return true
	}
	_, ok := f[id]
	return ok
}

// Graph is a keyed collection of nodes plus the raw edge tuples between
// them. The mutex guards collection membership; node physics state is
// owned by the single thread driving the simulation.
type Graph struct {
	mu sync.Mutex

	ID     string
	Name   string
	Width  float64
	Height float64

	nodes map[string]*Node
	links []LinkSpec
}

// AddNode inserts or replaces a node keyed by its id.
func (g *Graph) AddNode(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[n.ID] = n
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	return n, ok
}

// RemoveNode deletes a node and every link touching it. Removal is the
// node's teardown; it holds no external resources.
func (g *Graph) RemoveNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.nodes, id)
	kept := g.links[:0]
	for _, l := range g.links {
		if l.Source != id && l.Target != id {
			kept = append(kept, l)
		}
	}
	g.links = kept
}

// AddLink appends a raw edge tuple. Endpoints are resolved lazily; a
// tuple whose endpoint has since been removed is dropped at resolution.
func (g *Graph) AddLink(l LinkSpec) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.links = append(g.links, l)
}

// NodeCount returns the number of nodes in the collection.
func (g *Graph) NodeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// NodeIDs returns all node ids in sorted order.
func (g *Graph) NodeIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortedIDs()
}

// Nodes returns all nodes ordered by id. Iteration order is stable so a
// seeded simulation is reproducible.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := g.sortedIDs()
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LinkSpecs returns a copy of the raw edge tuples.
func (g *Graph) LinkSpecs() []LinkSpec {
	g.mu.Lock()
	defer g.mu.Unlock()
	specs := make([]LinkSpec, len(g.links))
	copy(specs, g.links)
	return specs
}

// Links resolves the graph's own edge tuples against its node collection.
func (g *Graph) Links() []Link {
	return ResolveLinks(g, g.LinkSpecs())
}

// ResolveLinks turns raw id tuples into object-reference links, silently
// dropping any tuple whose source or target is not in the collection.
// Node deletion racing with link iteration is an expected steady-state
// condition, not an error.
func ResolveLinks(g *Graph, specs []LinkSpec) []Link {
	links := make([]Link, 0, len(specs))
	for _, s := range specs {
		source, ok := g.Node(s.Source)
		if !ok {
			continue
		}
		target, ok := g.Node(s.Target)
		if !ok {
			continue
		}
		weight := s.Weight
		if weight == 0 {
			weight = 1
		}
		links = append(links, Link{Source: source, Target: target, Weight: weight})
	}
	return links
}
