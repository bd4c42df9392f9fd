// Package render exports computed layouts in machine- and
// terminal-friendly formats. It reads post-tick node positions and never
// mutates the graph.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowmatic/kineograph/models"
)

// OutputOptions controls rendering.
type OutputOptions struct {
	Format     string
	Width      float64
	Height     float64
	ShowLabels bool
}

// NewDefaultOptions returns options for the given format with the
// default canvas size.
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		ShowLabels: true,
	}
}

// Renderer converts a graph into bytes in one output format.
type Renderer interface {
	Name() string
	Render(graph *models.Graph, options *OutputOptions) ([]byte, error)
}

// GetRenderer returns a renderer by format name.
func GetRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &JSONRenderer{}, nil
	case "dot":
		return &DOTRenderer{}, nil
	case "ascii":
		return &ASCIIRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONRenderer emits the layout as indented JSON for machine
// consumption or custom visualizations.
type JSONRenderer struct{}

// Name returns the name of the renderer.
func (r *JSONRenderer) Name() string { return "JSON Renderer" }

// Render creates a JSON representation of the graph.
func (r *JSONRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	type jsonNode struct {
		ID      string  `json:"id"`
		Type    string  `json:"type,omitempty"`
		Label   string  `json:"label,omitempty"`
		X       float64 `json:"x"`
		Y       float64 `json:"y"`
		Size    float64 `json:"size"`
		Shape   string  `json:"shape,omitempty"`
		Fixed   bool    `json:"fixed,omitempty"`
		Payload any     `json:"payload,omitempty"`
	}

	type jsonGraph struct {
		Name     string            `json:"name,omitempty"`
		Width    float64           `json:"width"`
		Height   float64           `json:"height"`
		Nodes    []jsonNode        `json:"nodes"`
		Links    []models.LinkSpec `json:"links"`
		NodeCnt  int               `json:"node_count"`
		LinkCnt  int               `json:"link_count"`
	}

	doc := jsonGraph{
		Name:   graph.Name,
		Width:  options.Width,
		Height: options.Height,
		Nodes:  make([]jsonNode, 0, graph.NodeCount()),
		Links:  graph.LinkSpecs(),
	}
	for _, n := range graph.Nodes() {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:      n.ID,
			Type:    n.Type,
			Label:   n.Label,
			X:       n.Position.X,
			Y:       n.Position.Y,
			Size:    n.Size,
			Shape:   n.Shape,
			Fixed:   n.Fixed,
			Payload: n.Payload,
		})
	}
	doc.NodeCnt = len(doc.Nodes)
	doc.LinkCnt = len(doc.Links)

	return json.MarshalIndent(doc, "", "  ")
}

// DOTRenderer emits Graphviz DOT with pinned positions.
type DOTRenderer struct{}

// Name returns the name of the renderer.
func (r *DOTRenderer) Name() string { return "DOT Renderer" }

// Render creates a DOT representation of the graph.
func (r *DOTRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("graph G {\n")
	buf.WriteString(fmt.Sprintf("  graph [size=\"%f,%f\"];\n",
		options.Width/72.0, options.Height/72.0))
	buf.WriteString("  node [shape=circle];\n")

	for _, n := range graph.Nodes() {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		buf.WriteString(fmt.Sprintf("  %q [label=%q, width=%f, pos=\"%f,%f!\"];\n",
			n.ID, label, n.Size/20.0, n.Position.X/100.0, n.Position.Y/100.0))
	}

	for _, l := range graph.Links() {
		buf.WriteString(fmt.Sprintf("  %q -- %q [weight=%f];\n",
			l.Source.ID, l.Target.ID, l.Weight))
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// ASCIIRenderer draws the layout as a character grid for terminal
// output.
type ASCIIRenderer struct{}

// Name returns the name of the renderer.
func (r *ASCIIRenderer) Name() string { return "ASCII Renderer" }

// Render creates an ASCII representation of the graph.
func (r *ASCIIRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	// Scale down; terminal cells are roughly twice as tall as wide.
	width := max(int(options.Width/10), 40)
	height := max(int(options.Height/20), 20)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := 0; i < width; i++ {
		grid[0][i] = '-'
		grid[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid[i][0] = '|'
		grid[i][width-1] = '|'
	}
	grid[0][0], grid[0][width-1] = '+', '+'
	grid[height-1][0], grid[height-1][width-1] = '+', '+'

	toGrid := func(n *models.Node) (int, int) {
		x := int(n.Position.X*float64(width-2)/options.Width) + 1
		y := int(n.Position.Y*float64(height-2)/options.Height) + 1
		return clamp(x, 1, width-2), clamp(y, 1, height-2)
	}

	for _, l := range graph.Links() {
		x1, y1 := toGrid(l.Source)
		x2, y2 := toGrid(l.Target)
		drawLine(grid, x1, y1, x2, y2)
	}

	symbols := []rune{'O', '@', '#', 'X', '*', '+'}
	for i, n := range graph.Nodes() {
		x, y := toGrid(n)
		grid[y][x] = symbols[i%len(symbols)]

		if options.ShowLabels && n.Label != "" && y+1 < height-1 {
			label := n.Label
			if len(label) > width-x-1 {
				label = label[:width-x-1]
			}
			for j := 0; j < len(label) && x+j < width-1; j++ {
				grid[y+1][x+j] = rune(label[j])
			}
		}
	}

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}
	return []byte(result.String()), nil
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// drawLine rasterizes a straight edge with Bresenham's algorithm,
// leaving existing node glyphs untouched.
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			if dx > dy {
				grid[y][x] = '-'
			} else {
				grid[y][x] = '|'
			}
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
