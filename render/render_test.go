package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/flowmatic/kineograph/models"
)

func testGraph() *models.Graph {
	g := models.NewGraph("test")
	a := models.NewNode("a", "service", "API")
	a.SetPosition(100, 100)
	b := models.NewNode("b", "database", "DB")
	b.SetPosition(400, 300)
	g.AddNode(a)
	g.AddNode(b)
	g.AddLink(models.LinkSpec{Source: "a", Target: "b", Weight: 2})
	return g
}

func TestGetRenderer(t *testing.T) {
	for _, format := range []string{"json", "dot", "ascii"} {
		if _, err := GetRenderer(format); err != nil {
			t.Errorf("expected renderer for %s: %v", format, err)
		}
	}
	if _, err := GetRenderer("svg"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONRenderer(t *testing.T) {
	r := &JSONRenderer{}
	out, err := r.Render(testGraph(), NewDefaultOptions("json"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var doc struct {
		Name  string `json:"name"`
		Nodes []struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		} `json:"nodes"`
		Links   []models.LinkSpec `json:"links"`
		NodeCnt int               `json:"node_count"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Name != "test" || doc.NodeCnt != 2 || len(doc.Nodes) != 2 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Nodes[0].ID != "a" || doc.Nodes[0].X != 100 {
		t.Errorf("unexpected first node: %+v", doc.Nodes[0])
	}
	if len(doc.Links) != 1 || doc.Links[0].Weight != 2 {
		t.Errorf("unexpected links: %v", doc.Links)
	}
}

func TestDOTRenderer(t *testing.T) {
	r := &DOTRenderer{}
	out, err := r.Render(testGraph(), NewDefaultOptions("dot"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "graph G {") {
		t.Errorf("expected DOT header, got %q", text[:min(len(text), 20)])
	}
	for _, want := range []string{`"a" [label="API"`, `"a" -- "b"`} {
		if !strings.Contains(text, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
}

func TestASCIIRenderer(t *testing.T) {
	r := &ASCIIRenderer{}
	out, err := r.Render(testGraph(), NewDefaultOptions("ascii"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) < 20 {
		t.Fatalf("expected at least 20 grid rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "+-") {
		t.Errorf("expected border on first row, got %q", lines[0])
	}

	body := string(out)
	if !strings.Contains(body, "O") && !strings.Contains(body, "@") {
		t.Error("expected node glyphs in the grid")
	}
	if !strings.Contains(body, "API") {
		t.Error("expected node label in the grid")
	}
}
