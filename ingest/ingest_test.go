package ingest

import (
	"strings"
	"testing"
)

func TestForExtension(t *testing.T) {
	if _, err := ForExtension(".json"); err != nil {
		t.Errorf("expected JSON processor: %v", err)
	}
	if _, err := ForExtension(".CSV"); err != nil {
		t.Errorf("expected CSV processor for upper-case extension: %v", err)
	}
	if _, err := ForExtension(".xml"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestJSONProcessor(t *testing.T) {
	data := []byte(`{
		"name": "deps",
		"nodes": [
			{"id": "a", "type": "service", "label": "API", "size": 14, "x": 10, "y": 20},
			{"id": "b", "shape": "square", "fixed": true}
		],
		"links": [
			{"source": "a", "target": "b", "weight": 2}
		]
	}`)

	p := &JSONProcessor{}
	g, err := p.ProcessData(data)
	if err != nil {
		t.Fatalf("ProcessData failed: %v", err)
	}

	if g.Name != "deps" {
		t.Errorf("expected graph name deps, got %s", g.Name)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NodeCount())
	}

	a, ok := g.Node("a")
	if !ok {
		t.Fatal("node a not found")
	}
	if a.Type != "service" || a.Label != "API" || a.Size != 14 {
		t.Errorf("node a fields wrong: %+v", a)
	}
	if a.Position.X != 10 || a.Position.Y != 20 {
		t.Errorf("node a position wrong: %+v", a.Position)
	}

	b, _ := g.Node("b")
	if !b.Fixed {
		t.Error("node b should be fixed")
	}
	if b.Size != 10 {
		t.Errorf("expected default size 10, got %v", b.Size)
	}

	links := g.Links()
	if len(links) != 1 || links[0].Weight != 2 {
		t.Errorf("unexpected links: %v", links)
	}
}

func TestJSONProcessorUnknownEndpoint(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "a"}],
		"links": [{"source": "a", "target": "ghost"}]
	}`)

	p := &JSONProcessor{}
	if _, err := p.ProcessData(data); err == nil {
		t.Error("expected error for link to unknown node")
	}
}

func TestJSONProcessorInvalidSyntax(t *testing.T) {
	p := &JSONProcessor{}
	if _, err := p.ProcessData([]byte("{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestCSVProcessor(t *testing.T) {
	data := []byte(strings.Join([]string{
		"source,target,weight",
		"a,b,2.5",
		"b,c,1",
	}, "\n"))

	p := &CSVProcessor{}
	g, err := p.ProcessData(data)
	if err != nil {
		t.Fatalf("ProcessData failed: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 auto-created nodes, got %d", g.NodeCount())
	}
	links := g.Links()
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Weight != 2.5 {
		t.Errorf("expected weight 2.5, got %v", links[0].Weight)
	}
}

func TestCSVProcessorMissingColumns(t *testing.T) {
	p := &CSVProcessor{}
	if _, err := p.ProcessData([]byte("from,weight\na,1\n")); err == nil {
		t.Error("expected error for missing target column")
	}
}

func TestCSVProcessorBadWeight(t *testing.T) {
	p := &CSVProcessor{}
	if _, err := p.ProcessData([]byte("source,target,weight\na,b,heavy\n")); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}
