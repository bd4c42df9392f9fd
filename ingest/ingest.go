// Package ingest loads graph descriptions from user-supplied files into
// the data model. Unlike tick-time link resolution, loader input is user
// data: a link naming an unknown node is reported as an error here.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowmatic/kineograph/models"
)

// Processor turns raw bytes into a graph.
type Processor interface {
	ProcessData(data []byte) (*models.Graph, error)
	Name() string
}

// ForExtension returns the processor for a file extension such as
// ".json" or ".csv".
func ForExtension(ext string) (Processor, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return &JSONProcessor{}, nil
	case ".csv":
		return &CSVProcessor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// JSONProcessor handles {"nodes": [...], "links": [...]} documents.
type JSONProcessor struct{}

// Name returns the processor name.
func (p *JSONProcessor) Name() string { return "JSON Processor" }

// ProcessData parses a JSON graph description.
func (p *JSONProcessor) ProcessData(data []byte) (*models.Graph, error) {
	var doc struct {
		Name  string `json:"name"`
		Nodes []struct {
			ID      string  `json:"id"`
			Type    string  `json:"type"`
			Label   string  `json:"label"`
			Size    float64 `json:"size"`
			Shape   string  `json:"shape"`
			Fixed   bool    `json:"fixed"`
			X       float64 `json:"x"`
			Y       float64 `json:"y"`
			Payload any     `json:"payload"`
		} `json:"nodes"`
		Links []models.LinkSpec `json:"links"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	name := doc.Name
	if name == "" {
		name = "JSON Import"
	}
	graph := models.NewGraph(name)

	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node without id")
		}
		node := models.NewNode(n.ID, n.Type, n.Label)
		if n.Size > 0 {
			node.Size = n.Size
		}
		if n.Shape != "" {
			node.Shape = n.Shape
		}
		node.Fixed = n.Fixed
		node.Payload = n.Payload
		node.SetPosition(n.X, n.Y)
		graph.AddNode(node)
	}

	for _, l := range doc.Links {
		if _, ok := graph.Node(l.Source); !ok {
			return nil, fmt.Errorf("link references unknown node: %s -> %s", l.Source, l.Target)
		}
		if _, ok := graph.Node(l.Target); !ok {
			return nil, fmt.Errorf("link references unknown node: %s -> %s", l.Source, l.Target)
		}
		graph.AddLink(l)
	}

	return graph, nil
}

// CSVProcessor handles edge lists with source/target columns and an
// optional weight column. Nodes are created on first mention.
type CSVProcessor struct{}

// Name returns the processor name.
func (p *CSVProcessor) Name() string { return "CSV Processor" }

// ProcessData parses a CSV edge list.
func (p *CSVProcessor) ProcessData(data []byte) (*models.Graph, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	sourceIdx, targetIdx, weightIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "source", "from", "src":
			sourceIdx = i
		case "target", "to", "dst":
			targetIdx = i
		case "weight", "value", "strength":
			weightIdx = i
		}
	}
	if sourceIdx == -1 || targetIdx == -1 {
		return nil, fmt.Errorf("CSV must contain source and target columns")
	}

	graph := models.NewGraph("CSV Import")

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		sourceID := strings.TrimSpace(row[sourceIdx])
		targetID := strings.TrimSpace(row[targetIdx])
		if sourceID == "" || targetID == "" {
			return nil, fmt.Errorf("CSV row with empty source or target")
		}

		for _, id := range []string{sourceID, targetID} {
			if _, ok := graph.Node(id); !ok {
				graph.AddNode(models.NewNode(id, "", id))
			}
		}

		weight := 1.0
		if weightIdx >= 0 && weightIdx < len(row) {
			w, err := strconv.ParseFloat(strings.TrimSpace(row[weightIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid weight %q: %w", row[weightIdx], err)
			}
			weight = w
		}

		graph.AddLink(models.LinkSpec{Source: sourceID, Target: targetID, Weight: weight})
	}

	return graph, nil
}
