package models

// NodesByType returns all nodes of the given type, ordered by id.
func (g *Graph) NodesByType(nodeType string) []*Node {
	var result []*Node
	for _, n := range g.Nodes() {
		if n.Type == nodeType {
			result = append(result, n)
		}
	}
	return result
}

// Neighbors returns the nodes directly linked to the given node,
// in either direction, ordered by id.
func (g *Graph) Neighbors(id string) []*Node {
	seen := make(map[string]struct{})
	for _, l := range g.LinkSpecs() {
		if l.Source == id {
			seen[l.Target] = struct{}{}
		}
		if l.Target == id {
			seen[l.Source] = struct{}{}
		}
	}
	var result []*Node
	for _, n := range g.Nodes() {
		if _, ok := seen[n.ID]; ok {
			result = append(result, n)
		}
	}
	return result
}

// VisibleNodes returns the nodes admitted by the filter, ordered by id.
func (g *Graph) VisibleNodes(filter Filter) []*Node {
	nodes := g.Nodes()
	if filter == nil {
		return nodes
	}
	visible := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if filter.Visible(n.ID) {
			visible = append(visible, n)
		}
	}
	return visible
}
