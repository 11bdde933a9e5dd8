package family

import (
	"fmt"

	"github.com/sharjeelz/famories/internal/models"
)

// GraphNode is a rendered family tree node.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GraphEdge is a rendered, typed edge between two members.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// Graph derives the renderable family tree from the current roster. One
// node per member labeled "name (relation)"; one edge per stored
// relation whose target id still exists. Dangling edges are dropped from
// the view only; the stored relations are never mutated here.
func (s *Service) Graph() ([]GraphNode, []GraphEdge, error) {
	members, err := s.store.Load()
	if err != nil {
		return nil, nil, err
	}
	return BuildGraph(members), buildEdges(members), nil
}

// BuildGraph returns the node list for a roster snapshot.
func BuildGraph(members []models.FamilyMember) []GraphNode {
	nodes := make([]GraphNode, 0, len(members))
	for _, m := range members {
		nodes = append(nodes, GraphNode{
			ID:    m.ID,
			Label: fmt.Sprintf("%s (%s)", m.Name, m.Relation),
		})
	}
	return nodes
}

func buildEdges(members []models.FamilyMember) []GraphEdge {
	exists := make(map[string]bool, len(members))
	for _, m := range members {
		exists[m.ID] = true
	}
	edges := []GraphEdge{}
	for _, m := range members {
		for _, e := range m.Relations {
			if !exists[e.To] {
				continue
			}
			edges = append(edges, GraphEdge{From: m.ID, To: e.To, Type: e.Type})
		}
	}
	return edges
}
